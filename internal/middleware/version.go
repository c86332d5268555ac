package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/arogyavax/internal/handler"
)

const (
	HeaderAcceptVersion = "Accept-Version"
	HeaderAPIVersion    = "X-API-Version"
)

// VersionConfig represents version middleware configuration
type VersionConfig struct {
	Current   string
	Supported []string
}

func DefaultVersionConfig() VersionConfig {
	return VersionConfig{
		Current:   "1.0",
		Supported: []string{"1.0"},
	}
}

// Version stamps responses with the API version and rejects requests that
// ask for a version the server does not speak.
func Version(config VersionConfig) gin.HandlerFunc {
	supported := make(map[string]bool, len(config.Supported))
	for _, v := range config.Supported {
		supported[v] = true
	}

	return func(c *gin.Context) {
		c.Header(HeaderAPIVersion, config.Current)

		if requested := c.GetHeader(HeaderAcceptVersion); requested != "" && !supported[requested] {
			c.AbortWithStatusJSON(http.StatusNotAcceptable,
				handler.NewErrorResponse(fmt.Sprintf("API version %s not supported", requested)))
			return
		}
		c.Next()
	}
}
