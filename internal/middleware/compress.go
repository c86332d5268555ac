package middleware

import (
	"compress/gzip"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

func (g *gzipWriter) WriteHeader(code int) {
	g.Header().Del("Content-Length")
	g.ResponseWriter.WriteHeader(code)
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	g.Header().Del("Content-Length")
	return g.writer.Write(data)
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

// CompressConfig represents compression configuration
type CompressConfig struct {
	Level int
	// Extensions lists the file extensions worth compressing. "/" counts as .html.
	Extensions []string
}

// DefaultCompressConfig returns default compression configuration
func DefaultCompressConfig() CompressConfig {
	return CompressConfig{
		Level:      gzip.DefaultCompression,
		Extensions: []string{".html", ".js", ".css", ".json", ".svg", ".txt", ".map"},
	}
}

// Compress gzips static file responses for clients that accept it.
// Range requests are served uncompressed.
func Compress(config CompressConfig) gin.HandlerFunc {
	exts := make(map[string]bool, len(config.Extensions))
	for _, e := range config.Extensions {
		exts[e] = true
	}

	return func(c *gin.Context) {
		ext := path.Ext(c.Request.URL.Path)
		if strings.HasSuffix(c.Request.URL.Path, "/") {
			ext = ".html"
		}
		if !exts[ext] ||
			c.Request.Method != "GET" ||
			c.GetHeader("Range") != "" ||
			!strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gz, err := gzip.NewWriterLevel(c.Writer, config.Level)
		if err != nil {
			c.Next()
			return
		}
		defer gz.Close()

		c.Writer = &gzipWriter{c.Writer, gz}
		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")
		// Validators describe the uncompressed file.
		c.Request.Header.Del("If-Modified-Since")
		c.Request.Header.Del("If-None-Match")

		c.Next()
	}
}
