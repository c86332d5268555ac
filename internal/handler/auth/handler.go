package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/arogyavax/internal/handler"
	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/service/auth"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g handler.Groups) {
	auth := g.Public.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/send-otp", h.SendOTP)
		auth.POST("/verify-otp", h.VerifyOTP)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.Created(c, "User registered successfully!", gin.H{"user_id": user.ID})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("Login successful", resp))
}

func (h *Handler) SendOTP(c *gin.Context) {
	var req model.SendOTPRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	resp, err := h.svc.SendOTP(c.Request.Context(), req.Email)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	var data interface{}
	if resp.OTP != "" {
		data = gin.H{"otp": resp.OTP}
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse(resp.Message, data))
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req model.VerifyOTPRequest
	if err := handler.BindJSON(c, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	if err := h.svc.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.Message(c, "OTP verified successfully.")
}
