package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

// Created writes a 201 success envelope with a message.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, NewMessageResponse(message, data))
}

// Message writes a 200 success envelope carrying only a message.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, NewMessageResponse(message, nil))
}
