package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the standard envelope for every JSON endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RespSuccess responds with data.
func RespSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "",
		Data:    data,
	})
}

// RespCreated responds 201 with a message and data.
func RespCreated(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// RespSuccessStr responds with a message only.
func RespSuccessStr(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: msg,
	})
}

// RespErrorStr responds with a status code and message.
func RespErrorStr(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: msg,
	})
}

// RespErrorWithData responds with a status code, message and data.
func RespErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: msg,
		Data:    data,
	})
}
