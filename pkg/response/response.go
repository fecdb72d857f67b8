package response

import (
	"github.com/fekuna/omnipos-booth-service/pkg/errx"
	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type PageMeta struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, APIResponse{Success: true, Data: data})
}

func SuccessWithMeta(c *gin.Context, status int, data, meta interface{}) {
	c.JSON(status, APIResponse{Success: true, Data: data, Meta: meta})
}

// Error writes err using the status and safe message resolved by errx.
// Internal details never reach the client.
func Error(c *gin.Context, err error) {
	status, message := errx.StatusAndMessage(err)
	c.AbortWithStatusJSON(status, APIResponse{Success: false, Message: message})
}
