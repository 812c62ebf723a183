package response

import "github.com/gin-gonic/gin"

// Envelope is the {success: bool, ...} shape the legacy voting
// endpoints have always spoken.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func RenderSuccess(ctx *gin.Context, statusCode int, message string, data interface{}) {
	ctx.JSON(statusCode, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RenderFailure(ctx *gin.Context, statusCode int, message string) {
	ctx.JSON(statusCode, Envelope{
		Success: false,
		Message: message,
	})
}
