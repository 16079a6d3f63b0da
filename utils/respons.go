package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope every endpoint answers with. Reason is a
// machine-readable code present on rejected requests.
type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Reason  string      `json:"reason,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	respond(c, code, JSONResponse{Message: message, Data: data})
}

func RespondError(c *gin.Context, code int, err error) {
	respond(c, code, JSONResponse{Message: err.Error()})
}

// RespondReason writes an error envelope carrying a machine-readable reason.
func RespondReason(c *gin.Context, code int, reason, message string) {
	respond(c, code, JSONResponse{Message: message, Reason: reason})
}

func respond(c *gin.Context, code int, body JSONResponse) {
	body.Status = code >= 200 && code < 300
	c.JSON(code, body)
}
