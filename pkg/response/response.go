// Package response writes the API's JSON bodies. The front end parses these
// shapes verbatim, so errors are always `{"error": ...}` and mutations report
// `{"success": ...}` with no extra envelope.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

func BadRequest(c *gin.Context, msg string, details any) {
	body := gin.H{"error": msg}
	if details != nil {
		body["details"] = details
	}
	c.JSON(http.StatusBadRequest, body)
}

func Internal(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// Failure writes the `{success:false, message}` shape used by login,
// registration and member-add responses.
func Failure(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg})
}

func OK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

func Success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
