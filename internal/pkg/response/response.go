// Package response renders the uniform api envelope through proxyutil.
// Failures keep http 200 and report through the envelope code field.
package response

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
)

type apiError struct {
	code    uint32
	message string
}

func (e *apiError) Error() string {
	return e.message
}

// Code is read by proxyutil when it builds the failure envelope.
func (e *apiError) Code() uint32 {
	return e.code
}

func Success(c *gin.Context, data interface{}) {
	proxyutil.SuccessJson(c, data)
}

func Error(c *gin.Context, code int, message string) {
	proxyutil.FailJson(c, 200, &apiError{code: uint32(code), message: message})
}
