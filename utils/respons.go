package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError writes err with the status derived from its kind. Internal and
// configuration failures are logged and their details are not sent back.
func RespondError(c *gin.Context, err error) {
	code := StatusCode(err)
	message := err.Error()

	switch KindOf(err) {
	case KindInternal:
		ErrorLogger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Errorf("request failed: %v", err)
		message = "internal server error"
	case KindConfiguration:
		ErrorLogger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Errorf("configuration error: %v", err)
	}

	c.JSON(code, JSONResponse{
		Status:  false,
		Message: message,
	})
}

// AbortWithError responds with err and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	RespondError(c, err)
	c.Abort()
}
