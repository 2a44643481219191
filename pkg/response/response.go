package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tourbook/pkg/apperr"
)

// Envelope mirrors the API wire format: {"status":"success","data":{...}}
// for successes and {"status":"fail"|"error","message":"..."} for failures.
// List responses additionally carry a "results" count.

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

// List writes a success envelope with the results count alongside the data.
func List[T any](c *gin.Context, items []T, key string) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(items),
		"data":    gin.H{key: items},
	})
}

// NoContent writes the empty-body 204 used by delete operations.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail writes a failure envelope. Statuses below 500 are client faults
// ("fail"), everything else is "error".
func Fail(c *gin.Context, status int, message string) {
	kind := "fail"
	if status >= http.StatusInternalServerError {
		kind = "error"
	}
	c.JSON(status, gin.H{
		"status":  kind,
		"message": message,
	})
}

// AbortFail is Fail plus aborting the middleware chain.
func AbortFail(c *gin.Context, status int, message string) {
	Fail(c, status, message)
	c.Abort()
}

// Error maps any error through the apperr taxonomy and writes the failure
// envelope. Non-operational errors are logged and surfaced generically.
func Error(c *gin.Context, logger *logrus.Logger, err error) {
	status, msg := apperr.StatusFor(err)
	if !apperr.IsOperational(err) && logger != nil {
		logger.WithError(err).WithField("path", c.FullPath()).Error("unexpected error")
	}
	Fail(c, status, msg)
}
