package middleware

import (
	"food-ordering-api/apperr"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Stage is one step of a request pipeline. A nil error continues with the
// next stage; anything else ends the request with the mapped response.
type Stage func(c *gin.Context) error

// Pipeline runs stages in order. The last stage normally writes the
// response.
func Pipeline(log logrus.FieldLogger, stages ...Stage) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, stage := range stages {
			if err := stage(c); err != nil {
				abort(c, log, err)
				return
			}
		}
	}
}

func abort(c *gin.Context, log logrus.FieldLogger, err error) {
	kind := apperr.KindOf(err)
	status := kind.Status()

	entry := log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"kind":   kind.String(),
		"status": status,
	})
	if status >= 500 {
		entry.Error("request failed")
	} else {
		entry.Info("request rejected")
	}

	_ = c.Error(err)
	if kind == apperr.KindUnauthorized {
		c.AbortWithStatus(status)
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apperr.PublicMessage(err)})
}
