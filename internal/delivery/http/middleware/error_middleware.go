package middleware

import (
	"errors"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"method", c.Request.Method,
					"path", c.FullPath(),
					"reason", appErr.Reason,
					"error", appErr.Err,
					"request_id", c.GetString("RequestID"),
				)
			}
			response.Error(c, appErr.Code, appErr.Message, response.ErrorBody{
				Kind:   string(appErr.Kind),
				Reason: appErr.Reason,
			})
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("unhandled error",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
			"request_id", c.GetString("RequestID"),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", response.ErrorBody{
			Kind:   string(apperror.KindPersistence),
			Reason: apperror.ReasonInternal,
		})
	}
}
