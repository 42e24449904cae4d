package middleware

import (
	pkgerrors "wegrowup-api/pkg/errors"
	"wegrowup-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panic in a handler into a 500 response and an error log
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithContext(c.Request.Context(), log).Error("panic recovered in http handler",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(pkgerrors.HTTPStatus(pkgerrors.ErrInternal), gin.H{
					"error":   "internal_error",
					"message": pkgerrors.ErrInternal.Error(),
				})
			}
		}()
		c.Next()
	}
}
