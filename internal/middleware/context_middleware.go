package middleware

import (
	"github.com/kashiee/HRMS/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Handle Request ID
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		// 2. Handle Actor ID (the operator running payroll, self-reported)
		aid := c.GetHeader("X-Actor-ID")
		c.Set("actor_id", aid)

		// 3. Build the scoped logger carrying the request metadata.
		// This logger is used for the rest of the request.
		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("actor_id", aid),
		)

		// 4. Propagate to the standard context so the service layer can
		// read everything via contextutil without knowing about Gin
		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithActorID(ctx, aid)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
