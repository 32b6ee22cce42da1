package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/contact-management/internal/apperror"
	"gitlab.com/dirk.krummacker/contact-management/internal/metrics"
	"gitlab.com/dirk.krummacker/contact-management/internal/model"
	pub "gitlab.com/dirk.krummacker/contact-management/pkg/model"
	"go.uber.org/zap"
)

// userKey is the gin context key of the authenticated user.
const userKey = "user"

// Authenticator resolves a session token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.User, error)
}

// authenticate rejects requests without a valid token in the Authorization header. The header
// carries the raw token without a scheme.
func authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			fail(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// currentUser returns the user that authenticate attached to the request.
func currentUser(c *gin.Context) model.User {
	return c.MustGet(userKey).(model.User)
}

// normalizeErrors writes the error envelope for the last error that a handler reported.
func normalizeErrors(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, message := apperror.Resolve(err)
		if status == http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		c.JSON(status, pub.ErrorResponse{Errors: message})
	}
}

// recovery answers panics with the generic internal error.
func recovery(logger *zap.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		logger.Error("panic while handling request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, pub.ErrorResponse{Errors: apperror.InternalMessage})
	}
}

// requestLogger logs one entry per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", c.ClientIP()),
		}
		if user, ok := c.Get(userKey); ok {
			fields = append(fields, zap.String("username", user.(model.User).Username))
		}
		logger.Info("request", fields...)
	}
}

// measure records count and duration of requests per route.
func measure(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
