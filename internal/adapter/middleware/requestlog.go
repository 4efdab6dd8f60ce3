package middleware

import (
	"strconv"

	"agricredit-backend/internal/infrastructure/metrics"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request and feeds the HTTP metrics when m is non-nil.
func RequestLogger(log *zap.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogRoutePath: true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("route", v.RoutePath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.RequestID != "" {
				fields = append(fields, zap.String("request_id", v.RequestID))
			}
			if claims, ok := Claims(c); ok {
				fields = append(fields, zap.Uint64("user_id", claims.UserID))
			}
			switch {
			case v.Error != nil:
				log.Error("request", append(fields, zap.Error(v.Error))...)
			case v.Status >= 500:
				log.Error("request", fields...)
			default:
				log.Info("request", fields...)
			}

			if m != nil {
				m.HTTPRequests.WithLabelValues(v.RoutePath, v.Method, strconv.Itoa(v.Status)).Inc()
				m.HTTPDuration.WithLabelValues(v.RoutePath, v.Method).Observe(v.Latency.Seconds())
			}
			return nil
		},
	})
}
