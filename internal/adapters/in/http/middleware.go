package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"freightops/internal/core/domain/model/access"
	"freightops/internal/pkg/metrics"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
	actorKey     = "actor"
)

// ErrMissingActor is returned by ActorFrom on a route that skipped authentication.
var ErrMissingActor = errors.New("no authenticated actor in request context")

// RequestID keeps the caller's X-Request-ID or assigns a new one, and echoes
// it on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Set(requestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)
			return next(c)
		}
	}
}

func RequestIDFrom(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestLogger writes one entry per request once the response is known.
// Errors are handed to the echo error handler first so the logged status is
// the one the client sees.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			fields := []zap.Field{
				zap.String("request_id", RequestIDFrom(c)),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("query", req.URL.RawQuery),
				zap.String("ip", c.RealIP()),
				zap.Int("status_code", status),
				zap.Duration("latency", time.Since(start)),
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("Request completed with server error", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("Request completed with client error", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
			return nil
		}
	}
}

// Metrics counts requests and observes latency per matched route.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(c.Response().Status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// ActorClaims is the token payload: the subject identifies the actor and
// capabilities lists what it may do.
type ActorClaims struct {
	Capabilities []string `json:"capabilities"`
	jwt.RegisteredClaims
}

// Authenticate verifies an HS256 bearer token and stores the resulting
// access.Actor on the request context.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "bearer token required")
			}

			actor, err := ParseActor(strings.TrimSpace(raw), secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token").SetInternal(err)
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// ParseActor validates the token signature and expiry and builds the actor.
// Unknown capability names are rejected.
func ParseActor(token string, secret []byte) (access.Actor, error) {
	var claims ActorClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return access.Actor{}, err
	}

	caps := make([]access.Capability, 0, len(claims.Capabilities))
	for _, name := range claims.Capabilities {
		capability, err := access.ParseCapability(name)
		if err != nil {
			return access.Actor{}, err
		}
		caps = append(caps, capability)
	}

	return access.NewActor(claims.Subject, caps...)
}

// IssueToken signs a token for the actor. Used by tests and local tooling.
func IssueToken(secret []byte, actorID string, ttl time.Duration, caps ...access.Capability) (string, error) {
	now := time.Now()
	claims := ActorClaims{
		Capabilities: access.CapabilityNames(caps),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ActorFrom(c echo.Context) (access.Actor, error) {
	actor, ok := c.Get(actorKey).(access.Actor)
	if !ok {
		return access.Actor{}, ErrMissingActor
	}
	return actor, nil
}
