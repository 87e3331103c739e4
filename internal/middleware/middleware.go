package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"socialnetwork/internal/apperror"
	handlers "socialnetwork/internal/handler"
	"socialnetwork/internal/monitoring"
	"socialnetwork/internal/service"
)

type Middleware func(http.Handler) http.Handler

// publicPaths are served without a bearer token.
var publicPaths = []string{
	"/api/auth/register",
	"/api/auth/login",
	"/api/auth/refresh-token",
	"/health",
	"/metrics",
}

func isPublic(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}

// AuthMiddleware resolves the bearer token into a caller and stores it in the
// request context. Every non-public route requires one.
func AuthMiddleware(authService service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handlers.WriteError(w, "Authentication credentials were not provided", http.StatusUnauthorized)
				return
			}

			// Checking the "Bearer <token>" format
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				handlers.WriteError(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			caller, err := authService.CallerFromToken(r.Context(), parts[1])
			if err != nil {
				var appErr *apperror.Error
				if errors.As(err, &appErr) && appErr.Kind == apperror.KindUnauthenticated {
					handlers.WriteError(w, appErr.Message, http.StatusUnauthorized)
					return
				}
				logrus.WithError(err).Error("failed to authenticate request")
				handlers.WriteError(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithCaller(r.Context(), caller)))
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := monitoring.NewStatusRecorder(w)
		next.ServeHTTP(rw, r)

		entry := logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rw.StatusCode,
			"duration": time.Since(start).String(),
			"remote":   r.RemoteAddr,
		})

		switch {
		case rw.StatusCode >= http.StatusInternalServerError:
			entry.Error("Request handled")
		case rw.StatusCode >= http.StatusBadRequest:
			entry.Warn("Request handled")
		default:
			entry.Info("Request handled")
		}
	})
}

// RecoverMiddleware turns a panic into a 500 so one request cannot take the server down.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.WithFields(logrus.Fields{
					"panic": rec,
					"path":  r.URL.Path,
					"stack": string(debug.Stack()),
				}).Error("Recovered from panic")
				handlers.WriteError(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Chain wraps h so that the first middleware listed is the innermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
