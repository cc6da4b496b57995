package auth

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/honeynil/course-purchase-service/internal/infrastructure/redis"
)

// SessionCookie is the cookie the session token is read from.
const SessionCookie = "token"

type contextKey struct{}

// BuyerID returns the authenticated user id set by AuthMiddleware.
func BuyerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

func WithBuyerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// AuthMiddleware authenticates the session cookie, falling back to an
// Authorization: Bearer header. When redisClient is set and a token is
// stored under user:<id>:token, the presented token must match it.
func AuthMiddleware(jwtService *JWTService, redisClient redis.RedisClient) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := tokenFromRequest(r)
			if tokenStr == "" {
				unauthorized(w, "User not authenticated")
				return
			}

			claims, err := jwtService.ParseToken(tokenStr)
			if err != nil {
				slog.Warn("invalid session token", "path", r.URL.Path, "error", err)
				unauthorized(w, "Invalid token")
				return
			}

			if redisClient != nil {
				redisKey := fmt.Sprintf("user:%s:token", claims.UserID)
				storedToken, err := redisClient.Get(r.Context(), redisKey)
				switch {
				case stderrors.Is(err, redis.ErrKeyNotFound):
				case err != nil:
					slog.Error("failed to check session in Redis", "user_id", claims.UserID, "error", err)
				case storedToken != tokenStr:
					slog.Error("revoked token", "user_id", claims.UserID)
					unauthorized(w, "Invalid token")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithBuyerID(r.Context(), claims.UserID)))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": message})
}
