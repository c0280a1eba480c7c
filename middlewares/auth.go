package middlewares

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Vikramop/task-mangement-app/utils"
)

type contextKey string

const userKey contextKey = "userID"

// TokenVerifier checks a bearer token and returns the user id it encodes.
// *services.AuthService satisfies it.
type TokenVerifier interface {
	VerifyToken(tokenString string) (primitive.ObjectID, error)
}

// RequireAuth rejects requests without a valid bearer token and injects the
// authenticated user id into the request context.
func RequireAuth(tokens TokenVerifier, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Error(w, http.StatusUnauthorized, "unauthorized - no token provided")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := tokens.VerifyToken(tokenStr)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "unauthorized - invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// GetUserID returns the authenticated user id set by RequireAuth.
func GetUserID(r *http.Request) (primitive.ObjectID, bool) {
	id, ok := r.Context().Value(userKey).(primitive.ObjectID)
	return id, ok
}
