package middleware

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"

	"smartwaste-backend/internal/roles"
)

type contextKey string

const UserContextKey contextKey = "user"

type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Auth middleware validates the bearer JWT and adds user claims to context.
// The role claim is a convenience only; privileged handlers re-read the
// profile row before deciding anything.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		tokenString := parts[1]

		jwtSecret := os.Getenv("APP_JWT_SECRET")
		if jwtSecret == "" {
			log.Println("❌ APP_JWT_SECRET not configured")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			log.Printf("❌ Invalid token: %v", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		userID, okID := claims["user_id"].(string)
		email, okEmail := claims["email"].(string)
		role, okRole := claims["role"].(string)
		if !okID || !okEmail || !okRole || userID == "" {
			log.Println("❌ Token claims malformed")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, UserClaims{
			UserID: userID,
			Email:  email,
			Role:   role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole middleware gates a route group on the caller's stored role
// (must be used after Auth). The role in the token is never consulted: a
// role edit in the profiles table takes effect on the next request even
// for tokens issued before the edit.
func RequireRole(db *sqlx.DB, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(UserContextKey).(UserClaims)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			var storedRole string
			err := db.Get(&storedRole, `SELECT role FROM profiles WHERE id = $1`, userClaims.UserID)
			if err == sql.ErrNoRows {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if err != nil {
				log.Printf("❌ Role lookup failed for %s: %v", userClaims.UserID, err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if string(roles.Normalize(storedRole)) != role {
				log.Printf("❌ Insufficient permissions: required %s, got %s", role, storedRole)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext extracts user claims from request context
func GetUserFromContext(r *http.Request) (UserClaims, bool) {
	userClaims, ok := r.Context().Value(UserContextKey).(UserClaims)
	return userClaims, ok
}
