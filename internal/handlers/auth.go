package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"smartwaste-backend/internal/middleware"
	"smartwaste-backend/internal/models"
	"smartwaste-backend/internal/roles"
	"smartwaste-backend/pkg/utils"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Area     string `json:"area"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string            `json:"token"`
	User    map[string]string `json:"user"`
	Profile map[string]string `json:"profile"`
}

// Signup creates an identity + profile row. Signup input is the one place
// role values are rejected rather than passed through normalized.
func Signup(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		role := roles.Normalize(req.Role)
		area := strings.TrimSpace(req.Area)
		fullName := strings.TrimSpace(req.FullName)

		if email == "" || req.Password == "" || role == "" || area == "" {
			utils.Error(w, http.StatusBadRequest, "Missing fields")
			return
		}
		if !roles.Known(role) {
			utils.Error(w, http.StatusBadRequest, "Invalid role. Allowed: admin, worker, driver, recycling_manager")
			return
		}
		if len(req.Password) < 6 {
			utils.Error(w, http.StatusBadRequest, "Password must be at least 6 characters")
			return
		}

		var existingID string
		err := db.Get(&existingID, `SELECT id FROM profiles WHERE email = $1`, email)
		if err == nil {
			utils.Error(w, http.StatusConflict, "User with this email already exists")
			return
		}
		if err != sql.ErrNoRows {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		userID := uuid.New().String()
		now := time.Now().Unix()
		_, err = db.Exec(`
			INSERT INTO profiles (id, email, password, full_name, role, area, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, userID, email, string(hashed), fullName, string(role), area, now, now)
		if err != nil {
			log.Printf("❌ Signup insert failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		log.Printf("✅ User created: %s (%s, %s)", email, role, area)
		utils.JSON(w, http.StatusCreated, map[string]interface{}{
			"message": "User created",
			"user":    map[string]string{"id": userID, "email": email},
			"profile": map[string]string{"role": string(role), "area": area},
		})
	}
}

// Login verifies credentials and issues a 7-day HS256 token.
func Login(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || req.Password == "" {
			utils.Error(w, http.StatusBadRequest, "Missing email/password")
			return
		}

		jwtSecret := os.Getenv("APP_JWT_SECRET")
		if jwtSecret == "" {
			log.Println("❌ APP_JWT_SECRET not configured")
			utils.Error(w, http.StatusInternalServerError, "Server misconfigured")
			return
		}

		var profile models.Profile
		if err := db.Get(&profile, `SELECT * FROM profiles WHERE email = $1`, email); err != nil {
			utils.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
			log.Printf("❌ Invalid password for: %s", email)
			utils.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": profile.ID,
			"email":   profile.Email,
			"role":    string(roles.Normalize(profile.Role)),
			"iat":     time.Now().Unix(),
			"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to create token")
			return
		}

		log.Printf("✅ Login successful: %s (%s)", profile.Email, profile.Role)
		utils.Success(w, LoginResponse{
			Token:   tokenString,
			User:    map[string]string{"id": profile.ID, "email": profile.Email},
			Profile: map[string]string{"role": string(roles.Normalize(profile.Role)), "area": profile.Area},
		})
	}
}

// Me returns the token's identity.
func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		utils.Success(w, map[string]string{"id": claims.UserID, "email": claims.Email})
	}
}

// GetProfile re-reads the caller's profile from the store. Role and area
// come from the row, not from anything the client cached.
func GetProfile(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var profile models.Profile
		err := db.Get(&profile, `SELECT * FROM profiles WHERE id = $1`, claims.UserID)
		if err == sql.ErrNoRows {
			utils.Error(w, http.StatusNotFound, "Profile not found")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.Success(w, map[string]string{
			"id":    profile.ID,
			"email": profile.Email,
			"role":  string(roles.Normalize(profile.Role)),
			"area":  profile.Area,
		})
	}
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// ChangePassword updates the caller's own password.
func ChangePassword(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if len(req.Password) < 6 {
			utils.Error(w, http.StatusBadRequest, "Password must be at least 6 characters")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		result, err := db.Exec(`UPDATE profiles SET password = $1, updated_at = $2 WHERE id = $3`,
			string(hashed), time.Now().Unix(), claims.UserID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to update password")
			return
		}
		if rows, err := result.RowsAffected(); err == nil && rows == 0 {
			utils.Error(w, http.StatusNotFound, "Profile not found")
			return
		}

		utils.Message(w, "Password updated")
	}
}
