package api

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/skilltrack/pkg/access"
	"github.com/garnizeh/skilltrack/pkg/models"
	"github.com/garnizeh/skilltrack/pkg/repository"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	resetRepo     repository.ResetRepo
	jwtSecret     string
	tokenDuration time.Duration
	resetTTL      time.Duration
	resetCodeLen  int
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, rr repository.ResetRepo, jwtSecret string, tokenDuration, resetTTL time.Duration, resetCodeLen int) *AuthHandler {
	if resetCodeLen <= 0 {
		resetCodeLen = 6
	}
	return &AuthHandler{
		userRepo:      ur,
		resetRepo:     rr,
		jwtSecret:     jwtSecret,
		tokenDuration: tokenDuration,
		resetTTL:      resetTTL,
		resetCodeLen:  resetCodeLen,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h *AuthHandler) issueToken(u *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID,
		"name": u.Name,
		"role": u.Role,
		"exp":  time.Now().Add(h.tokenDuration).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}
	// Self-registration never grants admin tiers.
	if req.Role != access.RoleUser {
		req.Role = access.RoleUser
	}

	ctx := r.Context()

	if existing, err := h.userRepo.GetByEmail(ctx, req.Email); err != nil {
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	} else if existing != nil {
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: string(hash),
	}

	id, err := h.userRepo.CreateUser(ctx, &user)
	if err != nil {
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}
	user.ID = id
	user.PasswordHash = ""

	tokenStr, err := h.issueToken(&user)
	if err != nil {
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr, User: user}, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil || user == nil {
		http.Error(w, "Credentials not found", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "Credentials not found", http.StatusUnauthorized)
		return
	}

	user.PasswordHash = ""

	tokenStr, err := h.issueToken(user)
	if err != nil {
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr, User: *user}, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// For stateless JWT, logout is client-side (just delete token)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"message":"signed out"}`)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// ForgotPassword issues a one-time numeric code with a short TTL. The
// response is identical whether or not the email exists, so the
// endpoint cannot be used to probe for accounts.
// TODO: deliver the code via SMTP once a mailer is configured; for now
// it only reaches the server log.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		http.Error(w, "Error processing request", http.StatusInternalServerError)
		return
	}

	if user != nil {
		code, err := randomCode(h.resetCodeLen)
		if err != nil {
			http.Error(w, "Error processing request", http.StatusInternalServerError)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Error processing request", http.StatusInternalServerError)
			return
		}

		reset := models.PasswordReset{
			UserID:   user.ID,
			CodeHash: string(hash),
			Expires:  time.Now().Add(h.resetTTL).UnixMilli(),
		}
		if _, err := h.resetRepo.CreateReset(ctx, &reset); err != nil {
			http.Error(w, "Error processing request", http.StatusInternalServerError)
			return
		}

		logger.Info("password reset code issued",
			slog.String("user_id", user.ID),
			slog.String("code", code),
		)
	}

	writeJSON(w, map[string]string{"message": "if the account exists, a reset code has been sent"}, http.StatusOK)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil || user == nil {
		http.Error(w, "Invalid code", http.StatusUnauthorized)
		return
	}

	reset, err := h.resetRepo.GetActiveReset(ctx, user.ID, time.Now().UnixMilli())
	if err != nil || reset == nil {
		http.Error(w, "Invalid code", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(reset.CodeHash), []byte(req.Code)) != nil {
		http.Error(w, "Invalid code", http.StatusUnauthorized)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error processing request", http.StatusInternalServerError)
		return
	}

	user.PasswordHash = string(hash)
	if err := h.userRepo.UpdateUser(ctx, user); err != nil {
		http.Error(w, "Error processing request", http.StatusInternalServerError)
		return
	}

	if err := h.resetRepo.ConsumeReset(ctx, reset.ID); err != nil {
		logger.Error("consume reset", slog.Any("err", err), slog.Int64("reset_id", reset.ID))
	}

	writeJSON(w, map[string]string{"message": "password updated"}, http.StatusOK)
}

func randomCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
