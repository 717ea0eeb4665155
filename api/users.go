package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/skilltrack/pkg/access"
	"github.com/garnizeh/skilltrack/pkg/models"
	"github.com/garnizeh/skilltrack/pkg/repository"
)

type UsersHandler struct {
	userRepo repository.UserRepo
}

func NewUsersHandler(ur repository.UserRepo) *UsersHandler {
	return &UsersHandler{userRepo: ur}
}

func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "failed to list users", http.StatusInternalServerError)
		return
	}

	if users == nil {
		users = []models.User{}
	}
	for i := range users {
		users[i].PasswordHash = ""
	}

	writeJSON(w, users, http.StatusOK)
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "missing fields", http.StatusBadRequest)
		return
	}
	switch req.Role {
	case access.RoleUser, access.RoleAdmin, access.RoleSuperAdmin:
	case "":
		req.Role = access.RoleUser
	default:
		http.Error(w, "unknown role", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if existing, err := h.userRepo.GetByEmail(ctx, req.Email); err != nil {
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	} else if existing != nil {
		http.Error(w, "email already registered", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to create user", http.StatusInternalServerError)
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
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	user.ID = id
	user.PasswordHash = ""
	writeJSON(w, user, http.StatusCreated)
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["id"]
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	target, err := h.userRepo.GetByID(ctx, targetID)
	if err != nil {
		http.Error(w, "failed to update user", http.StatusInternalServerError)
		return
	}
	if target == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	actor := IdentityFrom(ctx)
	if actor == nil {
		http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
		return
	}

	// Super admins cannot be demoted by other admins. Role changes on a
	// super admin are allowed only when the actor is the account itself.
	roleChanged := req.Role != "" && req.Role != target.Role
	if roleChanged && target.Role == access.RoleSuperAdmin && actor.ID != target.ID {
		http.Error(w, "super admin cannot be modified", http.StatusForbidden)
		return
	}

	if req.Name != "" {
		target.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		target.Email = strings.TrimSpace(req.Email)
	}
	if req.Role != "" {
		switch req.Role {
		case access.RoleUser, access.RoleAdmin, access.RoleSuperAdmin:
			target.Role = req.Role
		default:
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "failed to update user", http.StatusInternalServerError)
			return
		}
		target.PasswordHash = string(hash)
	}

	if err := h.userRepo.UpdateUser(ctx, target); err != nil {
		http.Error(w, "failed to update user", http.StatusInternalServerError)
		return
	}

	target.PasswordHash = ""
	writeJSON(w, target, http.StatusOK)
}

func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["id"]

	ctx := r.Context()

	target, err := h.userRepo.GetByID(ctx, targetID)
	if err != nil {
		http.Error(w, "failed to delete user", http.StatusInternalServerError)
		return
	}
	if target == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	actor := IdentityFrom(ctx)
	if actor == nil {
		http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
		return
	}

	if !access.CanManage(actor.Role, target.Role) {
		http.Error(w, "super admin cannot be deleted", http.StatusForbidden)
		return
	}

	if err := h.userRepo.DeleteUser(ctx, targetID); err != nil {
		http.Error(w, "failed to delete user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
