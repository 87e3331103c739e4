package handlers

import (
	"net/http"

	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

func newAuthResponse(user *models.User, accessToken, refreshToken string) AuthResponse {
	return AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:        user.UserID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			IsStaff:   user.IsStaff,
		},
	}
}

// Register creates a regular (non-staff) account and logs it in.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.validate(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err := h.AuthService.Register(r.Context(), repository.CreateUserRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, newAuthResponse(user, accessToken, refreshToken), http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.validate(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, newAuthResponse(user, accessToken, refreshToken), http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.validate(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeSuccess(w, newAuthResponse(user, accessToken, refreshToken), http.StatusOK)
}
