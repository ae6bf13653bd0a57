package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/leadflow/leadflow-backend/internal/domain"
	"github.com/leadflow/leadflow-backend/internal/service/user"
)

type userService interface {
	GetProfile(ctx context.Context, caller domain.Caller) (*domain.User, error)
	UpdateProfile(ctx context.Context, caller domain.Caller, input user.UpdateProfileInput) (*user.ProfileResult, error)
	Ping(ctx context.Context, caller domain.Caller) error
	ListUsers(ctx context.Context, caller domain.Caller) ([]domain.UserWithPresence, error)
	CreateUser(ctx context.Context, caller domain.Caller, input user.CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, caller domain.Caller, id uuid.UUID, input user.UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, caller domain.Caller, id uuid.UUID) error
}

type activityReader interface {
	Recent(ctx context.Context, caller domain.Caller) ([]domain.ActivityLog, error)
}

// UserHandler serves /api/users.
type UserHandler struct {
	svc      userService
	activity activityReader
	log      *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, activity activityReader, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, activity: activity, log: logger.With("handler", "user")}
}

type updateProfileRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Location   *string `json:"location"`
	DOB        *string `json:"dob"`
	ProfilePic *string `json:"profilePic"`
	Password   *string `json:"password"`
}

type profileResponse struct {
	userResponse
	Token string `json:"token"`
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

// Profile handles GET /api/users/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	u, err := h.svc.GetProfile(r.Context(), caller)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// UpdateProfile handles PUT /api/users/profile. The response carries a
// fresh token since name and role are embedded in the session.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.UpdateProfile(r.Context(), caller, user.UpdateProfileInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Location:   req.Location,
		DOB:        req.DOB,
		ProfilePic: req.ProfilePic,
		Password:   req.Password,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		userResponse: toUserResponse(result.User),
		Token:        result.Token,
	})
}

// Ping handles POST /api/users/ping, the client heartbeat.
func (h *UserHandler) Ping(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.svc.Ping(r.Context(), caller); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	users, err := h.svc.ListUsers(r.Context(), caller)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		u := toUserResponse(&users[i].User)
		u.Status = string(users[i].Status)
		resp = append(resp, u)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.svc.CreateUser(r.Context(), caller, user.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

// Update handles PUT /api/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.svc.UpdateUser(r.Context(), caller, id, user.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(r.Context(), caller, id); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User removed"})
}

// Activity handles GET /api/users/activity.
func (h *UserHandler) Activity(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	logs, err := h.activity.Recent(r.Context(), caller)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	resp := make([]activityResponse, 0, len(logs))
	for _, a := range logs {
		resp = append(resp, toActivityResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}
