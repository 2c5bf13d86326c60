package accounts

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/marketway/storefront/internal/domain"
	"github.com/marketway/storefront/internal/httpapi"
	"github.com/marketway/storefront/internal/query"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID)
	httpapi.WriteJSON(w, h.logger, http.StatusCreated, map[string]any{
		"message": "user registered successfully",
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID)
	httpapi.WriteJSON(w, h.logger, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	criteria := query.Criteria{
		Search: values.Get("search"),
		Kind:   values.Get("role"),
		Sort:   values.Get("sort"),
	}

	users, err := h.service.List(r.Context(), criteria)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, h.logger, http.StatusOK, users)
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	role := domain.RoleUser
	if req.Role != "" {
		parsed, ok := domain.ParseUserRole(req.Role)
		if !ok {
			httpapi.WriteError(w, h.logger, http.StatusBadRequest, "unknown role")
			return
		}
		role = parsed
	}

	user, err := h.service.CreateUser(r.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	httpapi.WriteJSON(w, h.logger, http.StatusCreated, user)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	role, ok := domain.ParseUserRole(req.Role)
	if !ok {
		httpapi.WriteError(w, h.logger, http.StatusBadRequest, "unknown role")
		return
	}

	user, err := h.service.UpdateRole(r.Context(), r.PathValue("id"), role)
	if err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("user role updated", "user_id", user.ID, "role", user.Role)
	httpapi.WriteJSON(w, h.logger, http.StatusOK, user)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpapi.WriteDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("user deleted", "user_id", id)
	w.WriteHeader(http.StatusNoContent)
}
