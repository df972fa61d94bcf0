package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/medstock/medstock/internal/admin/domain"
	"github.com/medstock/medstock/internal/admin/session"
	"github.com/medstock/medstock/internal/admin/usecase/command"
	"github.com/medstock/medstock/internal/admin/usecase/query"
	"github.com/medstock/medstock/pkg/logger"
)

// AdminHandler handles HTTP requests for admin accounts and sessions
type AdminHandler struct {
	loginHandler          *command.LoginAdminHandler
	logoutHandler         *command.LogoutAdminHandler
	createHandler         *command.CreateAdminHandler
	changePasswordHandler *command.ChangePasswordHandler
	deleteHandler         *command.DeleteAdminHandler

	listHandler *query.ListAdminsHandler

	middleware *AuthMiddleware
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(repo domain.AdminRepository, sessions *session.Store) *AdminHandler {
	return &AdminHandler{
		loginHandler:          command.NewLoginAdminHandler(repo, sessions),
		logoutHandler:         command.NewLogoutAdminHandler(sessions),
		createHandler:         command.NewCreateAdminHandler(repo),
		changePasswordHandler: command.NewChangePasswordHandler(repo),
		deleteHandler:         command.NewDeleteAdminHandler(repo),
		listHandler:           query.NewListAdminsHandler(repo),
		middleware:            NewAuthMiddleware(sessions),
	}
}

// Middleware exposes the auth middleware for other route groups
func (h *AdminHandler) Middleware() *AuthMiddleware {
	return h.middleware
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Login handles POST /api/auth/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginAdminCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Login successful", Data: resp})
}

// Logout handles POST /api/auth/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(SessionIDKey).(string)

	if err := h.logoutHandler.Handle(r.Context(), sessionID); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Logout failed")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Logout failed"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out"})
}

// Create handles POST /api/admins
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		IsSys    bool   `json:"is_sys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	admin, err := h.createHandler.Handle(command.CreateAdminCommand{
		Username: req.Username,
		Password: req.Password,
		IsSys:    req.IsSys,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Admin created successfully", Data: admin})
}

// List handles GET /api/admins
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	admins, err := h.listHandler.Handle(query.ListAdminsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list admins")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list admins"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: admins})
}

// ChangePassword handles PUT /api/admins/password
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	adminID, _ := r.Context().Value(AdminIDKey).(uint)

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if err := h.changePasswordHandler.Handle(command.ChangePasswordCommand{
		AdminID:     adminID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Password changed"})
}

// Delete handles DELETE /api/admins/{id}
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid admin ID"})
		return
	}

	if err := h.deleteHandler.Handle(uint(id)); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Admin deleted successfully"})
}

// RegisterRoutes registers all admin routes
func (h *AdminHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/api/auth/logout", h.middleware.Authenticate(h.Logout)).Methods("POST")

	router.HandleFunc("/api/admins", h.middleware.RequireSys(h.Create)).Methods("POST")
	router.HandleFunc("/api/admins", h.middleware.Authenticate(h.List)).Methods("GET")
	router.HandleFunc("/api/admins/password", h.middleware.Authenticate(h.ChangePassword)).Methods("PUT")
	router.HandleFunc("/api/admins/{id}", h.middleware.RequireSys(h.Delete)).Methods("DELETE")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
