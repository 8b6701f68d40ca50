package api

import "net/http"

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler handles POST /api/register.
func (h *HandlerProvider) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := h.accounts.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		// duplicate email -> 409
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  toUserJSON(user),
		"token": token,
	})
}

// LoginHandler handles POST /api/login.
func (h *HandlerProvider) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  toUserJSON(user),
		"token": token,
	})
}

// ProfileHandler handles GET /api/me.
func (h *HandlerProvider) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	user, err := h.accounts.Profile(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserJSON(user)})
}
