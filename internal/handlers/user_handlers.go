// internal/handlers/user_handlers.go
package handlers

import (
	"net/http"

	"bayou-blog/internal/middleware"
	"bayou-blog/internal/models"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type settingsRequest struct {
	AutomaticResponseEnabled        *bool `json:"automatic_response_enabled" validate:"omitempty"`
	AutomaticResponseDelayInMinutes *int  `json:"automatic_response_delay_in_minutes" validate:"omitempty,gte=1,lte=600"`
}

type settingsResponse struct {
	AutomaticResponseEnabled        bool `json:"automatic_response_enabled"`
	AutomaticResponseDelayInMinutes int  `json:"automatic_response_delay_in_minutes"`
}

func settingsOf(user *models.User) settingsResponse {
	return settingsResponse{
		AutomaticResponseEnabled:        user.AutomaticResponseEnabled,
		AutomaticResponseDelayInMinutes: user.AutomaticResponseDelayInMinutes,
	}
}

// HandleRegister creates a new account. Auto-response starts disabled with a
// one minute delay.
func (s *Server) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := s.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// HandleGetSettings returns the caller's auto-response settings.
func (s *Server) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())
	targetID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := s.Users.Settings(r.Context(), targetID, caller)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settingsOf(user))
}

// HandleUpdateSettings applies a partial settings update.
func (s *Server) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.UserFromContext(r.Context())
	targetID, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req settingsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := s.Users.UpdateSettings(r.Context(), targetID, caller,
		req.AutomaticResponseEnabled, req.AutomaticResponseDelayInMinutes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settingsOf(user))
}
