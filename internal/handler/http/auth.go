package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/app"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteAPIError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		status, msg := statusFromError(err)
		if status == http.StatusInternalServerError {
			msg = app.MsgRegistrationFailed
		}
		log.Err(err).Int("status", status).Msg("user registration failed")
		utils.WriteAPIError(w, msg, status)
		return
	}

	log.Info().Str("user_id", registeredUser.ID).Msg("user registered")
	utils.WriteJSON(w, models.APIResponse{Message: app.MsgUserCreated}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteAPIError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		status, msg := statusFromError(err)
		log.Err(err).Int("status", status).Msg("user login failed")
		utils.WriteAPIError(w, msg, status)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteAPIError(w, app.MsgLoginFailed, http.StatusInternalServerError)
		return
	}

	log.Debug().Str("user_id", foundUser.ID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.LoginResponse{
		APIResponse: models.APIResponse{Message: app.MsgLoginSuccess},
		LoginResult: &models.LoginResult{
			UserID: foundUser.ID,
			Name:   foundUser.Name,
			Token:  token.SignedString,
		},
	}, http.StatusOK)
}
