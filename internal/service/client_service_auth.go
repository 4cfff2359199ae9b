package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/validators"
	"github.com/MKhiriev/go-story-sync/models"
)

type clientAuthService struct {
	remote    adapter.RemoteSource
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientAuthService(remote adapter.RemoteSource, validator validators.Validator, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{remote: remote, validator: validator, logger: logger}
}

func (a *clientAuthService) EnsureSession(ctx context.Context, token, email, password string) error {
	if token = strings.TrimSpace(token); token != "" {
		a.remote.SetToken(token)
		return nil
	}
	if email == "" || password == "" {
		return ErrNoCredentials
	}

	_, err := a.Login(ctx, email, password)
	return err
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) error {
	if err := a.validator.Validate(ctx, user, validators.FieldName, validators.FieldEmail, validators.FieldPassword); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := a.remote.Register(ctx, user); err != nil {
		return mapAdapterError(err)
	}
	return nil
}

func (a *clientAuthService) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	result, err := a.remote.Login(ctx, email, password)
	if err != nil {
		return models.LoginResult{}, mapAdapterError(err)
	}

	a.logger.Info().
		Str("func", "clientAuthService.Login").
		Str("user_id", result.UserID).
		Msg("logged in")
	return result, nil
}

func (a *clientAuthService) CurrentUserID() string {
	return a.remote.UserID()
}
