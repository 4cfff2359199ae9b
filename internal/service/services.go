package service

import (
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/validators"
	"github.com/MKhiriev/go-story-sync/models"
)

type Services struct {
	AuthService    AuthService
	FeedService    FeedService
	AppInfoService AppInfoService
	Events         EventBroker
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewStoryValidator()
	events := NewEventHub(logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, validator, cfg.App, logger),
		FeedService:    NewFeedService(storages, events, validator, logger),
		AppInfoService: appInfo,
		Events:         events,
	}, nil
}
