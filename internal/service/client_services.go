package service

import (
	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/notify"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/validators"
)

type ClientServices struct {
	AuthService    ClientAuthService
	StoryService   StoryService
	SyncController SyncController
	SyncJob        SyncJob
}

func NewClientServices(
	local store.LocalStore,
	remote adapter.RemoteSource,
	dispatcher notify.Dispatcher,
	visibility VisibilityReporter,
	workersCfg config.ClientWorkers,
	logger *logger.Logger,
) *ClientServices {
	validator := validators.NewStoryValidator()
	engine := NewReconciliationEngine(local, validator, logger)
	detector := NewNoveltyDetector(workersCfg.NoveltyWindow)
	controller := NewSyncController(local, remote, engine, detector, dispatcher, visibility, workersCfg, logger)

	return &ClientServices{
		AuthService:    NewClientAuthService(remote, validator, logger),
		StoryService:   NewStoryService(local, remote, controller, validator, logger),
		SyncController: controller,
		SyncJob:        NewSyncJob(controller, workersCfg.SyncInterval),
	}
}
