package http

import (
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/service"
)

// maxPhotoSize bounds the multipart body of POST /v1/stories.
const maxPhotoSize = 10 << 20

type Handler struct {
	services *service.Services

	maxPhotoSize int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:     services,
		maxPhotoSize: maxPhotoSize,
		logger:       logger,
	}
}
