package http

import (
	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/notifier"
	"github.com/ta4ilka/route-atlas/internal/service"
)

type Handler struct {
	services *service.Services
	hub      *notifier.Hub

	logger *logger.Logger
}

func NewHandler(services *service.Services, hub *notifier.Hub, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hub:      hub,
		logger:   logger,
	}
}
