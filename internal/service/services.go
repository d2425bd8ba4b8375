package service

import (
	"github.com/skyfare/bookingd/internal/config"
	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/internal/store"
)

type Services struct {
	TokenService   TokenService
	BookingService BookingService
}

func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	tokens := NewTokenService(cfg.Auth, logger)
	credentials := NewCredentialStore(storages.Documents, logger)
	ledger := NewBookingLedger(storages.Documents, logger)

	return &Services{
		TokenService:   tokens,
		BookingService: NewBookingService(credentials, tokens, ledger, cfg.Auth.AccountTTL, logger),
	}
}
