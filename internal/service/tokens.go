package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skyfare/bookingd/internal/config"
	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/internal/utils"
	"github.com/skyfare/bookingd/models"
)

// tokenService is the concrete implementation of [TokenService], signing
// and verifying HMAC-SHA256 bearer tokens bound to a username subject.
//
// The signing secret, issuer, and lifetime are fixed at construction from
// process configuration; key rotation is out of scope.
type tokenService struct {
	// signKey is the HMAC secret used to sign and verify tokens.
	signKey string

	// issuer is the "iss" claim embedded in every issued token. Tokens
	// whose issuer does not match are rejected during parsing.
	issuer string

	// duration controls how long a newly issued token remains valid.
	duration time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a [TokenService] populated with security
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(cfg config.Auth, logger *logger.Logger) TokenService {
	return &tokenService{
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		logger:   logger,
	}
}

// Issue produces a signed token whose claims are the given subject, an
// issued-at of now, and an expiry of now plus the configured lifetime.
// No side effects beyond computation; tokens are never persisted.
func (t *tokenService) Issue(subject string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(t.issuer, subject, t.duration, t.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify validates tokenString and checks its subject claim.
//
// Checks run in fixed order and each failure has its own kind:
//  1. signature (and issuer) — ErrTokenInvalid
//  2. expiry                 — ErrTokenExpired
//  3. subject match          — ErrSubjectMismatch
//
// A token whose signature does not validate is reported as ErrTokenInvalid
// even if its (unverifiable) claims are also expired: nothing in an
// unverified payload is trusted.
func (t *tokenService) Verify(tokenString, expectedSubject string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, t.signKey, t.issuer)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return models.Token{}, ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return models.Token{}, ErrTokenExpired
		default:
			// malformed encoding, wrong issuer, missing subject
			return models.Token{}, ErrTokenInvalid
		}
	}

	if token.Subject() != expectedSubject {
		return models.Token{}, ErrSubjectMismatch
	}

	return token, nil
}
