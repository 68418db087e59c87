package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/sangkips/mobileshop-erp/pkg/apperror"
	"github.com/sangkips/mobileshop-erp/pkg/securestore"
	"github.com/sangkips/mobileshop-erp/pkg/utils"
)

// BiometricResult is what the platform prompt reported
type BiometricResult int

const (
	BiometricSucceeded BiometricResult = iota
	BiometricFailed
	BiometricCancelled
)

// Unlock methods recorded in the session token
const (
	UnlockPin       = "pin"
	UnlockBiometric = "biometric"
)

// Session is the unlocked state handed to the shell
type Session struct {
	Token     string
	Method    string
	ExpiresAt time.Time
}

// AuthService gates the app behind the PIN or a biometric check. Failed
// attempts are counted for display only; there is no lockout.
type AuthService struct {
	store   SecretStore
	expiry  time.Duration
	issuer  string
	mu      sync.Mutex
	manager *utils.SessionManager

	attempts int
}

// NewAuthService creates a new auth service
func NewAuthService(store SecretStore, expiry time.Duration, issuer string) *AuthService {
	return &AuthService{
		store:  store,
		expiry: expiry,
		issuer: issuer,
	}
}

// sessions returns the token manager, creating the signing secret on first use.
// Caller holds mu.
func (s *AuthService) sessions() (*utils.SessionManager, error) {
	if s.manager != nil {
		return s.manager, nil
	}

	secret, ok, err := s.store.Get(securestore.KeySessionSecret)
	if err != nil {
		return nil, err
	}
	if !ok {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		if err := s.store.Set(securestore.KeySessionSecret, secret); err != nil {
			return nil, err
		}
	}

	s.manager = utils.NewSessionManager([]byte(secret), s.expiry, s.issuer)
	return s.manager, nil
}

func (s *AuthService) issue(method string) (*Session, error) {
	m, err := s.sessions()
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := m.Issue(method)
	if err != nil {
		return nil, err
	}
	s.attempts = 0
	return &Session{Token: token, Method: method, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) requireSetup() error {
	done, err := s.store.GetBool(securestore.KeySetupCompleted)
	if err != nil {
		return err
	}
	if !done {
		return apperror.ErrSetupRequired
	}
	return nil
}

// VerifyPin unlocks with the PIN
func (s *AuthService) VerifyPin(pin string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSetup(); err != nil {
		return nil, err
	}

	hash, ok, err := s.store.Get(securestore.KeyUserPin)
	if err != nil {
		return nil, err
	}
	if !ok || !utils.ValidPin(pin) || !utils.CheckPinHash(pin, hash) {
		s.attempts++
		return nil, &apperror.AppError{
			Kind:    apperror.ErrPinMismatch.Kind,
			Message: apperror.ErrPinMismatch.Message,
			Errors:  []apperror.FieldError{{Field: "pin", Message: fmt.Sprintf("Try again (attempt %d)", s.attempts)}},
		}
	}

	return s.issue(UnlockPin)
}

// UnlockWithBiometric turns the platform prompt result into a session.
// A cancelled prompt is not counted as a failed attempt.
func (s *AuthService) UnlockWithBiometric(result BiometricResult) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSetup(); err != nil {
		return nil, err
	}

	switch result {
	case BiometricSucceeded:
		return s.issue(UnlockBiometric)
	case BiometricCancelled:
		return nil, apperror.NewAppError(apperror.KindUnauthorized, "Biometric prompt cancelled")
	default:
		s.attempts++
		return nil, apperror.NewAppError(apperror.KindUnauthorized, "Biometric not recognised")
	}
}

// ValidateSession reports whether token still unlocks the app
func (s *AuthService) ValidateSession(token string) error {
	s.mu.Lock()
	m, err := s.sessions()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if _, err := m.Validate(token); err != nil {
		return apperror.ErrSessionExpired
	}
	return nil
}

// FailedAttempts is the number of failed unlocks since the last success
func (s *AuthService) FailedAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// forget drops the cached signing secret after a factory reset
func (s *AuthService) forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager = nil
	s.attempts = 0
}
