package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/config"
	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/pkg/session"
)

const tokenIssuer = "boutique"

// Service checks the single operator credential and turns session tokens into
// explicit Session values.
type Service struct {
	cfg    config.AuthConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the authenticator.
func NewService(cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, logger: logger, now: time.Now}
}

// Login returns a session token when the credentials match. There is no
// lockout or rate limiting.
func (s *Service) Login(email, password string) (string, models.Session, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(email)), []byte(s.cfg.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	if !emailOK || !passwordOK {
		s.logger.Info("login rejected", zap.String("email", email))
		return "", models.Session{}, models.ErrInvalidCredentials
	}

	issued := s.now().UTC()
	token, err := session.Issue(s.cfg.TokenSecret, tokenIssuer, s.cfg.Email, issued)
	if err != nil {
		return "", models.Session{}, fmt.Errorf("issue session token: %w", err)
	}

	s.logger.Info("operator logged in", zap.String("email", s.cfg.Email))
	return token, models.Session{Email: s.cfg.Email, IssuedAt: issued.Truncate(time.Second)}, nil
}

// Authenticate validates a session token.
func (s *Service) Authenticate(token string) (models.Session, error) {
	if strings.TrimSpace(token) == "" {
		return models.Session{}, models.ErrUnauthenticated
	}
	claims, err := session.Parse(s.cfg.TokenSecret, token)
	if err != nil {
		s.logger.Debug("session token rejected", zap.Error(err))
		return models.Session{}, fmt.Errorf("%w: %v", models.ErrUnauthenticated, err)
	}

	sess := models.Session{Email: claims.Email}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return sess, nil
}
