package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"palcolivre/api/internal/config"
	"palcolivre/api/internal/ids"
	"palcolivre/api/internal/models"
	"palcolivre/api/internal/security"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type RegisterInput struct {
	Nome     string
	Email    string
	Senha    string
	Endereco string
}

type LoginInput struct {
	Email     string
	Senha     string
	IPAddress string
	UserAgent string
}

type LoginResult struct {
	Token string
	User  models.User
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (models.User, error)
	Login(ctx context.Context, input LoginInput) (LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	// Authenticate gates every protected operation: the token signature and
	// expiry must hold and the session row must still exist and be live.
	Authenticate(ctx context.Context, token string) (models.User, *security.AccessClaims, error)
}

type authService struct {
	users    UserStore
	sessions SessionStore
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewAuthService(users UserStore, sessions SessionStore, cfg *config.AppConfig, log zerolog.Logger) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Nome = strings.TrimSpace(input.Nome)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Endereco = strings.TrimSpace(input.Endereco)

	if input.Nome == "" || input.Email == "" || input.Senha == "" || input.Endereco == "" {
		return models.User{}, ValidationError("preencha todos os campos")
	}
	if !emailPattern.MatchString(input.Email) {
		return models.User{}, ValidationError("email inválido")
	}

	passwordHash, err := security.HashPassword(input.Senha)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Nome:         input.Nome,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Endereco:     input.Endereco,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || input.Senha == "" {
		return LoginResult{}, ValidationError("preencha e-mail e senha")
	}

	// Unknown email and wrong password collapse into the same answer.
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	ok, err := security.VerifyPassword(input.Senha, user.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	sessionID := ids.New()
	token, err := security.GenerateAccessToken(
		s.cfg.Security.JWTSecret,
		user.ID,
		sessionID,
		user.Email,
		s.cfg.Security.TokenTTL,
	)
	if err != nil {
		return LoginResult{}, err
	}

	session := models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		TokenHash: security.HashToken(token),
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		ExpiresAt: time.Now().Add(s.cfg.Security.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	err := s.sessions.DeleteByID(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (s *authService) Authenticate(ctx context.Context, token string) (models.User, *security.AccessClaims, error) {
	claims, err := security.ParseAccessToken(token, s.cfg.Security.JWTSecret)
	if err != nil {
		return models.User{}, nil, ErrSessionInvalid
	}

	session, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, nil, ErrSessionInvalid
		}
		return models.User{}, nil, err
	}

	if session.UserID != claims.UserID {
		return models.User{}, nil, ErrSessionInvalid
	}
	if subtle.ConstantTimeCompare(session.TokenHash, security.HashToken(token)) != 1 {
		return models.User{}, nil, ErrSessionInvalid
	}
	if session.ExpiresAt.Before(time.Now()) {
		_ = s.sessions.DeleteByID(ctx, session.ID)
		return models.User{}, nil, ErrSessionInvalid
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, nil, ErrSessionInvalid
		}
		return models.User{}, nil, err
	}

	return user, claims, nil
}
