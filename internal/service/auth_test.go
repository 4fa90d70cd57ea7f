package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"palcolivre/api/internal/config"
)

func testAuthConfig() *config.AppConfig {
	return &config.AppConfig{
		Security: config.SecurityConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			SessionTTL: time.Hour,
		},
	}
}

func newTestAuthService() (AuthService, *fakeUserStore, *fakeSessionStore) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := NewAuthService(users, sessions, testAuthConfig(), zerolog.Nop())
	return svc, users, sessions
}

func TestRegisterLoginAuthenticate(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Nome:     "Ana Souza",
		Email:    "Ana@Example.com",
		Senha:    "senha123",
		Endereco: "Rua das Flores, 10",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("email should be lowercased, got %q", user.Email)
	}

	result, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Senha: "senha123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("login should issue a token")
	}

	authed, claims, err := svc.Authenticate(ctx, result.Token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("authenticated user = %q, want %q", authed.ID, user.ID)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims user = %q, want %q", claims.UserID, user.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	cases := []RegisterInput{
		{Email: "a@b.com", Senha: "x", Endereco: "rua"},
		{Nome: "Ana", Senha: "x", Endereco: "rua"},
		{Nome: "Ana", Email: "a@b.com", Endereco: "rua"},
		{Nome: "Ana", Email: "a@b.com", Senha: "x"},
		{Nome: "Ana", Email: "sem-arroba", Senha: "x", Endereco: "rua"},
		{Nome: "Ana", Email: "a@b", Senha: "x", Endereco: "rua"},
	}
	for _, input := range cases {
		if _, err := svc.Register(ctx, input); !IsValidation(err) {
			t.Errorf("Register(%+v): got %v, want validation error", input, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	input := RegisterInput{Nome: "Ana", Email: "a@b.com", Senha: "x", Endereco: "rua"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	input.Nome = "Outra Ana"
	if _, err := svc.Register(ctx, input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second Register: got %v, want ErrEmailTaken", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Nome: "Ana", Email: "a@b.com", Senha: "correta", Endereco: "rua",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(ctx, LoginInput{Email: "nao@existe.com", Senha: "x"})
	_, errWrong := svc.Login(ctx, LoginInput{Email: "a@b.com", Senha: "errada"})

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", errWrong)
	}
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, _, err := svc.Authenticate(context.Background(), "nem-um-jwt"); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("got %v, want ErrSessionInvalid", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Nome: "Ana", Email: "a@b.com", Senha: "senha", Endereco: "rua",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	result, err := svc.Login(ctx, LoginInput{Email: "a@b.com", Senha: "senha"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, claims, err := svc.Authenticate(ctx, result.Token)
	if err != nil {
		t.Fatalf("Authenticate before logout: %v", err)
	}

	if err := svc.Logout(ctx, claims.SessionID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Fatal("session row should be gone after logout")
	}

	// The token still carries a valid signature but the session is revoked.
	if _, _, err := svc.Authenticate(ctx, result.Token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("Authenticate after logout: got %v, want ErrSessionInvalid", err)
	}

	// Logging out twice is a no-op, not an error.
	if err := svc.Logout(ctx, claims.SessionID); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestAuthenticateExpiredSessionRow(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Nome: "Ana", Email: "a@b.com", Senha: "senha", Endereco: "rua",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	result, err := svc.Login(ctx, LoginInput{Email: "a@b.com", Senha: "senha"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	for id, session := range sessions.sessions {
		session.ExpiresAt = time.Now().Add(-time.Minute)
		sessions.sessions[id] = session
	}

	if _, _, err := svc.Authenticate(ctx, result.Token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("got %v, want ErrSessionInvalid", err)
	}
	if len(sessions.sessions) != 0 {
		t.Fatal("stale session row should be deleted on rejection")
	}
}
