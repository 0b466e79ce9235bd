package services

import (
	"context"
	"errors"
	"testing"

	"geoattend/internal/adapters/persistence/repositories"
	"geoattend/internal/config"
)

func newAuthFixture(t *testing.T) (*AuthService, *UserService) {
	t.Helper()

	db := newTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  60,
			RefreshTokenDays: 7,
		},
	}

	userRepo := repositories.NewUserRepository(db)
	authService := NewAuthService(userRepo, repositories.NewRefreshTokenRepository(db), cfg)
	userService := NewUserService(userRepo)

	return authService, userService
}

func seedUser(t *testing.T, userService *UserService) {
	t.Helper()

	_, err := userService.CreateUser(context.Background(), &CreateUserInput{
		Name:     "Maria Lopez",
		Email:    "maria@geoattend.app",
		Password: "secret123",
		Role:     "employee",
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	authService, userService := newAuthFixture(t)
	seedUser(t, userService)

	result, err := authService.Login(ctx, &LoginInput{Email: "maria@geoattend.app", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("login should return both tokens")
	}
	if result.User.Email != "maria@geoattend.app" {
		t.Errorf("user email = %q", result.User.Email)
	}

	if _, err := authService.Login(ctx, &LoginInput{Email: "maria@geoattend.app", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := authService.Login(ctx, &LoginInput{Email: "nobody@geoattend.app", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	ctx := context.Background()
	authService, userService := newAuthFixture(t)
	seedUser(t, userService)

	if err := userService.SetUserStatus(ctx, 1, false); err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	// Inactive accounts look like bad credentials, not a distinct state
	if _, err := authService.Login(ctx, &LoginInput{Email: "maria@geoattend.app", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("inactive login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	ctx := context.Background()
	authService, userService := newAuthFixture(t)
	seedUser(t, userService)

	login, err := authService.Login(ctx, &LoginInput{Email: "maria@geoattend.app", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	refreshed, err := authService.RefreshToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh must rotate the refresh token")
	}

	// The spent token is dead
	if _, err := authService.RefreshToken(ctx, login.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("replayed token error = %v, want ErrTokenRevoked", err)
	}

	// The new one still works
	if _, err := authService.RefreshToken(ctx, refreshed.RefreshToken); err != nil {
		t.Errorf("rotated token failed to refresh: %v", err)
	}
}

func TestRefreshTokenGarbage(t *testing.T) {
	ctx := context.Background()
	authService, userService := newAuthFixture(t)
	seedUser(t, userService)

	if _, err := authService.RefreshToken(ctx, "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token error = %v, want ErrInvalidToken", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	authService, userService := newAuthFixture(t)
	seedUser(t, userService)

	login, err := authService.Login(ctx, &LoginInput{Email: "maria@geoattend.app", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := authService.Logout(ctx, login.RefreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := authService.RefreshToken(ctx, login.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("post-logout refresh error = %v, want ErrTokenRevoked", err)
	}
}

func TestLogoutAll(t *testing.T) {
	ctx := context.Background()
	authService, userService := newAuthFixture(t)
	seedUser(t, userService)

	first, err := authService.Login(ctx, &LoginInput{Email: "maria@geoattend.app", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	second, err := authService.Login(ctx, &LoginInput{Email: "maria@geoattend.app", Password: "secret123"})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	if err := authService.LogoutAll(ctx, 1); err != nil {
		t.Fatalf("LogoutAll failed: %v", err)
	}

	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		if _, err := authService.RefreshToken(ctx, token); !errors.Is(err, ErrTokenRevoked) {
			t.Errorf("session survived LogoutAll: %v", err)
		}
	}
}
