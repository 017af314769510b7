package services

import (
	"context"
	"errors"
	"testing"

	"github.com/connective/backend/models"
	"github.com/connective/backend/pkg"
)

func TestRegisterLoginRoundtrip(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, "test-secret", 60)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &models.RegisterRequest{
		Email:    "acme@example.com",
		Password: "correct-horse",
		Kind:     models.ProfileKindBusiness,
		Name:     "Acme Corp",
		Location: "Berlin",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if tokens.AccessToken == "" {
		t.Fatal("expected non-empty access token")
	}
	if tokens.User.PasswordHash != "" {
		t.Error("password hash must not leak into the response")
	}

	// Token geçerli ve doğru kullanıcıya işaret ediyor
	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != tokens.User.ID {
		t.Errorf("claims.UserID = %s, want %s", claims.UserID, tokens.User.ID)
	}

	// Aynı kimlikle login
	loginTokens, err := svc.Login(ctx, &models.LoginRequest{
		Email:    "acme@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loginTokens.User.ID != tokens.User.ID {
		t.Errorf("login user ID = %s, want %s", loginTokens.User.ID, tokens.User.ID)
	}
}

func TestLoginDoesNotLeakWhichFieldWasWrong(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, "test-secret", 60)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &models.RegisterRequest{
		Email:    "jane@example.com",
		Password: "secret-password",
		Kind:     models.ProfileKindIndividual,
		Name:     "Jane",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, wrongPassErr := svc.Login(ctx, &models.LoginRequest{Email: "jane@example.com", Password: "nope"})
	_, noUserErr := svc.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "nope"})

	if !errors.Is(wrongPassErr, pkg.ErrUnauthorized) {
		t.Fatalf("wrong password: expected ErrUnauthorized, got %v", wrongPassErr)
	}
	if !errors.Is(noUserErr, pkg.ErrUnauthorized) {
		t.Fatalf("unknown user: expected ErrUnauthorized, got %v", noUserErr)
	}
	// İki durum da aynı mesajı taşımalı
	if wrongPassErr.Error() != noUserErr.Error() {
		t.Errorf("error messages differ: %q vs %q", wrongPassErr.Error(), noUserErr.Error())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, "test-secret", 60)
	ctx := context.Background()

	req := &models.RegisterRequest{
		Email:    "dup@example.com",
		Password: "password123",
		Kind:     models.ProfileKindIndividual,
		Name:     "First",
	}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	if _, err := svc.Register(ctx, req); !errors.Is(err, pkg.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret", 60)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ValidateAccessToken(token); !errors.Is(err, pkg.ErrUnauthorized) {
			t.Errorf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	userRepo := newFakeUserRepo()
	issuer := NewAuthService(userRepo, "secret-a", 60)
	verifier := NewAuthService(userRepo, "secret-b", 60)

	tokens, err := issuer.Register(context.Background(), &models.RegisterRequest{
		Email:    "x@example.com",
		Password: "password123",
		Kind:     models.ProfileKindIndividual,
		Name:     "X",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := verifier.ValidateAccessToken(tokens.AccessToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for cross-secret token, got %v", err)
	}
}
