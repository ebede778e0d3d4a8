package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newAuthService(repo *stubRepo) *AuthService {
	return &AuthService{
		Repo:      repo,
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	a := hashPassword("abcd1234", "hunter22")
	b := hashPassword("abcd1234", "hunter22")
	if a != b {
		t.Fatalf("same salt+password hashed differently: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("hash length=%d want 64 hex chars", len(a))
	}
	if c := hashPassword("ffff0000", "hunter22"); c == a {
		t.Fatalf("different salt produced identical hash")
	}
}

func TestRegisterLogin_Roundtrip(t *testing.T) {
	repo := newStubRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "Priya",
		Password: "secret99",
		FullName: "Priya S",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "priya" {
		t.Fatalf("username=%q want lowercased priya", user.Username)
	}
	if user.PasswordHash == "secret99" || user.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}

	got, token, err := svc.Login(context.Background(), "PRIYA", "secret99")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("login returned user %d want %d", got.ID, user.ID)
	}
	if token == "" {
		t.Fatalf("empty token")
	}

	id, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != user.ID {
		t.Fatalf("token user=%d want %d", id, user.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubRepo()
	svc := newAuthService(repo)
	if _, err := svc.Register(context.Background(), RegisterInput{Username: "bob", Password: "rightpass"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := svc.Login(context.Background(), "bob", "wrongpass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err=%v want ErrInvalidCredentials", err)
	}
	_, _, err = svc.Login(context.Background(), "nobody", "rightpass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err=%v want ErrInvalidCredentials", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newStubRepo()
	svc := newAuthService(repo)
	if _, err := svc.Register(context.Background(), RegisterInput{Username: "dup", Password: "pass1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(context.Background(), RegisterInput{Username: "DUP", Password: "pass2"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err=%v want ErrUsernameTaken", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := newAuthService(newStubRepo())
	if _, err := svc.VerifyToken("not.a.token"); err == nil {
		t.Fatalf("expected error for garbage token")
	}
	other := &AuthService{JWTSecret: "other-secret", TokenTTL: time.Hour}
	u, _ := newAuthService(newStubRepo()).Register(context.Background(), RegisterInput{Username: "x", Password: "yyyy"})
	token, err := newAuthService(newStubRepo()).issueToken(u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.VerifyToken(token); err == nil {
		t.Fatalf("token verified across different secrets")
	}
}
