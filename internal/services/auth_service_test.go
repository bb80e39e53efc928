package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"pollpulse/internal/domain/user"
	"pollpulse/internal/repository"
	"pollpulse/internal/testutil"
	pollpulse_errors "pollpulse/pkg/errors"
)

func testUser() user.User {
	return user.User{ID: uuid.New(), Username: "alice", Email: "a@b.com"}
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.AccessToken == "" {
		t.Fatal("register returned empty token")
	}
	if reg.User.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", reg.User.Email)
	}

	for _, identity := range []string{"alice", "alice@example.com"} {
		resp, err := svc.Login(ctx, LoginInput{Identity: identity, Password: "correct horse"})
		if err != nil {
			t.Fatalf("Login(%q) error = %v", identity, err)
		}
		claims, err := svc.ParseAccessToken(resp.AccessToken)
		if err != nil {
			t.Fatalf("ParseAccessToken() error = %v", err)
		}
		if claims.UserID != reg.User.ID {
			t.Errorf("token subject = %q, want %q", claims.UserID, reg.User.ID)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"empty username", RegisterInput{Email: "a@b.com", Password: "longenough"}},
		{"bad email", RegisterInput{Username: "bob", Email: "not-an-email", Password: "longenough"}},
		{"short password", RegisterInput{Username: "bob", Email: "a@b.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.in); !errors.Is(err, pollpulse_errors.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	in := RegisterInput{Username: "alice", Email: "a@b.com", Password: "longenough"}
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, in); !errors.Is(err, pollpulse_errors.ErrAlreadyExists) {
		t.Errorf("second register error = %v, want ErrAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@b.com", Password: "longenough"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, LoginInput{Identity: "alice", Password: "wrong password"}); !errors.Is(err, pollpulse_errors.ErrUnauthorized) {
		t.Errorf("wrong password error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Identity: "nobody", Password: "longenough"}); !errors.Is(err, pollpulse_errors.ErrUnauthorized) {
		t.Errorf("unknown user error = %v, want ErrUnauthorized", err)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ParseAccessToken(token); !errors.Is(err, pollpulse_errors.ErrUnauthorized) {
			t.Errorf("ParseAccessToken(%q) error = %v, want ErrUnauthorized", token, err)
		}
	}
}

func TestParseAccessTokenRejectsForeignSecret(t *testing.T) {
	svc := newAuthService(t)
	other := NewAuthService(nil, "different-secret", time.Hour)

	resp, err := other.issueToken(testUser())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := svc.ParseAccessToken(resp.AccessToken); !errors.Is(err, pollpulse_errors.ErrUnauthorized) {
		t.Errorf("foreign token error = %v, want ErrUnauthorized", err)
	}
}

func TestProfile(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@b.com", Password: "longenough"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	id, err := uuid.Parse(reg.User.ID)
	if err != nil {
		t.Fatalf("parse user id: %v", err)
	}

	u, err := svc.Profile(ctx, id)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("username = %q, want alice", u.Username)
	}

	if _, err := svc.Profile(ctx, uuid.New()); !errors.Is(err, pollpulse_errors.ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
}
