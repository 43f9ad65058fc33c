package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/config"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

type fakeMailer struct {
	verifications map[string]string
	resets        map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		verifications: make(map[string]string),
		resets:        make(map[string]string),
	}
}

func (m *fakeMailer) SendVerificationCode(_ context.Context, email, code string) error {
	m.verifications[email] = code
	return nil
}

func (m *fakeMailer) SendPasswordResetCode(_ context.Context, email, code string) error {
	m.resets[email] = code
	return nil
}

func authFixture(t *testing.T, expiry time.Duration) (*AuthService, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore()
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  expiry,
		BcryptCost: bcrypt.MinCost,
		CodeTTL:    15 * time.Minute,
	}
	return NewAuthService(users, nil, newFakeMailer(), cfg), users
}

func seedUser(t *testing.T, users *fakeUserStore, username, password string, role model.Role, verified bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		IsVerified:   verified,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}

func TestTokenRoundTrip(t *testing.T) {
	svc, users := authFixture(t, time.Hour)
	user := seedUser(t, users, "alice", "secret-pass", model.RoleTeacher, true)

	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "alice" || claims.Role != model.RoleTeacher {
		t.Errorf("claims = %+v, want user %d alice teacher", claims, user.ID)
	}

	resolved, err := svc.ResolveUser(context.Background(), claims)
	if err != nil {
		t.Fatalf("ResolveUser: %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("resolved id = %d, want %d", resolved.ID, user.ID)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc, users := authFixture(t, -time.Minute)
	user := seedUser(t, users, "bob", "secret-pass", model.RoleStudent, true)

	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.ValidateToken(token)
	appErr := apperr.From(err)
	if appErr == nil || appErr.Detail != "Invalid or expired token" {
		t.Fatalf("err = %v, want invalid or expired token", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc, users := authFixture(t, time.Hour)
	user := seedUser(t, users, "carol", "secret-pass", model.RoleStudent, true)

	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ValidateToken(token + "x"); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestResolveUserChecksAccountState(t *testing.T) {
	svc, users := authFixture(t, time.Hour)
	user := seedUser(t, users, "dave", "secret-pass", model.RoleStudent, true)

	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}

	// Blocking after issuance invalidates the token.
	user.IsBlocked = true
	if err := users.Update(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	_, err = svc.ResolveUser(context.Background(), claims)
	appErr := apperr.From(err)
	if appErr == nil || appErr.Kind != apperr.Forbidden {
		t.Errorf("blocked user: err = %v, want Forbidden", err)
	}

	// Deleting the account does too.
	if err := users.Delete(context.Background(), user.ID); err != nil {
		t.Fatal(err)
	}
	_, err = svc.ResolveUser(context.Background(), claims)
	if appErr := apperr.From(err); appErr == nil || appErr.Kind != apperr.Unauthenticated {
		t.Errorf("deleted user: err = %v, want Unauthenticated", err)
	}
}

func TestLogin(t *testing.T) {
	svc, users := authFixture(t, time.Hour)
	seedUser(t, users, "erin", "correct-horse", model.RoleStudent, true)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Username: "erin", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.TokenType != "bearer" || resp.AccessToken == "" {
		t.Errorf("resp = %+v, want bearer token", resp)
	}

	_, err = svc.Login(context.Background(), &model.LoginRequest{Username: "erin", Password: "wrong"})
	appErr := apperr.From(err)
	if appErr == nil || appErr.Kind != apperr.Unauthenticated {
		t.Errorf("wrong password: err = %v, want Unauthenticated", err)
	}

	_, err = svc.Login(context.Background(), &model.LoginRequest{Username: "nobody", Password: "x"})
	if appErr := apperr.From(err); appErr == nil || appErr.Kind != apperr.Unauthenticated {
		t.Errorf("unknown user: err = %v, want Unauthenticated", err)
	}
}

func TestLoginUnverifiedOrBlocked(t *testing.T) {
	svc, users := authFixture(t, time.Hour)
	seedUser(t, users, "frank", "secret-pass", model.RoleStudent, false)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "frank", Password: "secret-pass"})
	appErr := apperr.From(err)
	if appErr == nil || appErr.Detail != "Account is not verified" {
		t.Errorf("unverified: err = %v", err)
	}

	blocked := seedUser(t, users, "grace", "secret-pass", model.RoleStudent, true)
	blocked.IsBlocked = true
	if err := users.Update(context.Background(), blocked); err != nil {
		t.Fatal(err)
	}
	_, err = svc.Login(context.Background(), &model.LoginRequest{Username: "grace", Password: "secret-pass"})
	if appErr := apperr.From(err); appErr == nil || appErr.Detail != "Account is blocked" {
		t.Errorf("blocked: err = %v", err)
	}
}
