package app_test

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pettrack/internal/app"
	"pettrack/internal/domain"
)

type mockUserRepo struct {
	byUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	byIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn     func(ctx context.Context, username, hash string) (*domain.User, error)
	countFn      func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.byUsernameFn != nil {
		return m.byUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username, hash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, hash)
	}
	return &domain.User{ID: 1, Username: username, PasswordHash: hash}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn  func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	byTokenFn func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn  func(ctx context.Context, token string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.byTokenFn != nil {
		return m.byTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error { return nil }

func userWithPassword(t *testing.T, username, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &domain.User{ID: 1, Username: username, PasswordHash: string(hash)}
}

func TestLogin_Success(t *testing.T) {
	user := userWithPassword(t, "alex", "hunter2")
	users := &mockUserRepo{
		byUsernameFn: func(_ context.Context, _ string) (*domain.User, error) {
			return user, nil
		},
	}
	var createdToken string
	sessions := &mockSessionRepo{
		createFn: func(_ context.Context, userID int64, token string, _ time.Time) error {
			if userID != 1 {
				t.Errorf("session userID = %d; want 1", userID)
			}
			createdToken = token
			return nil
		},
	}
	svc := app.NewAuthService(users, sessions)

	token, err := svc.Login(context.Background(), "alex", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || token != createdToken {
		t.Errorf("token = %q; want stored token %q", token, createdToken)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	user := userWithPassword(t, "alex", "hunter2")
	users := &mockUserRepo{
		byUsernameFn: func(_ context.Context, _ string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := app.NewAuthService(users, &mockSessionRepo{})

	if _, err := svc.Login(context.Background(), "alex", "wrong"); err != app.ErrInvalidCredentials {
		t.Fatalf("err = %v; want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := app.NewAuthService(&mockUserRepo{}, &mockSessionRepo{})

	if _, err := svc.Login(context.Background(), "ghost", "pw"); err != app.ErrInvalidCredentials {
		t.Fatalf("err = %v; want ErrInvalidCredentials", err)
	}
}

func TestValidateSession_Expired(t *testing.T) {
	deleted := false
	sessions := &mockSessionRepo{
		byTokenFn: func(_ context.Context, token string) (*domain.Session, error) {
			return &domain.Session{Token: token, UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)}, nil
		},
		deleteFn: func(_ context.Context, _ string) error {
			deleted = true
			return nil
		},
	}
	svc := app.NewAuthService(&mockUserRepo{}, sessions)

	if _, err := svc.ValidateSession(context.Background(), "tok"); err != app.ErrSessionExpired {
		t.Fatalf("err = %v; want ErrSessionExpired", err)
	}
	if !deleted {
		t.Error("expected expired session to be deleted")
	}
}

func TestValidateSession_Success(t *testing.T) {
	user := &domain.User{ID: 1, Username: "alex"}
	users := &mockUserRepo{
		byIDFn: func(_ context.Context, id int64) (*domain.User, error) {
			if id != 1 {
				t.Errorf("lookup id = %d; want 1", id)
			}
			return user, nil
		},
	}
	sessions := &mockSessionRepo{
		byTokenFn: func(_ context.Context, token string) (*domain.Session, error) {
			return &domain.Session{Token: token, UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	svc := app.NewAuthService(users, sessions)

	got, err := svc.ValidateSession(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if got != user {
		t.Errorf("got %+v; want %+v", got, user)
	}
}

func TestCreateInitialUser_RefusesWhenUsersExist(t *testing.T) {
	users := &mockUserRepo{
		countFn: func(_ context.Context) (int, error) { return 1, nil },
	}
	svc := app.NewAuthService(users, &mockSessionRepo{})

	if err := svc.CreateInitialUser(context.Background(), "alex", "pw"); err == nil {
		t.Fatal("expected error when users already exist")
	}
}

func TestValidateForwardAuth_AutoProvisions(t *testing.T) {
	created := false
	users := &mockUserRepo{
		createFn: func(_ context.Context, username, hash string) (*domain.User, error) {
			created = true
			if hash != "" {
				t.Errorf("hash = %q; want empty for proxy-owned account", hash)
			}
			return &domain.User{ID: 2, Username: username}, nil
		},
	}
	svc := app.NewAuthService(users, &mockSessionRepo{})

	user, err := svc.ValidateForwardAuth(context.Background(), "sso-user")
	if err != nil {
		t.Fatalf("ValidateForwardAuth: %v", err)
	}
	if !created || user.Username != "sso-user" {
		t.Errorf("created=%v user=%+v", created, user)
	}
}
