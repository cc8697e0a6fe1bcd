package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"turnex/config"
	"turnex/internal/domain"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.users[r.nextID] = domain.User{
		ID:           r.nextID,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		Phone:        dto.Phone,
		PasswordHash: dto.Password,
		Role:         dto.Role,
		IsActive:     true,
	}
	return r.nextID, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return nil, nil
}

type fakeAuthRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{sessions: make(map[string]domain.Session)}
}

func (r *fakeAuthRepo) CreateSession(ctx context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeAuthRepo) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.RefreshToken == refreshToken {
			s := s
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeAuthRepo) DeleteSession(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *fakeAuthRepo) DeleteSessionsByUserID(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func newAuthTestEnv() (*AuthServiceImpl, *fakeUserRepo, *fakeAuthRepo) {
	userRepo := newFakeUserRepo()
	authRepo := newFakeAuthRepo()
	cfg := config.JWTConfig{
		SigningKey:      "test-key",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
	}
	return NewAuthService(authRepo, userRepo, cfg, zap.NewNop()), userRepo, authRepo
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc, _, sessions := newAuthTestEnv()

	id, err := svc.Register(context.Background(), domain.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+12025550100",
		Password:  "secret1",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if id == 0 {
		t.Fatal("no user id assigned")
	}

	tokens, err := svc.Login(context.Background(), domain.LoginRequest{
		Login:    "ada@example.com",
		Password: "secret1",
	}, "test-agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("login must yield both tokens")
	}
	if len(sessions.sessions) != 1 {
		t.Errorf("expected one session, got %d", len(sessions.sessions))
	}

	userID, role, err := svc.ParseToken(context.Background(), tokens.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken() error: %v", err)
	}
	if userID != id {
		t.Errorf("token user id = %d, want %d", userID, id)
	}
	if role != domain.UserRoleCustomer {
		t.Errorf("registration must always grant the customer role, got %s", role)
	}
}

func TestAuthRegister_Validation(t *testing.T) {
	svc, _, _ := newAuthTestEnv()

	base := domain.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+12025550100",
		Password:  "secret1",
	}

	bad := base
	bad.Email = "not-an-email"
	if _, err := svc.Register(context.Background(), bad); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad email: got %v, want ErrValidation", err)
	}

	bad = base
	bad.Phone = "call me"
	if _, err := svc.Register(context.Background(), bad); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad phone: got %v, want ErrValidation", err)
	}

	bad = base
	bad.FirstName = "A"
	if _, err := svc.Register(context.Background(), bad); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad name: got %v, want ErrValidation", err)
	}

	if _, err := svc.Register(context.Background(), base); err != nil {
		t.Fatalf("valid Register() error: %v", err)
	}
	if _, err := svc.Register(context.Background(), base); err == nil {
		t.Error("duplicate email must be rejected")
	}
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthTestEnv()

	if _, err := svc.Register(context.Background(), domain.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Phone: "+12025550100", Password: "secret1",
	}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if _, err := svc.Login(context.Background(), domain.LoginRequest{
		Login: "ada@example.com", Password: "wrong",
	}, "", ""); err == nil {
		t.Error("wrong password must fail")
	}
	if _, err := svc.Login(context.Background(), domain.LoginRequest{
		Login: "nobody@example.com", Password: "secret1",
	}, "", ""); err == nil {
		t.Error("unknown email must fail")
	}
}

func TestAuthRefreshRotatesSession(t *testing.T) {
	svc, _, sessions := newAuthTestEnv()

	if _, err := svc.Register(context.Background(), domain.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Phone: "+12025550100", Password: "secret1",
	}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	tokens, err := svc.Login(context.Background(), domain.LoginRequest{
		Login: "ada@example.com", Password: "secret1",
	}, "", "")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	rotated, err := svc.RefreshTokens(context.Background(), tokens.RefreshToken, "", "")
	if err != nil {
		t.Fatalf("RefreshTokens() error: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Error("refresh must rotate the refresh token")
	}
	if len(sessions.sessions) != 1 {
		t.Errorf("rotation must leave exactly one session, got %d", len(sessions.sessions))
	}

	// The old token is dead after rotation.
	if _, err := svc.RefreshTokens(context.Background(), tokens.RefreshToken, "", ""); err == nil {
		t.Error("a rotated-out refresh token must be rejected")
	}
}

func TestAuthLogout(t *testing.T) {
	svc, _, sessions := newAuthTestEnv()

	if _, err := svc.Register(context.Background(), domain.RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Phone: "+12025550100", Password: "secret1",
	}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	tokens, err := svc.Login(context.Background(), domain.LoginRequest{
		Login: "ada@example.com", Password: "secret1",
	}, "", "")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	if err := svc.Logout(context.Background(), tokens.RefreshToken); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Error("logout must delete the session")
	}

	// Logging out an unknown token is a no-op.
	if err := svc.Logout(context.Background(), "unknown"); err != nil {
		t.Errorf("logout of unknown token: %v", err)
	}
}
