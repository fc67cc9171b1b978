package auth

import (
	"context"
	"strings"
	"testing"

	"sahel-cargo/internal/config"
	domainUser "sahel-cargo/internal/domain/user"
	appErrors "sahel-cargo/pkg/errors"
	"sahel-cargo/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	domainUser.Repository

	users map[string]*domainUser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domainUser.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domainUser.User) error {
	if _, ok := r.users[u.Email]; ok {
		return domainUser.ErrUserAlreadyExists
	}
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}
}

func seedOperator(t *testing.T, repo *fakeUserRepo, email, password string, active bool) {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domainUser.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     "Aminata Ouedraogo",
		Role:         domainUser.RoleOperator,
		IsActive:     active,
	}))
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	seedOperator(t, repo, "aminata@sahel-cargo.fr", "Secret123", true)
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "Aminata@sahel-cargo.fr",
		Password: "Secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "aminata@sahel-cargo.fr", resp.User.Email)

	claims, err := utils.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "operator", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedOperator(t, repo, "aminata@sahel-cargo.fr", "Secret123", true)
	svc := NewService(repo, testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "aminata@sahel-cargo.fr",
		Password: "WrongPass1",
	})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@sahel-cargo.fr",
		Password: "Secret123",
	})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := newFakeUserRepo()
	seedOperator(t, repo, "aminata@sahel-cargo.fr", "Secret123", false)
	svc := NewService(repo, testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "aminata@sahel-cargo.fr",
		Password: "Secret123",
	})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestCreateUserRejectsWeakPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())

	_, err := svc.CreateUser(context.Background(), &CreateUserRequest{
		Email:    "new@sahel-cargo.fr",
		Password: "lowercase1",
		FullName: "Issa Kabore",
		Role:     "operator",
	})
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "uppercase"))
}
