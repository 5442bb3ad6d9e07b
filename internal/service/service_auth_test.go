package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ta4ilka/route-atlas/internal/logger"
	"github.com/ta4ilka/route-atlas/internal/utils"
	"github.com/ta4ilka/route-atlas/models"
)

func newTestAuthService(repo *mockUserRepository) *authService {
	return &authService{
		userRepository: repo,
		hashKey:        "hash-key",
		tokenSignKey:   "sign-key",
		tokenIssuer:    "route-atlas",
		tokenDuration:  time.Hour,
		logger:         logger.Nop(),
	}
}

func TestAuthService_RegisterUser_Success(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newTestAuthService(repo)

	var created models.User
	repo.createFn = func(_ context.Context, user models.User) (models.User, error) {
		created = user
		user.ID = 1
		return user, nil
	}

	user, err := svc.RegisterUser(context.Background(), models.AuthRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, []models.Role{models.RoleUser}, user.Roles)

	// the password is hashed before it reaches the store
	assert.NotEqual(t, "secret", created.PasswordHash)
	assert.Equal(t, utils.HashString("secret", "hash-key"), created.PasswordHash)
}

func TestAuthService_RegisterUser_EmptyFields(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.RegisterUser(context.Background(), models.AuthRequest{Username: "alice"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), models.AuthRequest{Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newTestAuthService(repo)

	repo.findFn = func(_ context.Context, username string) (models.User, error) {
		return models.User{
			ID:           3,
			Username:     username,
			PasswordHash: utils.HashString("secret", "hash-key"),
		}, nil
	}

	user, err := svc.Login(context.Background(), models.AuthRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newTestAuthService(repo)

	repo.findFn = func(_ context.Context, _ string) (models.User, error) {
		return models.User{PasswordHash: utils.HashString("secret", "hash-key")}, nil
	}

	_, err := svc.Login(context.Background(), models.AuthRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	user := models.User{ID: 42, Username: "alice"}
	token, err := svc.CreateToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_ParseToken_InvalidNormalised(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestAuthService_ParseToken_WrongIssuerRejected(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	foreign, err := utils.GenerateJWTToken("someone-else", 42, time.Hour, "sign-key")
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), foreign.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}
