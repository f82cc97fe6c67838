package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"scopri.app/eventilocali/internal/entity"
	"scopri.app/eventilocali/internal/modules/user/dto"
	"scopri.app/eventilocali/internal/modules/user/repository"
	"scopri.app/eventilocali/pkg/apperror"
)

type fakeUserRepo struct {
	repository.UserRepository

	byEmail map[string]*entity.User
	created []*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.byEmail[user.Email] = user
	r.created = append(r.created, user)
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, u := range r.byEmail {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func registerInput() dto.RegisterInput {
	return dto.RegisterInput{
		Username:  "giulia",
		Email:     "Giulia@Example.com",
		Password:  "password123",
		FirstName: "Giulia",
		LastName:  "Rossi",
	}
}

func TestAuthService_Register_NormalizesEmailAndForcesUserRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	res, err := svc.Register(context.Background(), registerInput())

	require.NoError(t, err)
	assert.Equal(t, "giulia@example.com", res.Email)
	assert.Equal(t, entity.RoleUser, res.Role)

	require.Len(t, repo.created, 1)
	// Password never stored in the clear.
	assert.NotEqual(t, "password123", repo.created[0].PasswordHash)
	assert.NotEmpty(t, repo.created[0].PasswordHash)
}

func TestAuthService_Register_DuplicateConflict(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput())
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestAuthService_Login_ReturnsSignedToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    "giulia@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(res.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, entity.RoleUser, claims.Role)
	assert.Equal(t, repo.created[0].ID.String(), claims.Subject)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginInput{
		Email:    "giulia@example.com",
		Password: "sbagliata",
	})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "secret", time.Hour)

	_, err := svc.Login(context.Background(), dto.LoginInput{
		Email:    "nessuno@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
