package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"scopri.app/eventilocali/internal/entity"
	userRepo "scopri.app/eventilocali/internal/modules/user/repository"
	"scopri.app/eventilocali/pkg/apperror"
)

type fakeUserRepo struct {
	userRepo.UserRepository

	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.Role = role
	return u, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func TestAdminService_UpdateUserRole_PromotesToReviewer(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Username: "marco", Role: entity.RoleUser}
	users := newFakeUserRepo(user)
	svc := NewAdminService(users, nil, nil, nil)

	res, err := svc.UpdateUserRole(context.Background(), user.ID, entity.RoleReviewer)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleReviewer, res.Role)
	assert.Equal(t, entity.RoleReviewer, users.users[user.ID].Role)
}

func TestAdminService_UpdateUserRole_RejectsUnknownRole(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser}
	users := newFakeUserRepo(user)
	svc := NewAdminService(users, nil, nil, nil)

	_, err := svc.UpdateUserRole(context.Background(), user.ID, "superuser")

	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.Equal(t, entity.RoleUser, users.users[user.ID].Role)
}

func TestAdminService_UpdateUserRole_NotFound(t *testing.T) {
	svc := NewAdminService(newFakeUserRepo(), nil, nil, nil)

	_, err := svc.UpdateUserRole(context.Background(), uuid.New(), entity.RoleAdmin)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAdminService_DeleteUser_SelfDeletionForbidden(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	users := newFakeUserRepo(admin)
	svc := NewAdminService(users, nil, nil, nil)

	err := svc.DeleteUser(context.Background(), admin.ID, admin.ID)

	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.Contains(t, users.users, admin.ID)
}

func TestAdminService_DeleteUser_RemovesTarget(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	target := &entity.User{ID: uuid.New(), Role: entity.RoleUser}
	users := newFakeUserRepo(admin, target)
	svc := NewAdminService(users, nil, nil, nil)

	err := svc.DeleteUser(context.Background(), admin.ID, target.ID)

	require.NoError(t, err)
	assert.NotContains(t, users.users, target.ID)
}

func TestAdminService_DeleteUser_NotFound(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	svc := NewAdminService(newFakeUserRepo(admin), nil, nil, nil)

	err := svc.DeleteUser(context.Background(), admin.ID, uuid.New())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
