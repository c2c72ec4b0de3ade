package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykaya/deptportal/internal/app/events"
	"github.com/ykaya/deptportal/internal/app/models"
	"github.com/ykaya/deptportal/internal/pkg/apperrors"
)

func newAccountServiceForTest(store *memAccountStore) AccountService {
	return NewAccountService(store, events.NewBus(zerolog.Nop()), zerolog.Nop())
}

var (
	superAdminActor = models.Actor{AccountID: 1, Role: models.RoleSuperAdmin}
	adminActor      = models.Actor{AccountID: 2, Role: models.RoleAdmin}
	studentActor    = models.Actor{AccountID: 3, Role: models.RoleStudent}
)

func TestSetApprovalStatus(t *testing.T) {
	tests := []struct {
		name       string
		actor      models.Actor
		current    models.ApprovalStatus
		next       models.ApprovalStatus
		wantErr    error
		wantStatus models.ApprovalStatus
	}{
		{
			name:       "pending to approved",
			actor:      superAdminActor,
			current:    models.ApprovalPending,
			next:       models.ApprovalApproved,
			wantStatus: models.ApprovalApproved,
		},
		{
			name:       "pending to rejected",
			actor:      superAdminActor,
			current:    models.ApprovalPending,
			next:       models.ApprovalRejected,
			wantStatus: models.ApprovalRejected,
		},
		{
			name:       "rejected account can be approved later",
			actor:      superAdminActor,
			current:    models.ApprovalRejected,
			next:       models.ApprovalApproved,
			wantStatus: models.ApprovalApproved,
		},
		{
			name:       "approved account can be rejected later",
			actor:      superAdminActor,
			current:    models.ApprovalApproved,
			next:       models.ApprovalRejected,
			wantStatus: models.ApprovalRejected,
		},
		{
			name:       "setting the same status is a no-op",
			actor:      superAdminActor,
			current:    models.ApprovalApproved,
			next:       models.ApprovalApproved,
			wantStatus: models.ApprovalApproved,
		},
		{
			name:    "nothing moves back to pending",
			actor:   superAdminActor,
			current: models.ApprovalApproved,
			next:    models.ApprovalPending,
			wantErr: apperrors.ErrInvalidTransition,
		},
		{
			name:    "admin cannot approve accounts",
			actor:   adminActor,
			current: models.ApprovalPending,
			next:    models.ApprovalApproved,
			wantErr: apperrors.ErrPermissionDenied,
		},
		{
			name:    "student cannot approve accounts",
			actor:   studentActor,
			current: models.ApprovalPending,
			next:    models.ApprovalApproved,
			wantErr: apperrors.ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemAccountStore()
			target := store.add(models.Account{
				Email:          "target@dept.edu",
				Role:           models.RoleStudent,
				ApprovalStatus: tt.current,
			})
			svc := newAccountServiceForTest(store)

			updated, err := svc.SetApprovalStatus(context.Background(), tt.actor, target.ID, tt.next)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, updated.ApprovalStatus)
		})
	}
}

func TestSetApprovalStatusMissingAccount(t *testing.T) {
	svc := newAccountServiceForTest(newMemAccountStore())

	_, err := svc.SetApprovalStatus(context.Background(), superAdminActor, 42, models.ApprovalApproved)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestSetRole(t *testing.T) {
	t.Run("super admin promotes a student to admin", func(t *testing.T) {
		store := newMemAccountStore()
		target := store.add(models.Account{Role: models.RoleStudent, ApprovalStatus: models.ApprovalApproved})
		svc := newAccountServiceForTest(store)

		updated, err := svc.SetRole(context.Background(), superAdminActor, target.ID, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, updated.Role)
	})

	t.Run("student becomes alumnus", func(t *testing.T) {
		store := newMemAccountStore()
		target := store.add(models.Account{Role: models.RoleStudent, ApprovalStatus: models.ApprovalApproved})
		svc := newAccountServiceForTest(store)

		updated, err := svc.SetRole(context.Background(), superAdminActor, target.ID, models.RoleAlumnus)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAlumnus, updated.Role)
	})

	t.Run("admin cannot change roles", func(t *testing.T) {
		store := newMemAccountStore()
		target := store.add(models.Account{Role: models.RoleStudent})
		svc := newAccountServiceForTest(store)

		_, err := svc.SetRole(context.Background(), adminActor, target.ID, models.RoleAdmin)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("super_admin cannot be granted", func(t *testing.T) {
		store := newMemAccountStore()
		target := store.add(models.Account{Role: models.RoleAdmin})
		svc := newAccountServiceForTest(store)

		_, err := svc.SetRole(context.Background(), superAdminActor, target.ID, models.RoleSuperAdmin)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("super_admin cannot be revoked", func(t *testing.T) {
		store := newMemAccountStore()
		target := store.add(models.Account{Role: models.RoleSuperAdmin})
		svc := newAccountServiceForTest(store)

		_, err := svc.SetRole(context.Background(), superAdminActor, target.ID, models.RoleStudent)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("missing account", func(t *testing.T) {
		svc := newAccountServiceForTest(newMemAccountStore())

		_, err := svc.SetRole(context.Background(), superAdminActor, 42, models.RoleAdmin)
		assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	})
}

func TestListAccountsByStatus(t *testing.T) {
	store := newMemAccountStore()
	first := store.add(models.Account{Email: "a@dept.edu", ApprovalStatus: models.ApprovalPending})
	store.add(models.Account{Email: "b@dept.edu", ApprovalStatus: models.ApprovalApproved})
	second := store.add(models.Account{Email: "c@dept.edu", ApprovalStatus: models.ApprovalPending})
	svc := newAccountServiceForTest(store)

	t.Run("returns accounts in registration order", func(t *testing.T) {
		accounts, total, err := svc.ListAccountsByStatus(context.Background(), superAdminActor, models.ApprovalPending, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, accounts, 2)
		assert.Equal(t, first.ID, accounts[0].ID)
		assert.Equal(t, second.ID, accounts[1].ID)
	})

	t.Run("only the super admin may list", func(t *testing.T) {
		_, _, err := svc.ListAccountsByStatus(context.Background(), adminActor, models.ApprovalPending, 1, 10)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestUpdateProfile(t *testing.T) {
	store := newMemAccountStore()
	account := store.add(models.Account{
		FirstName:         "John",
		LastName:          "Doe",
		Level:             "200",
		ProfileCompletion: 40,
		Role:              models.RoleStudent,
		ApprovalStatus:    models.ApprovalApproved,
	})
	svc := newAccountServiceForTest(store)

	level := "300"
	completion := 75
	updated, err := svc.UpdateProfile(context.Background(), account.ID, profileUpdate(nil, nil, &level, &completion))
	require.NoError(t, err)

	assert.Equal(t, "300", updated.Level)
	assert.Equal(t, 75, updated.ProfileCompletion)
	assert.Equal(t, "John", updated.FirstName, "untouched fields keep their values")
}

func TestUpdateProfileNoFields(t *testing.T) {
	store := newMemAccountStore()
	account := store.add(models.Account{Role: models.RoleStudent})
	svc := newAccountServiceForTest(store)

	_, err := svc.UpdateProfile(context.Background(), account.ID, profileUpdate(nil, nil, nil, nil))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
