package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms.service/internal/core/model"
)

type fakeAdmins struct {
	byID map[int64]model.Admin
}

func (f *fakeAdmins) Create(_ context.Context, a *model.Admin) (*model.Admin, error) {
	for _, existing := range f.byID {
		if existing.UserID == a.UserID {
			return nil, model.ErrDuplicateProfile
		}
	}
	stored := *a
	stored.ID = int64(len(f.byID) + 1)
	f.byID[stored.ID] = stored
	return &stored, nil
}

func (f *fakeAdmins) FindByID(_ context.Context, id int64) (*model.Admin, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, model.ErrAdminNotFound
	}
	return &a, nil
}

func (f *fakeAdmins) List(context.Context) ([]model.Admin, error) {
	out := make([]model.Admin, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAdmins) Update(_ context.Context, a *model.Admin) (*model.Admin, error) {
	if _, ok := f.byID[a.ID]; !ok {
		return nil, model.ErrAdminNotFound
	}
	f.byID[a.ID] = *a
	return a, nil
}

func (f *fakeAdmins) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return model.ErrAdminNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeHrManagers struct {
	byID map[int64]model.HrManager
}

func (f *fakeHrManagers) Create(_ context.Context, h *model.HrManager) (*model.HrManager, error) {
	stored := *h
	stored.ID = int64(len(f.byID) + 1)
	f.byID[stored.ID] = stored
	return &stored, nil
}

func (f *fakeHrManagers) FindByID(_ context.Context, id int64) (*model.HrManager, error) {
	h, ok := f.byID[id]
	if !ok {
		return nil, model.ErrHrManagerNotFound
	}
	return &h, nil
}

func (f *fakeHrManagers) List(context.Context) ([]model.HrManager, error) {
	out := make([]model.HrManager, 0, len(f.byID))
	for _, h := range f.byID {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHrManagers) Update(_ context.Context, h *model.HrManager) (*model.HrManager, error) {
	if _, ok := f.byID[h.ID]; !ok {
		return nil, model.ErrHrManagerNotFound
	}
	f.byID[h.ID] = *h
	return h, nil
}

func (f *fakeHrManagers) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return model.ErrHrManagerNotFound
	}
	delete(f.byID, id)
	return nil
}

func newStaffService() *StaffService {
	users := newFakeUsers(
		model.User{ID: 1, Email: "root@x.com", FirstName: "Root", LastName: "User", Role: model.RoleAdmin},
		model.User{ID: 2, Email: "hr@x.com", FirstName: "Hana", LastName: "Res", Role: model.RoleHrManager},
	)
	return NewStaffService(users, &fakeAdmins{byID: map[int64]model.Admin{}}, &fakeHrManagers{byID: map[int64]model.HrManager{}}, nil)
}

func TestStaffService_Admins(t *testing.T) {
	svc := newStaffService()
	ctx := context.Background()

	a, err := svc.CreateAdmin(ctx, AdminInput{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, model.AccessSystemAdmin, a.AccessLevel)
	assert.Equal(t, "Root", a.FirstName)

	_, err = svc.CreateAdmin(ctx, AdminInput{UserID: 1})
	assert.ErrorIs(t, err, model.ErrDuplicateProfile)

	_, err = svc.CreateAdmin(ctx, AdminInput{UserID: 2, AccessLevel: "god_mode"})
	assert.ErrorIs(t, err, model.ErrValidation)

	updated, err := svc.UpdateAdmin(ctx, a.ID, AdminInput{AccessLevel: "SUPER_ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, model.AccessSuperAdmin, updated.AccessLevel)
	assert.Equal(t, "Root", updated.FirstName)

	require.NoError(t, svc.DeleteAdmin(ctx, a.ID))
	_, err = svc.GetAdmin(ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrAdminNotFound)
}

func TestStaffService_HrManagers(t *testing.T) {
	svc := newStaffService()
	ctx := context.Background()

	h, err := svc.CreateHrManager(ctx, HrManagerInput{UserID: 2, OfficeLocation: "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, "Hana", h.FirstName)

	updated, err := svc.UpdateHrManager(ctx, h.ID, HrManagerInput{Phone: "123"})
	require.NoError(t, err)
	assert.Equal(t, "Berlin", updated.OfficeLocation)
	assert.Equal(t, "123", updated.Phone)

	list, err := svc.ListHrManagers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.CreateHrManager(ctx, HrManagerInput{UserID: 99})
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	assert.ErrorIs(t, svc.DeleteHrManager(ctx, 42), model.ErrHrManagerNotFound)
}
