package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stallhub/internal/logging"
	"stallhub/internal/model"
	"stallhub/internal/repository"
	repoMocks "stallhub/internal/repository/mocks"
)

type fakeInviter struct {
	invites []InviteInput
	err     error
}

func (f *fakeInviter) Invite(_ context.Context, in InviteInput) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.invites = append(f.invites, in)
	return &model.User{ID: "invited-" + in.Email, Email: in.Email, Roles: []model.RoleAssignment{in.Role}}, nil
}

type businessFixture struct {
	businesses *repoMocks.MockBusinessRepository
	stalls     *repoMocks.MockStallRepository
	users      *repoMocks.MockUserRepository
	inviter    *fakeInviter
	tx         *passTx
	svc        BusinessService
}

func newBusinessFixture() *businessFixture {
	f := &businessFixture{
		businesses: new(repoMocks.MockBusinessRepository),
		stalls:     new(repoMocks.MockStallRepository),
		users:      new(repoMocks.MockUserRepository),
		inviter:    &fakeInviter{},
		tx:         &passTx{},
	}
	f.svc = NewBusinessService(f.businesses, f.stalls, f.users, f.tx, f.inviter, logging.Discard())
	return f
}

func TestBusinessService_Create(t *testing.T) {
	in := BusinessInput{Name: "Noodle Court", OwnerEmail: "owner@example.com", OwnerName: "Olga"}

	t.Run("super admin creates business and invites owner", func(t *testing.T) {
		f := newBusinessFixture()
		f.businesses.On("FindBySlug", mock.Anything, "noodle-court").Return(nil, sql.ErrNoRows)
		f.businesses.On("Create", mock.Anything, mock.MatchedBy(func(b *model.Business) bool {
			return b.Slug == "noodle-court" && b.OwnerID == "invited-owner@example.com" &&
				b.Settings.Currency == "USD" && b.Active
		})).Return(nil)

		b, err := f.svc.Create(bg(), superAdmin, in)
		require.NoError(t, err)
		require.Len(t, f.inviter.invites, 1)
		inv := f.inviter.invites[0]
		assert.Equal(t, model.RoleBusinessOwner, inv.Role.Role)
		assert.Equal(t, b.ID, inv.Role.BusinessID)
		assert.Equal(t, "Noodle Court", inv.BusinessName)
		assert.Equal(t, 1, f.tx.calls)
		f.businesses.AssertExpectations(t)
	})

	t.Run("only super admins", func(t *testing.T) {
		f := newBusinessFixture()
		_, err := f.svc.Create(bg(), owner, in)
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = f.svc.Create(bg(), anonymous, in)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("slug taken", func(t *testing.T) {
		f := newBusinessFixture()
		f.businesses.On("FindBySlug", mock.Anything, "noodle-court").Return(&model.Business{ID: "other"}, nil)

		_, err := f.svc.Create(bg(), superAdmin, in)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Empty(t, f.inviter.invites)
	})

	t.Run("invalid settings", func(t *testing.T) {
		f := newBusinessFixture()
		bad := in
		dollars, eur, tax := "dollars", "eur", 20000
		bad.Settings = &model.SettingsPatch{Currency: &dollars}
		_, err := f.svc.Create(bg(), superAdmin, bad)
		assert.ErrorIs(t, err, ErrInvalidInput)

		bad.Settings = &model.SettingsPatch{Currency: &eur, TaxRateBps: &tax}
		_, err = f.svc.Create(bg(), superAdmin, bad)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("partial settings keep defaults", func(t *testing.T) {
		f := newBusinessFixture()
		tax := 700
		withTax := in
		withTax.Settings = &model.SettingsPatch{TaxRateBps: &tax}
		f.businesses.On("FindBySlug", mock.Anything, "noodle-court").Return(nil, sql.ErrNoRows)
		f.businesses.On("Create", mock.Anything, mock.Anything).Return(nil)

		b, err := f.svc.Create(bg(), superAdmin, withTax)
		require.NoError(t, err)
		assert.Equal(t, model.BusinessSettings{Currency: "USD", TaxRateBps: 700, AcceptingOrders: true}, b.Settings)
	})

	t.Run("invalid slug", func(t *testing.T) {
		f := newBusinessFixture()
		bad := in
		bad.Slug = "Not A Slug"
		_, err := f.svc.Create(bg(), superAdmin, bad)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestBusinessService_Get(t *testing.T) {
	inactive := &model.Business{ID: bizID, Slug: "closed", Active: false}

	t.Run("by slug", func(t *testing.T) {
		f := newBusinessFixture()
		f.businesses.On("FindBySlug", mock.Anything, "noodle-court").Return(&model.Business{ID: bizID, Active: true}, nil)

		b, err := f.svc.Get(bg(), anonymous, "noodle-court")
		require.NoError(t, err)
		assert.Equal(t, bizID, b.ID)
	})

	t.Run("inactive hidden from the public", func(t *testing.T) {
		f := newBusinessFixture()
		f.businesses.On("FindByID", mock.Anything, bizID).Return(inactive, nil)

		_, err := f.svc.Get(bg(), customer, bizID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("inactive visible to staff", func(t *testing.T) {
		f := newBusinessFixture()
		f.businesses.On("FindByID", mock.Anything, bizID).Return(inactive, nil)

		_, err := f.svc.Get(bg(), staffA, bizID)
		assert.NoError(t, err)
	})
}

func TestBusinessService_List(t *testing.T) {
	f := newBusinessFixture()
	f.businesses.On("List", mock.Anything, repository.BusinessFilter{
		Search: "noodle", ActiveOnly: true, Page: repository.PageQuery{Limit: 20},
	}).Return(&repository.PageResult[model.Business]{Items: []model.Business{{ID: bizID}}, Total: 1}, nil)

	// Only super admins can see inactive businesses.
	page, err := f.svc.List(bg(), customer, BusinessQuery{Search: " noodle ", IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 20, page.Limit)
	f.businesses.AssertExpectations(t)
}

func TestBusinessService_Update(t *testing.T) {
	active := false
	name := "Noodle Hall"

	t.Run("owner renames and changes settings", func(t *testing.T) {
		f := newBusinessFixture()
		eur, tax := "eur", 825
		f.businesses.On("FindByID", mock.Anything, bizID).Return(&model.Business{ID: bizID, Name: "Noodle Court", Active: true}, nil)
		f.businesses.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Business) bool {
			return b.Name == "Noodle Hall" && b.Settings.TaxRateBps == 825 && b.Settings.Currency == "EUR"
		})).Return(nil)

		b, err := f.svc.Update(bg(), owner, bizID, BusinessUpdate{
			Name:     &name,
			Settings: &model.SettingsPatch{Currency: &eur, TaxRateBps: &tax},
		})
		require.NoError(t, err)
		assert.Equal(t, "Noodle Hall", b.Name)
	})

	t.Run("settings change only the fields sent", func(t *testing.T) {
		f := newBusinessFixture()
		eur := "EUR"
		f.businesses.On("FindByID", mock.Anything, bizID).Return(&model.Business{
			ID: bizID, Active: true,
			Settings: model.BusinessSettings{Currency: "USD", TaxRateBps: 800, AcceptingOrders: true, ContactEmail: "hi@noodle.example"},
		}, nil)
		f.businesses.On("Update", mock.Anything, mock.Anything).Return(nil)

		b, err := f.svc.Update(bg(), owner, bizID, BusinessUpdate{Settings: &model.SettingsPatch{Currency: &eur}})
		require.NoError(t, err)
		assert.Equal(t, model.BusinessSettings{
			Currency: "EUR", TaxRateBps: 800, AcceptingOrders: true, ContactEmail: "hi@noodle.example",
		}, b.Settings)
	})

	t.Run("owner pauses ordering", func(t *testing.T) {
		f := newBusinessFixture()
		closed := false
		f.businesses.On("FindByID", mock.Anything, bizID).Return(&model.Business{
			ID: bizID, Active: true, Settings: model.BusinessSettings{Currency: "USD", TaxRateBps: 800, AcceptingOrders: true},
		}, nil)
		f.businesses.On("Update", mock.Anything, mock.Anything).Return(nil)

		b, err := f.svc.Update(bg(), owner, bizID, BusinessUpdate{Settings: &model.SettingsPatch{AcceptingOrders: &closed}})
		require.NoError(t, err)
		assert.False(t, b.Settings.AcceptingOrders)
		assert.Equal(t, 800, b.Settings.TaxRateBps)
	})

	t.Run("owner cannot suspend", func(t *testing.T) {
		f := newBusinessFixture()
		f.businesses.On("FindByID", mock.Anything, bizID).Return(&model.Business{ID: bizID, Active: true}, nil)

		_, err := f.svc.Update(bg(), owner, bizID, BusinessUpdate{Active: &active})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("staff cannot update", func(t *testing.T) {
		f := newBusinessFixture()
		_, err := f.svc.Update(bg(), staffA, bizID, BusinessUpdate{Name: &name})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestBusinessService_Delete(t *testing.T) {
	f := newBusinessFixture()
	f.businesses.On("FindByID", mock.Anything, bizID).Return(&model.Business{ID: bizID}, nil)
	f.businesses.On("Delete", mock.Anything, bizID).Return(nil)

	assert.ErrorIs(t, f.svc.Delete(bg(), owner, bizID), ErrForbidden)
	assert.NoError(t, f.svc.Delete(bg(), superAdmin, bizID))
	f.businesses.AssertExpectations(t)
}

func TestBusinessService_AddStaff(t *testing.T) {
	biz := &model.Business{ID: bizID, Name: "Noodle Court", Active: true}

	tests := []struct {
		name    string
		p       model.Principal
		in      StaffInput
		setup   func(f *businessFixture)
		wantErr error
	}{
		{
			name: "owner adds stall manager",
			p:    owner,
			in:   StaffInput{Email: "m@example.com", Role: model.RoleStallManager, StallID: stallA},
			setup: func(f *businessFixture) {
				f.businesses.On("FindByID", mock.Anything, bizID).Return(biz, nil)
				f.stalls.On("FindByID", mock.Anything, stallA).Return(&model.Stall{ID: stallA, BusinessID: bizID}, nil)
			},
		},
		{
			name: "owner adds business-wide staff",
			p:    owner,
			in:   StaffInput{Email: "s@example.com", Role: model.RoleStaff},
			setup: func(f *businessFixture) {
				f.businesses.On("FindByID", mock.Anything, bizID).Return(biz, nil)
			},
		},
		{
			name: "stall manager needs a stall",
			p:    owner,
			in:   StaffInput{Email: "m@example.com", Role: model.RoleStallManager},
			setup: func(f *businessFixture) {
				f.businesses.On("FindByID", mock.Anything, bizID).Return(biz, nil)
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "stall of another business",
			p:    owner,
			in:   StaffInput{Email: "m@example.com", Role: model.RoleStallManager, StallID: "foreign"},
			setup: func(f *businessFixture) {
				f.businesses.On("FindByID", mock.Anything, bizID).Return(biz, nil)
				f.stalls.On("FindByID", mock.Anything, "foreign").Return(&model.Stall{ID: "foreign", BusinessID: "other"}, nil)
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "owner cannot appoint owners",
			p:    owner,
			in:   StaffInput{Email: "o2@example.com", Role: model.RoleBusinessOwner},
			setup: func(f *businessFixture) {
				f.businesses.On("FindByID", mock.Anything, bizID).Return(biz, nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name: "super admin appoints a co-owner",
			p:    superAdmin,
			in:   StaffInput{Email: "o2@example.com", Role: model.RoleBusinessOwner},
			setup: func(f *businessFixture) {
				f.businesses.On("FindByID", mock.Anything, bizID).Return(biz, nil)
			},
		},
		{
			name:    "customer role is not staff",
			p:       owner,
			in:      StaffInput{Email: "c@example.com", Role: model.RoleCustomer},
			setup:   func(f *businessFixture) { f.businesses.On("FindByID", mock.Anything, bizID).Return(biz, nil) },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "staff cannot add staff",
			p:       staffA,
			in:      StaffInput{Email: "s@example.com", Role: model.RoleStaff},
			setup:   func(f *businessFixture) {},
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBusinessFixture()
			tt.setup(f)

			u, err := f.svc.AddStaff(bg(), tt.p, bizID, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.inviter.invites)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in.Email, u.Email)
			require.Len(t, f.inviter.invites, 1)
			assert.Equal(t, "Noodle Court", f.inviter.invites[0].BusinessName)
			assert.Equal(t, bizID, f.inviter.invites[0].Role.BusinessID)
		})
	}
}

func TestBusinessService_ListStaff(t *testing.T) {
	f := newBusinessFixture()
	f.users.On("ListByBusiness", mock.Anything, bizID).Return([]model.User{{ID: staffAID}}, nil)

	users, err := f.svc.ListStaff(bg(), staffA, bizID)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = f.svc.ListStaff(bg(), customer, bizID)
	assert.ErrorIs(t, err, ErrForbidden)
}
