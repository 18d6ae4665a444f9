package schedule

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/infra/memory"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type fixture struct {
	store  *memory.Store
	parent *models.User
	sitter *models.User
	other  *models.User
	kids   []*models.Child
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.New()

	mk := func(email string, role models.Role) *models.User {
		u := &models.User{FirstName: "T", LastName: "U", Email: email, Role: role, PasswordHash: "x"}
		require.NoError(t, s.Users().Create(ctx, u))
		return u
	}
	f := fixture{
		store:  s,
		parent: mk("parent@example.com", models.RoleParent),
		sitter: mk("sitter@example.com", models.RoleBabysitter),
		other:  mk("other@example.com", models.RoleParent),
	}
	for _, name := range []string{"Mia", "Leo"} {
		c := &models.Child{FirstName: name, LastName: "Doe", DateOfBirth: models.NewDate(2021, 3, 1), Gender: models.GenderOther, ParentID: f.parent.ID, IsActive: true}
		require.NoError(t, s.Children().Create(ctx, c))
		f.kids = append(f.kids, c)
	}
	return f
}

func (f fixture) input(actor *models.User, childIDs ...uuid.UUID) CreateScheduleInput {
	return CreateScheduleInput{
		Actor:        access.Principal{ID: actor.ID, Role: actor.Role},
		ChildIDs:     childIDs,
		BabysitterID: f.sitter.ID,
		StartDate:    models.NewDate(2025, 5, 1),
		EndDate:      models.NewDate(2025, 5, 2),
		Location:     "Home",
		Rate:         15,
	}
}

func TestCreateScheduleForSeveralChildren(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	uc := NewCreateSchedule(f.store, notify.New(f.store, nil), nil)

	created, err := uc.Execute(ctx, f.input(f.parent, f.kids[0].ID, f.kids[1].ID))
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, s := range created {
		assert.Equal(t, models.SchedulePending, s.Status)
		assert.Equal(t, models.PaymentPending, s.PaymentStatus)
		assert.Equal(t, f.parent.ID, s.ParentID)
	}

	n, err := f.store.Notifications().Count(ctx, store.NotificationFilter{RecipientID: &f.sitter.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestCreateScheduleIsAtomic(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	uc := NewCreateSchedule(f.store, notify.New(f.store, nil), nil)

	foreign := &models.Child{FirstName: "Zoe", LastName: "Roe", DateOfBirth: models.NewDate(2020, 1, 1), Gender: models.GenderFemale, ParentID: f.other.ID}
	require.NoError(t, f.store.Children().Create(ctx, foreign))

	_, err := uc.Execute(ctx, f.input(f.parent, f.kids[0].ID, foreign.ID))
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, httperr.StatusOf(err))

	n, err := f.store.Schedules().Count(ctx, store.ScheduleFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateScheduleValidation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	uc := NewCreateSchedule(f.store, nil, nil)

	in := f.input(f.parent, uuid.New())
	_, err := uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "child_not_found"))

	in = f.input(f.parent, f.kids[0].ID)
	in.BabysitterID = f.other.ID
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_babysitter"))

	in = f.input(f.parent, f.kids[0].ID)
	in.EndDate = models.NewDate(2025, 4, 30)
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))

	in = f.input(f.sitter, f.kids[0].ID)
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "parent_not_found"))

	in = f.input(f.other, f.kids[0].ID)
	_, err = uc.Execute(ctx, in)
	assert.Equal(t, http.StatusForbidden, httperr.StatusOf(err))
}

func TestChangeStatusAndAutoComplete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	n := notify.New(f.store, nil)

	in := f.input(f.sitter, f.kids[0].ID)
	in.ParentID = f.parent.ID
	created, err := NewCreateSchedule(f.store, n, nil).Execute(ctx, in)
	require.NoError(t, err)
	id := created[0].ID

	change := NewChangeStatus(f.store, n, nil)

	_, err = change.Execute(ctx, access.Principal{ID: f.other.ID, Role: models.RoleParent}, id, models.ScheduleConfirmed)
	assert.Equal(t, http.StatusForbidden, httperr.StatusOf(err))

	s, err := change.Execute(ctx, access.Principal{ID: f.sitter.ID, Role: models.RoleBabysitter}, id, models.ScheduleConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleConfirmed, s.Status)

	reminded, err := NewReminders(f.store, n).Execute(ctx, models.NewDate(2025, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, reminded)

	done, err := NewCompleteFinished(f.store, n, nil).Execute(ctx, models.NewDate(2025, 5, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	_, err = change.Execute(ctx, access.Principal{ID: f.parent.ID, Role: models.RoleParent}, id, models.ScheduleCancelled)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = change.Execute(ctx, access.Principal{Role: models.RoleAdmin}, uuid.New(), models.ScheduleCancelled)
	assert.True(t, httperr.IsBusiness(err, "schedule_not_found"))
}
