package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlee061829/eventor/pkg/faults"
	timehelper "github.com/jlee061829/eventor/pkg/timeHelper"
	"github.com/jlee061829/eventor/repos/records"
	"github.com/jlee061829/eventor/repos/store"
	"github.com/jlee061829/eventor/services/lifecycle"
)

const (
	adminID = "admin-1"
	eventID = "event-1"
)

func seed(t *testing.T, m *store.Memory, ev records.Event, users []records.User, teams []records.Team) {
	t.Helper()
	err := m.RunTransaction(context.Background(), func(_ context.Context, tx store.Tx) error {
		if err := tx.Set(records.EventPath(ev.ID), ev); err != nil {
			return err
		}
		for _, user := range users {
			if err := tx.Set(records.UserPath(user.ID), user); err != nil {
				return err
			}
		}
		for _, team := range teams {
			if err := tx.Set(records.TeamPath(ev.ID, team.ID), team); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func baseEvent(status lifecycle.Status) records.Event {
	return records.Event{
		ID:                   eventID,
		Name:                 "Spring Games",
		AdminID:              adminID,
		Status:               string(status),
		NumberOfTeams:        2,
		ParticipantIDs:       []string{"u1", "u2", "u3"},
		AvailableForDraftIDs: []string{"u1", "u2", "u3"},
	}
}

func participant(id string) records.User {
	return records.User{ID: id, Role: records.RoleParticipant, EventID: eventID}
}

func getEvent(t *testing.T, m *store.Memory) records.Event {
	t.Helper()
	snap, err := m.Get(context.Background(), records.EventPath(eventID))
	require.NoError(t, err)
	var ev records.Event
	require.NoError(t, snap.DataTo(&ev))
	return ev
}

func getUser(t *testing.T, m *store.Memory, id string) records.User {
	t.Helper()
	snap, err := m.Get(context.Background(), records.UserPath(id))
	require.NoError(t, err)
	var user records.User
	require.NoError(t, snap.DataTo(&user))
	return user
}

func TestAssignCaptain(t *testing.T) {
	m := store.NewMemory()
	seed(t, m, baseEvent(lifecycle.StatusInviting), []records.User{participant("u1")}, nil)
	svc := NewService(m, timehelper.Frozen(time.Unix(1700000000, 0)))

	team, err := svc.AssignCaptain(context.Background(), adminID, eventID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Team 1", team.Name)
	assert.Equal(t, "u1", team.CaptainID)
	assert.Equal(t, []string{"u1"}, team.MemberIDs, "captain is a member from creation")

	ev := getEvent(t, m)
	assert.Equal(t, string(lifecycle.StatusAssigningCaptains), ev.Status)
	assert.NotContains(t, ev.AvailableForDraftIDs, "u1")
	assert.Contains(t, ev.ParticipantIDs, "u1", "promotion does not remove participation")

	user := getUser(t, m, "u1")
	assert.Equal(t, records.RoleCaptain, user.Role)
	assert.Equal(t, team.ID, user.TeamID)
}

func TestAssignCaptainNamingToleratesGaps(t *testing.T) {
	m := store.NewMemory()
	ev := baseEvent(lifecycle.StatusAssigningCaptains)
	ev.NumberOfTeams = 4
	seed(t, m, ev, []records.User{participant("u1")}, []records.Team{
		{ID: "t1", EventID: eventID, Name: "Team 1", CaptainID: "x1", MemberIDs: []string{"x1"}},
		{ID: "t3", EventID: eventID, Name: "Team 3", CaptainID: "x3", MemberIDs: []string{"x3"}},
	})
	svc := NewService(m, timehelper.Real())

	team, err := svc.AssignCaptain(context.Background(), adminID, eventID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Team 4", team.Name)
}

func TestAssignCaptainFailures(t *testing.T) {
	t.Run("capacity exceeded", func(t *testing.T) {
		m := store.NewMemory()
		seed(t, m, baseEvent(lifecycle.StatusAssigningCaptains), []records.User{participant("u3")}, []records.Team{
			{ID: "t1", Name: "Team 1", CaptainID: "x1"},
			{ID: "t2", Name: "Team 2", CaptainID: "x2"},
		})
		svc := NewService(m, timehelper.Real())
		_, err := svc.AssignCaptain(context.Background(), adminID, eventID, "u3")
		assert.ErrorIs(t, err, faults.ErrCapacityExceeded)
	})

	t.Run("already assigned", func(t *testing.T) {
		m := store.NewMemory()
		captain := participant("u1")
		captain.Role = records.RoleCaptain
		seed(t, m, baseEvent(lifecycle.StatusInviting), []records.User{captain}, nil)
		svc := NewService(m, timehelper.Real())
		_, err := svc.AssignCaptain(context.Background(), adminID, eventID, "u1")
		assert.ErrorIs(t, err, faults.ErrAlreadyAssigned)
	})

	t.Run("drafting event rejects assignment", func(t *testing.T) {
		m := store.NewMemory()
		seed(t, m, baseEvent(lifecycle.StatusDrafting), []records.User{participant("u1")}, nil)
		svc := NewService(m, timehelper.Real())
		_, err := svc.AssignCaptain(context.Background(), adminID, eventID, "u1")
		assert.ErrorIs(t, err, faults.ErrInvalidTransition)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		m := store.NewMemory()
		seed(t, m, baseEvent(lifecycle.StatusInviting), []records.User{participant("u1")}, nil)
		svc := NewService(m, timehelper.Real())
		_, err := svc.AssignCaptain(context.Background(), "u2", eventID, "u1")
		assert.ErrorIs(t, err, faults.ErrPermissionDenied)
	})

	t.Run("missing event", func(t *testing.T) {
		m := store.NewMemory()
		svc := NewService(m, timehelper.Real())
		_, err := svc.AssignCaptain(context.Background(), adminID, "nope", "u1")
		assert.ErrorIs(t, err, faults.ErrReferentialIntegrity)
	})
}

func TestRemoveCaptainRestoresPoolBeforeDraft(t *testing.T) {
	m := store.NewMemory()
	ev := baseEvent(lifecycle.StatusAssigningCaptains)
	ev.AvailableForDraftIDs = []string{"u2", "u3"}
	captain := records.User{ID: "u1", Role: records.RoleCaptain, EventID: eventID, TeamID: "t1"}
	seed(t, m, ev, []records.User{captain}, []records.Team{
		{ID: "t1", EventID: eventID, Name: "Team 1", CaptainID: "u1", MemberIDs: []string{"u1"}},
	})
	svc := NewService(m, timehelper.Real())

	require.NoError(t, svc.RemoveCaptain(context.Background(), adminID, eventID, "u1"))

	got := getEvent(t, m)
	assert.Contains(t, got.AvailableForDraftIDs, "u1")

	user := getUser(t, m, "u1")
	assert.Equal(t, records.RoleParticipant, user.Role)
	assert.Empty(t, user.TeamID)

	snap, err := m.Get(context.Background(), records.TeamPath(eventID, "t1"))
	require.NoError(t, err)
	assert.False(t, snap.Exists(), "team must be deleted")
}

func TestRemoveCaptainKeepsPoolClosedOnceDraftRan(t *testing.T) {
	for _, status := range []lifecycle.Status{lifecycle.StatusDrafting, lifecycle.StatusActive, lifecycle.StatusCompleted} {
		m := store.NewMemory()
		ev := baseEvent(status)
		ev.AvailableForDraftIDs = []string{"u2"}
		captain := records.User{ID: "u1", Role: records.RoleCaptain, EventID: eventID, TeamID: "t1"}
		seed(t, m, ev, []records.User{captain}, []records.Team{
			{ID: "t1", EventID: eventID, Name: "Team 1", CaptainID: "u1", MemberIDs: []string{"u1"}},
		})
		svc := NewService(m, timehelper.Real())

		require.NoError(t, svc.RemoveCaptain(context.Background(), adminID, eventID, "u1"))
		assert.NotContains(t, getEvent(t, m).AvailableForDraftIDs, "u1", "status %s", status)
	}
}

func TestRemoveCaptainRequiresCaptainRole(t *testing.T) {
	m := store.NewMemory()
	seed(t, m, baseEvent(lifecycle.StatusInviting), []records.User{participant("u1")}, nil)
	svc := NewService(m, timehelper.Real())

	err := svc.RemoveCaptain(context.Background(), adminID, eventID, "u1")
	assert.ErrorIs(t, err, faults.ErrValidation)
}

func TestNextOrdinal(t *testing.T) {
	assert.Equal(t, 1, nextOrdinal(nil))
	assert.Equal(t, 3, nextOrdinal([]records.Team{{Name: "Team 1"}, {Name: "Team 2"}}))
	assert.Equal(t, 6, nextOrdinal([]records.Team{{Name: "Team 5"}, {Name: "Team 2"}}))
	assert.Equal(t, 2, nextOrdinal([]records.Team{{Name: "Team 1"}, {Name: "The Renamed"}}))
}
