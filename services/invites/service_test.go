package invites

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

type mailStub struct {
	sent chan string
}

func newMailStub() *mailStub {
	return &mailStub{sent: make(chan string, 8)}
}

func (s *mailStub) SendInvite(_ context.Context, email, _, _ string) error {
	s.sent <- email
	return nil
}

func fixture(t *testing.T, status lifecycle.Status) *store.Memory {
	t.Helper()
	m := store.NewMemory()
	err := m.RunTransaction(context.Background(), func(_ context.Context, tx store.Tx) error {
		return tx.Set(records.EventPath(eventID), records.Event{
			ID:            eventID,
			Name:          "Spring Games",
			AdminID:       adminID,
			Status:        string(status),
			NumberOfTeams: 2,
		})
	})
	require.NoError(t, err)
	return m
}

func getEvent(t *testing.T, m *store.Memory) records.Event {
	t.Helper()
	snap, err := m.Get(context.Background(), records.EventPath(eventID))
	require.NoError(t, err)
	var ev records.Event
	require.NoError(t, snap.DataTo(&ev))
	return ev
}

func TestCodeRoundTrip(t *testing.T) {
	code := encodeCode("event-1", "invite-1")
	eventID, inviteID, err := decodeCode(code)
	require.NoError(t, err)
	assert.Equal(t, "event-1", eventID)
	assert.Equal(t, "invite-1", inviteID)
}

func TestCodeRejectsGarbage(t *testing.T) {
	_, _, err := decodeCode("not base64 at all!")
	assert.Error(t, err)
}

func TestInviteParticipant(t *testing.T) {
	m := fixture(t, lifecycle.StatusSetup)
	mail := newMailStub()
	svc := NewService(m, mail, timehelper.Frozen(time.Unix(1700000000, 0)))

	invite, err := svc.InviteParticipant(context.Background(), adminID, eventID, "player@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, invite.Code)

	// First invite moves the event into inviting.
	assert.Equal(t, string(lifecycle.StatusInviting), getEvent(t, m).Status)

	select {
	case email := <-mail.sent:
		assert.Equal(t, "player@example.com", email)
	case <-time.After(time.Second):
		t.Fatal("invite mail was never sent")
	}
}

func TestInviteParticipantGuards(t *testing.T) {
	t.Run("non-admin denied", func(t *testing.T) {
		m := fixture(t, lifecycle.StatusSetup)
		svc := NewService(m, newMailStub(), timehelper.Real())
		_, err := svc.InviteParticipant(context.Background(), "someone", eventID, "x@example.com")
		assert.ErrorIs(t, err, faults.ErrPermissionDenied)
	})

	t.Run("closed event", func(t *testing.T) {
		m := fixture(t, lifecycle.StatusDrafting)
		svc := NewService(m, newMailStub(), timehelper.Real())
		_, err := svc.InviteParticipant(context.Background(), adminID, eventID, "x@example.com")
		assert.ErrorIs(t, err, faults.ErrInvalidTransition)
	})
}

func TestAcceptInvite(t *testing.T) {
	m := fixture(t, lifecycle.StatusSetup)
	svc := NewService(m, newMailStub(), timehelper.Frozen(time.Unix(1700000000, 0)))
	ctx := context.Background()

	invite, err := svc.InviteParticipant(ctx, adminID, eventID, "player@example.com")
	require.NoError(t, err)

	ev, err := svc.AcceptInvite(ctx, "u1", "player@example.com", invite.Code)
	require.NoError(t, err)
	assert.Contains(t, ev.ParticipantIDs, "u1")
	assert.Contains(t, ev.AvailableForDraftIDs, "u1")

	userSnap, err := m.Get(ctx, records.UserPath("u1"))
	require.NoError(t, err)
	var user records.User
	require.NoError(t, userSnap.DataTo(&user))
	assert.Equal(t, records.RoleParticipant, user.Role)
	assert.Equal(t, eventID, user.EventID)
}

func TestAcceptInviteIsIdempotentPerUser(t *testing.T) {
	m := fixture(t, lifecycle.StatusSetup)
	svc := NewService(m, newMailStub(), timehelper.Real())
	ctx := context.Background()

	invite, err := svc.InviteParticipant(ctx, adminID, eventID, "player@example.com")
	require.NoError(t, err)

	_, err = svc.AcceptInvite(ctx, "u1", "player@example.com", invite.Code)
	require.NoError(t, err)
	ev, err := svc.AcceptInvite(ctx, "u1", "player@example.com", invite.Code)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ev.ParticipantIDs)
	assert.Equal(t, []string{"u1"}, ev.AvailableForDraftIDs)
}

func TestAcceptInviteGuards(t *testing.T) {
	m := fixture(t, lifecycle.StatusSetup)
	svc := NewService(m, newMailStub(), timehelper.Real())
	ctx := context.Background()

	invite, err := svc.InviteParticipant(ctx, adminID, eventID, "player@example.com")
	require.NoError(t, err)
	_, err = svc.AcceptInvite(ctx, "u1", "player@example.com", invite.Code)
	require.NoError(t, err)

	t.Run("claimed by someone else", func(t *testing.T) {
		_, err := svc.AcceptInvite(ctx, "u2", "other@example.com", invite.Code)
		assert.ErrorIs(t, err, faults.ErrPermissionDenied)
	})

	t.Run("unknown invite", func(t *testing.T) {
		_, err := svc.AcceptInvite(ctx, "u3", "x@example.com", encodeCode(eventID, "missing"))
		assert.ErrorIs(t, err, faults.ErrReferentialIntegrity)
	})

	t.Run("malformed code", func(t *testing.T) {
		_, err := svc.AcceptInvite(ctx, "u3", "x@example.com", "%%%")
		assert.ErrorIs(t, err, faults.ErrValidation)
	})

	t.Run("event no longer inviting", func(t *testing.T) {
		late, err := svc.InviteParticipant(ctx, adminID, eventID, "late@example.com")
		require.NoError(t, err)

		require.NoError(t, m.RunTransaction(ctx, func(_ context.Context, tx store.Tx) error {
			ev := getEvent(t, m)
			ev.Status = string(lifecycle.StatusDrafting)
			return tx.Set(records.EventPath(eventID), ev)
		}))

		_, err = svc.AcceptInvite(ctx, "u4", "late@example.com", late.Code)
		assert.ErrorIs(t, err, faults.ErrInvalidTransition)
	})
}
