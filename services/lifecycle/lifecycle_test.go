package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlee061829/eventor/pkg/faults"
	"github.com/jlee061829/eventor/repos/records"
	"github.com/jlee061829/eventor/repos/store"
)

func event(status Status) *records.Event {
	return &records.Event{ID: "e1", Status: string(status)}
}

func TestAdvanceToMovesForwardOnly(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusSetup, StatusInviting, true},
		{StatusSetup, StatusDrafting, true}, // skipping states is legal
		{StatusInviting, StatusActive, true},
		{StatusDrafting, StatusActive, true},
		{StatusActive, StatusCompleted, true},
		{StatusInviting, StatusSetup, false},
		{StatusDrafting, StatusDrafting, false},
		{StatusCompleted, StatusActive, false},
		{StatusCompleted, StatusCompleted, false},
	}
	for _, c := range cases {
		ev := event(c.from)
		err := AdvanceTo(ev, c.to)
		if c.ok {
			assert.NoError(t, err, "%s -> %s", c.from, c.to)
			assert.Equal(t, string(c.to), ev.Status)
		} else {
			assert.ErrorIs(t, err, faults.ErrInvalidTransition, "%s -> %s", c.from, c.to)
			assert.Equal(t, string(c.from), ev.Status, "failed transition must not mutate")
		}
	}
}

func TestAdvanceToRejectsUnknownStatus(t *testing.T) {
	ev := &records.Event{ID: "e1", Status: "garbage"}
	assert.ErrorIs(t, AdvanceTo(ev, StatusActive), faults.ErrInvalidTransition)
}

func TestRequireStatusIn(t *testing.T) {
	ev := event(StatusInviting)
	assert.NoError(t, RequireStatusIn(ev, StatusSetup, StatusInviting))
	assert.ErrorIs(t, RequireStatusIn(ev, StatusDrafting), faults.ErrInvalidTransition)
}

func TestPredicates(t *testing.T) {
	type want struct {
		invite, assign, start, scores, restore bool
	}
	cases := map[Status]want{
		StatusSetup:             {invite: true, assign: true, start: true, restore: true},
		StatusInviting:          {invite: true, assign: true, start: true, restore: true},
		StatusAssigningCaptains: {assign: true, start: true, restore: true},
		StatusDrafting:          {},
		StatusActive:            {scores: true},
		StatusCompleted:         {scores: true},
	}
	for status, w := range cases {
		ev := event(status)
		assert.Equal(t, w.invite, CanInvite(ev), "CanInvite in %s", status)
		assert.Equal(t, w.assign, CanAssignCaptains(ev), "CanAssignCaptains in %s", status)
		assert.Equal(t, w.start, CanStartDraft(ev), "CanStartDraft in %s", status)
		assert.Equal(t, w.scores, CanRecordScores(ev), "CanRecordScores in %s", status)
		assert.Equal(t, w.restore, CanRestoreDraftPool(ev), "CanRestoreDraftPool in %s", status)
	}
}

func TestPermissionsQuery(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	err := m.RunTransaction(ctx, func(_ context.Context, tx store.Tx) error {
		return tx.Set(records.EventPath("e1"), records.Event{ID: "e1", Status: string(StatusInviting)})
	})
	require.NoError(t, err)

	svc := NewService(m)
	perms, err := svc.Permissions(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, string(StatusInviting), perms.Status)
	assert.True(t, perms.CanInvite)
	assert.True(t, perms.CanStartDraft)
	assert.False(t, perms.CanRecordScores)

	_, err = svc.Permissions(ctx, "missing")
	assert.ErrorIs(t, err, faults.ErrReferentialIntegrity)
}
