package lifecycle

import (
	"context"

	"golang.org/x/xerrors"

	"github.com/jlee061829/eventor/pkg/faults"
	"github.com/jlee061829/eventor/repos/records"
	"github.com/jlee061829/eventor/repos/store"
)

// Service answers the read-only lifecycle queries for an event.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Permissions is the derived view of what the event's status currently
// allows. It has no side effects.
type Permissions struct {
	Status            string `json:"status"`
	CanInvite         bool   `json:"canInvite"`
	CanAssignCaptains bool   `json:"canAssignCaptains"`
	CanStartDraft     bool   `json:"canStartDraft"`
	CanRecordScores   bool   `json:"canRecordScores"`
}

func (s *Service) Permissions(ctx context.Context, eventID string) (*Permissions, error) {
	snap, err := s.store.Get(ctx, records.EventPath(eventID))
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, xerrors.Errorf("event %s: %w", eventID, faults.ErrReferentialIntegrity)
	}
	var ev records.Event
	if err := snap.DataTo(&ev); err != nil {
		return nil, err
	}
	return &Permissions{
		Status:            ev.Status,
		CanInvite:         CanInvite(&ev),
		CanAssignCaptains: CanAssignCaptains(&ev),
		CanStartDraft:     CanStartDraft(&ev),
		CanRecordScores:   CanRecordScores(&ev),
	}, nil
}
