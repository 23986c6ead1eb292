package draft

import (
	"context"
	"errors"
	"log"
	"math/rand"

	"golang.org/x/xerrors"

	"github.com/jlee061829/eventor/pkg/faults"
	"github.com/jlee061829/eventor/pkg/metrics"
	"github.com/jlee061829/eventor/pkg/pickOrder"
	timehelper "github.com/jlee061829/eventor/pkg/timeHelper"
	"github.com/jlee061829/eventor/repos/records"
	"github.com/jlee061829/eventor/repos/store"
	"github.com/jlee061829/eventor/services/lifecycle"
)

// Service runs the turn-based draft. Every mutating operation is a single
// serializable transaction; when two callers race for the same turn the
// store admits exactly one winner and the loser fails with TurnConflict.
// The service never retries on its own.
type Service struct {
	store   store.Store
	clock   timehelper.Clock
	rand    *rand.Rand
	metrics *metrics.Manager
}

func NewService(st store.Store, clock timehelper.Clock, rng *rand.Rand, m *metrics.Manager) *Service {
	return &Service{
		store:   st,
		clock:   clock,
		rand:    rng,
		metrics: m,
	}
}

// StartDraft freezes a random pick order over the event's teams and moves
// the event to drafting. Randomness is drawn here and nowhere else; a seed
// in the request makes the order reproducible.
func (s *Service) StartDraft(ctx context.Context, callerUID, eventID string, seed *int64) (*records.Draft, error) {
	rng := s.rand
	if seed != nil {
		rng = rand.New(rand.NewSource(*seed))
	}

	var created records.Draft
	err := s.store.RunTransaction(ctx, func(_ context.Context, tx store.Tx) error {
		ev, err := records.GetEvent(tx, eventID)
		if err != nil {
			return err
		}
		if ev.AdminID != callerUID {
			return xerrors.Errorf("only the event admin can start the draft: %w", faults.ErrPermissionDenied)
		}
		if !lifecycle.CanStartDraft(ev) {
			return xerrors.Errorf("event %s is %s: %w", eventID, ev.Status, faults.ErrInvalidTransition)
		}

		draftSnap, err := tx.Get(records.DraftPath(eventID))
		if err != nil {
			return err
		}
		if draftSnap.Exists() {
			return xerrors.Errorf("draft for event %s already exists: %w", eventID, faults.ErrInvalidTransition)
		}

		teams, err := records.GetTeams(tx, eventID)
		if err != nil {
			return err
		}
		if len(teams) != ev.NumberOfTeams {
			return xerrors.Errorf("event %s has %d teams, expects %d: %w", eventID, len(teams), ev.NumberOfTeams, faults.ErrCapacityMismatch)
		}
		if len(ev.AvailableForDraftIDs) == 0 {
			return xerrors.Errorf("event %s: %w", eventID, faults.ErrNoPlayersAvailable)
		}

		teamIDs := make([]string, 0, len(teams))
		for _, team := range teams {
			teamIDs = append(teamIDs, team.ID)
		}

		created = records.Draft{
			EventID:           eventID,
			Status:            records.DraftActive,
			PickOrder:         pickOrder.Generate(teamIDs, rng),
			CurrentPickIndex:  0,
			RoundNumber:       1,
			TotalPicksMade:    0,
			LastPickTimestamp: s.clock.Now(),
		}

		if err := lifecycle.AdvanceTo(ev, lifecycle.StatusDrafting); err != nil {
			return err
		}

		if err := tx.Set(records.DraftPath(eventID), created); err != nil {
			return err
		}
		return tx.Set(records.EventPath(eventID), ev)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.DraftStarted()
	log.Printf("Draft started for event %s with order %v\n", eventID, created.PickOrder)
	return &created, nil
}

// PickPlayer executes one pick for the team on the clock. Draft, event,
// team and player are read fresh inside the transaction that writes them;
// validation against a stale local copy is impossible by construction.
func (s *Service) PickPlayer(ctx context.Context, callerUID, eventID, teamID, playerID string) (*records.Draft, error) {
	s.metrics.PickAttempted()

	var (
		updated   records.Draft
		completed bool
	)
	err := s.store.RunTransaction(ctx, func(_ context.Context, tx store.Tx) error {
		draftSnap, err := tx.Get(records.DraftPath(eventID))
		if err != nil {
			return err
		}
		if !draftSnap.Exists() {
			return xerrors.Errorf("no draft for event %s: %w", eventID, faults.ErrDraftNotActive)
		}
		var d records.Draft
		if err := draftSnap.DataTo(&d); err != nil {
			return err
		}
		if d.Status != records.DraftActive {
			return xerrors.Errorf("draft for event %s is %s: %w", eventID, d.Status, faults.ErrDraftNotActive)
		}

		ev, err := records.GetEvent(tx, eventID)
		if err != nil {
			return err
		}
		team, err := records.GetTeam(tx, eventID, teamID)
		if err != nil {
			return err
		}
		if callerUID != team.CaptainID && callerUID != ev.AdminID {
			return xerrors.Errorf("caller %s is neither captain of team %s nor event admin: %w", callerUID, teamID, faults.ErrPermissionDenied)
		}

		if d.PickOrder[d.CurrentPickIndex] != teamID {
			return xerrors.Errorf("team %s is not on the clock: %w", teamID, faults.ErrNotYourTurn)
		}
		if !records.Contains(ev.AvailableForDraftIDs, playerID) {
			return xerrors.Errorf("player %s: %w", playerID, faults.ErrPlayerUnavailable)
		}

		player, err := records.GetUser(tx, playerID)
		if err != nil {
			return err
		}

		d.CurrentPickIndex = (d.CurrentPickIndex + 1) % len(d.PickOrder)
		if d.CurrentPickIndex == 0 {
			d.RoundNumber++
		}
		d.TotalPicksMade++
		d.LastPickTimestamp = s.clock.Now()

		ev.AvailableForDraftIDs = records.Remove(ev.AvailableForDraftIDs, playerID)
		team.MemberIDs = append(team.MemberIDs, playerID)
		player.TeamID = teamID

		// Completion is judged against the post-removal pool: once no more
		// than one undrafted slot per team remains, the draft is done.
		completed = len(ev.AvailableForDraftIDs) <= ev.NumberOfTeams
		if completed {
			d.Status = records.DraftCompleted
			if err := lifecycle.AdvanceTo(ev, lifecycle.StatusActive); err != nil {
				return err
			}
		}

		if err := tx.Set(records.DraftPath(eventID), d); err != nil {
			return err
		}
		if err := tx.Set(records.EventPath(eventID), ev); err != nil {
			return err
		}
		if err := tx.Set(records.TeamPath(eventID, teamID), team); err != nil {
			return err
		}
		if err := tx.Set(records.UserPath(playerID), player); err != nil {
			return err
		}

		updated = d
		return nil
	})
	if errors.Is(err, store.ErrConflict) {
		s.metrics.PickConflicted()
		return nil, xerrors.Errorf("pick for team %s in event %s: %w", teamID, eventID, faults.ErrTurnConflict)
	}
	if err != nil {
		return nil, err
	}

	s.metrics.PickCommitted()
	if completed {
		s.metrics.DraftCompleted()
		log.Printf("Draft completed for event %s after %d picks\n", eventID, updated.TotalPicksMade)
	}
	return &updated, nil
}

// Draft returns the current draft document.
func (s *Service) Draft(ctx context.Context, eventID string) (*records.Draft, error) {
	snap, err := s.store.Get(ctx, records.DraftPath(eventID))
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, xerrors.Errorf("no draft for event %s: %w", eventID, faults.ErrReferentialIntegrity)
	}
	var d records.Draft
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return &d, nil
}
