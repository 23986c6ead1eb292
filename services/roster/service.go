package roster

import (
	"context"
	"fmt"
	"log"

	"github.com/samborkent/uuidv7"
	"golang.org/x/xerrors"

	"github.com/jlee061829/eventor/pkg/faults"
	timehelper "github.com/jlee061829/eventor/pkg/timeHelper"
	"github.com/jlee061829/eventor/repos/records"
	"github.com/jlee061829/eventor/repos/store"
	"github.com/jlee061829/eventor/services/lifecycle"
)

// Service promotes participants to captains and manages the teams they
// own. Every operation is a single transaction.
type Service struct {
	store store.Store
	clock timehelper.Clock
}

func NewService(st store.Store, clock timehelper.Clock) *Service {
	return &Service{
		store: st,
		clock: clock,
	}
}

// AssignCaptain creates a team captained by the given participant, flips
// the participant's role and removes them from the draft pool.
func (s *Service) AssignCaptain(ctx context.Context, callerUID, eventID, participantID string) (*records.Team, error) {
	var created records.Team

	err := s.store.RunTransaction(ctx, func(_ context.Context, tx store.Tx) error {
		ev, err := records.GetEvent(tx, eventID)
		if err != nil {
			return err
		}
		if ev.AdminID != callerUID {
			return xerrors.Errorf("only the event admin can assign captains: %w", faults.ErrPermissionDenied)
		}
		if !lifecycle.CanAssignCaptains(ev) {
			return xerrors.Errorf("event %s is %s: %w", eventID, ev.Status, faults.ErrInvalidTransition)
		}
		if !records.Contains(ev.ParticipantIDs, participantID) {
			return xerrors.Errorf("user %s is not a participant of event %s: %w", participantID, eventID, faults.ErrValidation)
		}

		user, err := records.GetUser(tx, participantID)
		if err != nil {
			return err
		}
		if user.Role != records.RoleParticipant {
			return xerrors.Errorf("user %s has role %s: %w", participantID, user.Role, faults.ErrAlreadyAssigned)
		}

		teams, err := records.GetTeams(tx, eventID)
		if err != nil {
			return err
		}
		if len(teams) >= ev.NumberOfTeams {
			return xerrors.Errorf("event %s already has %d of %d teams: %w", eventID, len(teams), ev.NumberOfTeams, faults.ErrCapacityExceeded)
		}

		created = records.Team{
			ID:        uuidv7.New().String(),
			EventID:   eventID,
			Name:      fmt.Sprintf("Team %d", nextOrdinal(teams)),
			CaptainID: participantID,
			MemberIDs: []string{participantID},
			CreatedAt: s.clock.Now(),
		}

		user.Role = records.RoleCaptain
		user.TeamID = created.ID

		ev.AvailableForDraftIDs = records.Remove(ev.AvailableForDraftIDs, participantID)
		if lifecycle.Status(ev.Status) != lifecycle.StatusAssigningCaptains {
			if err := lifecycle.AdvanceTo(ev, lifecycle.StatusAssigningCaptains); err != nil {
				return err
			}
		}

		if err := tx.Set(records.TeamPath(eventID, created.ID), created); err != nil {
			return err
		}
		if err := tx.Set(records.UserPath(participantID), user); err != nil {
			return err
		}
		return tx.Set(records.EventPath(eventID), ev)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Assigned captain %s to %s in event %s\n", participantID, created.Name, eventID)
	return &created, nil
}

// RemoveCaptain deletes the captain's team and demotes them back to
// participant. The draft pool is only reopened while no draft has run.
func (s *Service) RemoveCaptain(ctx context.Context, callerUID, eventID, captainID string) error {
	return s.store.RunTransaction(ctx, func(_ context.Context, tx store.Tx) error {
		ev, err := records.GetEvent(tx, eventID)
		if err != nil {
			return err
		}
		if ev.AdminID != callerUID {
			return xerrors.Errorf("only the event admin can remove captains: %w", faults.ErrPermissionDenied)
		}

		user, err := records.GetUser(tx, captainID)
		if err != nil {
			return err
		}
		if user.Role != records.RoleCaptain {
			return xerrors.Errorf("user %s has role %s, not captain: %w", captainID, user.Role, faults.ErrValidation)
		}

		team, err := records.GetTeam(tx, eventID, user.TeamID)
		if err != nil {
			return err
		}

		user.Role = records.RoleParticipant
		user.TeamID = ""

		if lifecycle.CanRestoreDraftPool(ev) && !records.Contains(ev.AvailableForDraftIDs, captainID) {
			ev.AvailableForDraftIDs = append(ev.AvailableForDraftIDs, captainID)
		}

		if err := tx.Delete(records.TeamPath(eventID, team.ID)); err != nil {
			return err
		}
		if err := tx.Set(records.UserPath(captainID), user); err != nil {
			return err
		}
		return tx.Set(records.EventPath(eventID), ev)
	})
}

// Teams lists the event's teams in creation order.
func (s *Service) Teams(ctx context.Context, eventID string) ([]records.Team, error) {
	snaps, err := s.store.GetAll(ctx, records.TeamsPath(eventID))
	if err != nil {
		return nil, err
	}
	return records.TeamsFromSnapshots(snaps)
}

// nextOrdinal returns max existing "Team N" ordinal + 1, tolerant of gaps
// left by removed teams.
func nextOrdinal(teams []records.Team) int {
	max := 0
	for _, team := range teams {
		var n int
		if _, err := fmt.Sscanf(team.Name, "Team %d", &n); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}
