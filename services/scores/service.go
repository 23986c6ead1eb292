package scores

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/jlee061829/eventor/pkg/faults"
	"github.com/jlee061829/eventor/pkg/metrics"
	timehelper "github.com/jlee061829/eventor/pkg/timeHelper"
	"github.com/jlee061829/eventor/repos/records"
	"github.com/jlee061829/eventor/repos/store"
	"github.com/jlee061829/eventor/services/lifecycle"
)

// Service folds sub-event score submissions into per-team totals. Scores
// are keyed by (subEvent, team) so a submission is an upsert; the
// leaderboard is a derived view, never stored.
type Service struct {
	store   store.Store
	clock   timehelper.Clock
	metrics *metrics.Manager
}

func NewService(st store.Store, clock timehelper.Clock, m *metrics.Manager) *Service {
	return &Service{
		store:   st,
		clock:   clock,
		metrics: m,
	}
}

// RecordResult reports what a committed submission changed.
type RecordResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

// RecordScores applies one sub-event's entries. An entry's raw value must
// parse as an integer; an empty value clears the team's score. The whole
// submission is validated before anything is read or written, and all
// resulting writes commit as one batch. An effect-free submission reports
// NoChanges instead of committing an empty batch.
func (s *Service) RecordScores(ctx context.Context, callerUID, eventID, subEventID string, entries map[string]string) (*RecordResult, error) {
	parsed, err := parseEntries(entries)
	if err != nil {
		return nil, err
	}

	teamIDs := make([]string, 0, len(entries))
	for teamID := range entries {
		teamIDs = append(teamIDs, teamID)
	}
	sort.Strings(teamIDs)

	var result RecordResult
	err = s.store.RunTransaction(ctx, func(_ context.Context, tx store.Tx) error {
		result = RecordResult{}

		ev, err := records.GetEvent(tx, eventID)
		if err != nil {
			return err
		}
		if ev.AdminID != callerUID {
			return xerrors.Errorf("only the event admin can record scores: %w", faults.ErrPermissionDenied)
		}
		if !lifecycle.CanRecordScores(ev) {
			return xerrors.Errorf("event %s is %s: %w", eventID, ev.Status, faults.ErrInvalidTransition)
		}

		type write struct {
			path   string
			score  *records.Score
			delete bool
		}
		var writes []write

		for _, teamID := range teamIDs {
			if _, err := records.GetTeam(tx, eventID, teamID); err != nil {
				return err
			}

			path := records.ScorePath(eventID, subEventID, teamID)
			snap, err := tx.Get(path)
			if err != nil {
				return err
			}

			next, present := parsed[teamID]
			switch {
			case !snap.Exists() && present:
				writes = append(writes, write{path: path, score: &records.Score{
					ID:         snap.ID(),
					EventID:    eventID,
					SubEventID: subEventID,
					TeamID:     teamID,
					Points:     next,
					AssignedBy: callerUID,
					AssignedAt: s.clock.Now(),
				}})
				result.Created++
			case snap.Exists() && present:
				var existing records.Score
				if err := snap.DataTo(&existing); err != nil {
					return err
				}
				if existing.Points == next {
					continue
				}
				existing.Points = next
				existing.AssignedBy = callerUID
				existing.AssignedAt = s.clock.Now()
				writes = append(writes, write{path: path, score: &existing})
				result.Updated++
			case snap.Exists() && !present:
				writes = append(writes, write{path: path, delete: true})
				result.Deleted++
			default:
				// absent before, absent after
			}
		}

		if len(writes) == 0 {
			return xerrors.Errorf("sub-event %s of event %s: %w", subEventID, eventID, faults.ErrNoChanges)
		}

		for _, w := range writes {
			if w.delete {
				if err := tx.Delete(w.path); err != nil {
					return err
				}
				continue
			}
			if err := tx.Set(w.path, w.score); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ScoreWrites(result.Created + result.Updated + result.Deleted)
	log.Printf("Recorded scores for sub-event %s of event %s: %+v\n", subEventID, eventID, result)
	return &result, nil
}

// Standing is one leaderboard row.
type Standing struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Points   int64  `json:"points"`
}

// Leaderboard sums every committed score per team, points descending, ties
// broken by team creation order. Teams without scores contribute 0. The
// fold is idempotent and order-independent over its inputs.
func (s *Service) Leaderboard(ctx context.Context, eventID string) ([]Standing, error) {
	evSnap, err := s.store.Get(ctx, records.EventPath(eventID))
	if err != nil {
		return nil, err
	}
	if !evSnap.Exists() {
		return nil, xerrors.Errorf("event %s: %w", eventID, faults.ErrReferentialIntegrity)
	}

	teamSnaps, err := s.store.GetAll(ctx, records.TeamsPath(eventID))
	if err != nil {
		return nil, err
	}
	teams, err := records.TeamsFromSnapshots(teamSnaps)
	if err != nil {
		return nil, err
	}

	scoreSnaps, err := s.store.GetAll(ctx, records.ScoresPath(eventID))
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int64)
	for _, snap := range scoreSnaps {
		var score records.Score
		if err := snap.DataTo(&score); err != nil {
			return nil, err
		}
		totals[score.TeamID] += score.Points
	}

	// teams is already in creation order, which sort.SliceStable keeps as
	// the tie-break.
	standings := make([]Standing, 0, len(teams))
	for _, team := range teams {
		standings = append(standings, Standing{
			TeamID:   team.ID,
			TeamName: team.Name,
			Points:   totals[team.ID],
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	return standings, nil
}

// CompleteEvent closes out an active event once its final scores are in.
func (s *Service) CompleteEvent(ctx context.Context, callerUID, eventID string) error {
	return s.store.RunTransaction(ctx, func(_ context.Context, tx store.Tx) error {
		ev, err := records.GetEvent(tx, eventID)
		if err != nil {
			return err
		}
		if ev.AdminID != callerUID {
			return xerrors.Errorf("only the event admin can complete the event: %w", faults.ErrPermissionDenied)
		}
		if err := lifecycle.RequireStatusIn(ev, lifecycle.StatusActive); err != nil {
			return err
		}
		if err := lifecycle.AdvanceTo(ev, lifecycle.StatusCompleted); err != nil {
			return err
		}
		return tx.Set(records.EventPath(eventID), ev)
	})
}

// parseEntries validates the whole submission up front: the first value
// that fails to parse aborts the submission naming the offending team.
func parseEntries(entries map[string]string) (map[string]int64, error) {
	parsed := make(map[string]int64, len(entries))
	for teamID, raw := range entries {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		points, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, xerrors.Errorf("points %q for team %s: %w", raw, teamID, faults.ErrValidation)
		}
		parsed[teamID] = points
	}
	return parsed, nil
}
