package records

import (
	"sort"

	"golang.org/x/xerrors"

	"github.com/jlee061829/eventor/pkg/faults"
	"github.com/jlee061829/eventor/repos/store"
)

// Typed reads shared by the services. A missing document that an operation
// depends on is a ReferentialIntegrityError.

func GetEvent(tx store.Tx, eventID string) (*Event, error) {
	snap, err := tx.Get(EventPath(eventID))
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, xerrors.Errorf("event %s: %w", eventID, faults.ErrReferentialIntegrity)
	}
	var ev Event
	if err := snap.DataTo(&ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func GetUser(tx store.Tx, userID string) (*User, error) {
	snap, err := tx.Get(UserPath(userID))
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, xerrors.Errorf("user %s: %w", userID, faults.ErrReferentialIntegrity)
	}
	var user User
	if err := snap.DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func GetTeam(tx store.Tx, eventID, teamID string) (*Team, error) {
	snap, err := tx.Get(TeamPath(eventID, teamID))
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, xerrors.Errorf("team %s of event %s: %w", teamID, eventID, faults.ErrReferentialIntegrity)
	}
	var team Team
	if err := snap.DataTo(&team); err != nil {
		return nil, err
	}
	return &team, nil
}

// GetTeams returns the event's teams in creation order.
func GetTeams(tx store.Tx, eventID string) ([]Team, error) {
	snaps, err := tx.GetAll(TeamsPath(eventID))
	if err != nil {
		return nil, err
	}
	return TeamsFromSnapshots(snaps)
}

// TeamsFromSnapshots decodes and orders a collection read of teams.
func TeamsFromSnapshots(snaps []store.Snapshot) ([]Team, error) {
	teams := make([]Team, 0, len(snaps))
	for _, snap := range snaps {
		var team Team
		if err := snap.DataTo(&team); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	SortTeams(teams)
	return teams, nil
}

// SortTeams orders by creation time, then id for a stable tie-break.
func SortTeams(teams []Team) {
	sort.Slice(teams, func(i, j int) bool {
		if !teams[i].CreatedAt.Equal(teams[j].CreatedAt) {
			return teams[i].CreatedAt.Before(teams[j].CreatedAt)
		}
		return teams[i].ID < teams[j].ID
	})
}

func Contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func Remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
