// Package records defines the document shapes stored in Firestore and the
// paths they live under. Every service reads and writes these through
// repos/store so the same shapes round-trip in tests.
package records

import (
	"fmt"
	"time"
)

// User roles.
const (
	RoleParticipant = "participant"
	RoleCaptain     = "captain"
	RoleAdmin       = "admin"
)

// Draft statuses. A draft that has no document yet is simply not started.
const (
	DraftActive    = "active"
	DraftCompleted = "completed"
)

type Event struct {
	ID                   string    `firestore:"ID" json:"id"`
	Name                 string    `firestore:"Name" json:"name"`
	AdminID              string    `firestore:"AdminID" json:"adminId"`
	Status               string    `firestore:"Status" json:"status"`
	NumberOfTeams        int       `firestore:"NumberOfTeams" json:"numberOfTeams"`
	ParticipantIDs       []string  `firestore:"ParticipantIDs" json:"participantIds"`
	AvailableForDraftIDs []string  `firestore:"AvailableForDraftIDs" json:"availableForDraftIds"`
	CreatedAt            time.Time `firestore:"CreatedAt" json:"createdAt"`
}

type Team struct {
	ID        string    `firestore:"ID" json:"id"`
	EventID   string    `firestore:"EventID" json:"eventId"`
	Name      string    `firestore:"Name" json:"name"`
	CaptainID string    `firestore:"CaptainID" json:"captainId"`
	MemberIDs []string  `firestore:"MemberIDs" json:"memberIds"`
	CreatedAt time.Time `firestore:"CreatedAt" json:"createdAt"`
}

type Draft struct {
	EventID           string    `firestore:"EventID" json:"eventId"`
	Status            string    `firestore:"Status" json:"status"`
	PickOrder         []string  `firestore:"PickOrder" json:"pickOrder"`
	CurrentPickIndex  int       `firestore:"CurrentPickIndex" json:"currentPickIndex"`
	RoundNumber       int       `firestore:"RoundNumber" json:"roundNumber"`
	TotalPicksMade    int       `firestore:"TotalPicksMade" json:"totalPicksMade"`
	LastPickTimestamp time.Time `firestore:"LastPickTimestamp" json:"lastPickTimestamp"`
}

type Score struct {
	ID         string    `firestore:"ID" json:"id"`
	EventID    string    `firestore:"EventID" json:"eventId"`
	SubEventID string    `firestore:"SubEventID" json:"subEventId"`
	TeamID     string    `firestore:"TeamID" json:"teamId"`
	Points     int64     `firestore:"Points" json:"points"`
	AssignedBy string    `firestore:"AssignedBy" json:"assignedBy"`
	AssignedAt time.Time `firestore:"AssignedAt" json:"assignedAt"`
}

type User struct {
	ID      string `firestore:"ID" json:"id"`
	Email   string `firestore:"Email" json:"email"`
	Role    string `firestore:"Role" json:"role"`
	EventID string `firestore:"EventID" json:"eventId"`
	TeamID  string `firestore:"TeamID" json:"teamId"`
}

type Invite struct {
	ID        string    `firestore:"ID" json:"id"`
	EventID   string    `firestore:"EventID" json:"eventId"`
	Email     string    `firestore:"Email" json:"email"`
	Code      string    `firestore:"Code" json:"code"`
	ClaimedBy string    `firestore:"ClaimedBy" json:"claimedBy"`
	CreatedAt time.Time `firestore:"CreatedAt" json:"createdAt"`
	ClaimedAt time.Time `firestore:"ClaimedAt" json:"claimedAt"`
}

func EventPath(eventID string) string {
	return fmt.Sprintf("Events/%s", eventID)
}

func TeamsPath(eventID string) string {
	return fmt.Sprintf("Events/%s/Teams", eventID)
}

func TeamPath(eventID, teamID string) string {
	return fmt.Sprintf("Events/%s/Teams/%s", eventID, teamID)
}

func DraftPath(eventID string) string {
	return fmt.Sprintf("Drafts/%s", eventID)
}

func ScoresPath(eventID string) string {
	return fmt.Sprintf("Events/%s/Scores", eventID)
}

// ScorePath keys a score by sub-event and team, which is what makes score
// submission an upsert rather than an append.
func ScorePath(eventID, subEventID, teamID string) string {
	return fmt.Sprintf("Events/%s/Scores/%s_%s", eventID, subEventID, teamID)
}

func UserPath(userID string) string {
	return fmt.Sprintf("Users/%s", userID)
}

func InvitesPath(eventID string) string {
	return fmt.Sprintf("Events/%s/Invites", eventID)
}

func InvitePath(eventID, inviteID string) string {
	return fmt.Sprintf("Events/%s/Invites/%s", eventID, inviteID)
}
