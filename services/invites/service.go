package invites

import (
	"context"
	"log"

	"github.com/samborkent/uuidv7"
	"golang.org/x/xerrors"

	"github.com/jlee061829/eventor/pkg/faults"
	timehelper "github.com/jlee061829/eventor/pkg/timeHelper"
	"github.com/jlee061829/eventor/repos/records"
	"github.com/jlee061829/eventor/repos/store"
	"github.com/jlee061829/eventor/services/lifecycle"
)

// Mailer delivers the invitation link. Delivery failures do not roll back
// the committed invitation.
type Mailer interface {
	SendInvite(ctx context.Context, email, eventName, code string) error
}

// Service issues and redeems event invitations. Accepting an invite is
// what puts a user into the event's participant set and draft pool.
type Service struct {
	store  store.Store
	mailer Mailer
	clock  timehelper.Clock
}

func NewService(st store.Store, mailer Mailer, clock timehelper.Clock) *Service {
	return &Service{
		store:  st,
		mailer: mailer,
		clock:  clock,
	}
}

// InviteParticipant records an invitation and mails the join link. The
// first invite moves the event from setup to inviting.
func (s *Service) InviteParticipant(ctx context.Context, callerUID, eventID, email string) (*records.Invite, error) {
	var (
		created   records.Invite
		eventName string
	)
	err := s.store.RunTransaction(ctx, func(_ context.Context, tx store.Tx) error {
		ev, err := records.GetEvent(tx, eventID)
		if err != nil {
			return err
		}
		if ev.AdminID != callerUID {
			return xerrors.Errorf("only the event admin can invite: %w", faults.ErrPermissionDenied)
		}
		if !lifecycle.CanInvite(ev) {
			return xerrors.Errorf("event %s is %s: %w", eventID, ev.Status, faults.ErrInvalidTransition)
		}
		eventName = ev.Name

		inviteID := uuidv7.New().String()
		created = records.Invite{
			ID:        inviteID,
			EventID:   eventID,
			Email:     email,
			Code:      encodeCode(eventID, inviteID),
			CreatedAt: s.clock.Now(),
		}

		if lifecycle.Status(ev.Status) == lifecycle.StatusSetup {
			if err := lifecycle.AdvanceTo(ev, lifecycle.StatusInviting); err != nil {
				return err
			}
			if err := tx.Set(records.EventPath(eventID), ev); err != nil {
				return err
			}
		}
		return tx.Set(records.InvitePath(eventID, inviteID), created)
	})
	if err != nil {
		return nil, err
	}

	go func() {
		if err := s.mailer.SendInvite(context.Background(), email, eventName, created.Code); err != nil {
			log.Printf("Invite mail for %s failed: %v\n", email, err)
		}
	}()
	return &created, nil
}

// AcceptInvite redeems a code for the calling user, adding them to the
// event's participant set and draft pool. Accepting the same invite twice
// with the same user is a no-op.
func (s *Service) AcceptInvite(ctx context.Context, callerUID, callerEmail, code string) (*records.Event, error) {
	eventID, inviteID, err := decodeCode(code)
	if err != nil {
		return nil, xerrors.Errorf("invite code: %w", faults.ErrValidation)
	}

	var joined records.Event
	err = s.store.RunTransaction(ctx, func(_ context.Context, tx store.Tx) error {
		inviteSnap, err := tx.Get(records.InvitePath(eventID, inviteID))
		if err != nil {
			return err
		}
		if !inviteSnap.Exists() {
			return xerrors.Errorf("invite %s of event %s: %w", inviteID, eventID, faults.ErrReferentialIntegrity)
		}
		var invite records.Invite
		if err := inviteSnap.DataTo(&invite); err != nil {
			return err
		}
		if invite.ClaimedBy != "" && invite.ClaimedBy != callerUID {
			return xerrors.Errorf("invite %s already claimed: %w", inviteID, faults.ErrPermissionDenied)
		}

		ev, err := records.GetEvent(tx, eventID)
		if err != nil {
			return err
		}
		joined = *ev
		if invite.ClaimedBy == callerUID {
			return nil // repeat accept, nothing to do
		}
		if !lifecycle.CanInvite(ev) {
			return xerrors.Errorf("event %s is %s: %w", eventID, ev.Status, faults.ErrInvalidTransition)
		}

		userSnap, err := tx.Get(records.UserPath(callerUID))
		if err != nil {
			return err
		}
		user := records.User{ID: callerUID, Email: callerEmail}
		if userSnap.Exists() {
			if err := userSnap.DataTo(&user); err != nil {
				return err
			}
		}
		user.Role = records.RoleParticipant
		user.EventID = eventID

		if !records.Contains(ev.ParticipantIDs, callerUID) {
			ev.ParticipantIDs = append(ev.ParticipantIDs, callerUID)
		}
		if !records.Contains(ev.AvailableForDraftIDs, callerUID) {
			ev.AvailableForDraftIDs = append(ev.AvailableForDraftIDs, callerUID)
		}

		invite.ClaimedBy = callerUID
		invite.ClaimedAt = s.clock.Now()

		if err := tx.Set(records.InvitePath(eventID, inviteID), invite); err != nil {
			return err
		}
		if err := tx.Set(records.UserPath(callerUID), user); err != nil {
			return err
		}
		if err := tx.Set(records.EventPath(eventID), ev); err != nil {
			return err
		}
		joined = *ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &joined, nil
}
