// Package lifecycle owns the event status enum and the single transition
// table. Every mutating service calls through these helpers; no other
// package is allowed to inline a status list.
package lifecycle

import (
	"golang.org/x/xerrors"

	"github.com/jlee061829/eventor/pkg/faults"
	"github.com/jlee061829/eventor/repos/records"
)

type Status string

const (
	StatusSetup             Status = "setup"
	StatusInviting          Status = "inviting"
	StatusAssigningCaptains Status = "assigningCaptains"
	StatusDrafting          Status = "drafting"
	StatusActive            Status = "active"
	StatusCompleted         Status = "completed"
)

// statusOrder makes the lifecycle monotonic: a transition is legal only to
// a strictly later status. No status is ever revisited.
var statusOrder = map[Status]int{
	StatusSetup:             0,
	StatusInviting:          1,
	StatusAssigningCaptains: 2,
	StatusDrafting:          3,
	StatusActive:            4,
	StatusCompleted:         5,
}

func Known(s Status) bool {
	_, ok := statusOrder[s]
	return ok
}

func statusIn(ev *records.Event, allowed ...Status) bool {
	for _, s := range allowed {
		if Status(ev.Status) == s {
			return true
		}
	}
	return false
}

// RequireStatusIn fails with InvalidTransition unless the event currently
// sits in one of the allowed statuses.
func RequireStatusIn(ev *records.Event, allowed ...Status) error {
	if !statusIn(ev, allowed...) {
		return xerrors.Errorf("event %s is %s: %w", ev.ID, ev.Status, faults.ErrInvalidTransition)
	}
	return nil
}

// AdvanceTo moves the event forward. Moving sideways or backwards is an
// InvalidTransition.
func AdvanceTo(ev *records.Event, next Status) error {
	from, ok := statusOrder[Status(ev.Status)]
	if !ok {
		return xerrors.Errorf("event %s has unknown status %q: %w", ev.ID, ev.Status, faults.ErrInvalidTransition)
	}
	to, ok := statusOrder[next]
	if !ok || to <= from {
		return xerrors.Errorf("event %s cannot move %s -> %s: %w", ev.ID, ev.Status, next, faults.ErrInvalidTransition)
	}
	ev.Status = string(next)
	return nil
}

// The named predicates below are the full set of allowed-status rules in
// the system. They are pure reads; the mutating services wrap a false
// answer in InvalidTransition.

func CanInvite(ev *records.Event) bool {
	return statusIn(ev, StatusSetup, StatusInviting)
}

func CanAssignCaptains(ev *records.Event) bool {
	return statusIn(ev, StatusSetup, StatusInviting, StatusAssigningCaptains)
}

func CanStartDraft(ev *records.Event) bool {
	return statusIn(ev, StatusSetup, StatusInviting, StatusAssigningCaptains)
}

func CanRecordScores(ev *records.Event) bool {
	return statusIn(ev, StatusActive, StatusCompleted)
}

// CanRestoreDraftPool reports whether a removed captain may rejoin the
// available pool. Once a draft is underway or finished, reopening the pool
// would corrupt draft invariants.
func CanRestoreDraftPool(ev *records.Event) bool {
	return !statusIn(ev, StatusDrafting, StatusActive, StatusCompleted)
}
