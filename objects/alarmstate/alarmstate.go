// /home/krylon/go/src/github.com/blicero/morpheus/objects/alarmstate/alarmstate.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-09 20:41:27 krylon>

//go:generate stringer -type=ID

// Package alarmstate defines the states an AlarmInstance passes
// through between being scheduled and being disposed of, and which
// transitions between those states are legal.
package alarmstate

import "fmt"

// ID represents the state of an AlarmInstance.
type ID uint8

// Active means the instance is scheduled, but the user has not been
// made aware of it yet.
// LowNotification means a low-priority notification is being displayed
// ahead of the fire time.
// HideNotification means the user has swiped away the low-priority
// notification without dismissing the instance.
// HighNotification means a high-priority notification is being
// displayed shortly before the fire time.
// Snoozed means the instance went off and was postponed by the user.
// Fired means the instance is going off right now.
// Missed means the instance went off but was never acknowledged.
// Dismissed and Predismissed are terminal; Predismissed is reserved
// for instances the user got rid of before they ever fired.
const (
	Active ID = iota
	LowNotification
	HideNotification
	HighNotification
	Snoozed
	Fired
	Missed
	Dismissed
	Predismissed
)

// All returns a slice of all states.
func All() []ID {
	return []ID{
		Active,
		LowNotification,
		HideNotification,
		HighNotification,
		Snoozed,
		Fired,
		Missed,
		Dismissed,
		Predismissed,
	}
} // func All() []ID

// A hidden notification must be re-shown before the instance can be
// dismissed, hence HideNotification only leads to HighNotification.
var transitions = map[ID][]ID{
	Active:           {LowNotification, HighNotification, Predismissed},
	LowNotification:  {HideNotification, HighNotification, Dismissed, Predismissed},
	HideNotification: {HighNotification},
	HighNotification: {Fired, Dismissed, Predismissed},
	Snoozed:          {Fired, Dismissed},
	Fired:            {Snoozed, Missed, Dismissed},
	Missed:           {Dismissed},
	Dismissed:        {},
	Predismissed:     {},
}

// CanTransition returns true if the transition from the receiver to
// the given state is legal.
func (i ID) CanTransition(next ID) bool {
	for _, s := range transitions[i] {
		if s == next {
			return true
		}
	}

	return false
} // func (i ID) CanTransition(next ID) bool

// Transition checks the transition from one state to another,
// returning an error if it is not legal.
func Transition(from, to ID) error {
	if !from.CanTransition(to) {
		return fmt.Errorf("Illegal state transition %s -> %s",
			from,
			to)
	}

	return nil
} // func Transition(from, to ID) error

// IsTerminal returns true if no further transitions are possible from
// the receiver.
func (i ID) IsTerminal() bool {
	return len(transitions[i]) == 0
} // func (i ID) IsTerminal() bool

// CanDismissEarly returns true if an instance in the given state can
// be dismissed by the user before it has fired.
func (i ID) CanDismissEarly() bool {
	switch i {
	case LowNotification, HideNotification, HighNotification, Snoozed:
		return true
	default:
		return false
	}
} // func (i ID) CanDismissEarly() bool
