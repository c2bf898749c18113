// /home/krylon/go/src/github.com/blicero/morpheus/objects/alarm.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-14 21:02:49 krylon>

//go:generate ffjson alarm.go

package objects

import (
	"fmt"
	"time"

	"github.com/blicero/morpheus/common"
	"github.com/blicero/morpheus/objects/alarmstate"
)

// RingtoneSilent is the sentinel value for an Alarm that makes no
// sound at all. The empty string means the system default sound.
const RingtoneSilent = "silent"

// Alarm is the template for a - possibly recurring - wake-up call.
// It stores the wall clock time it is meant to go off at, not an
// instant; the concrete occurrences are AlarmInstances.
type Alarm struct {
	ID               int64
	Label            string
	Hour             int
	Minute           int
	Days             Weekdays
	Enabled          bool
	Vibrate          bool
	Ringtone         string
	DeleteAfterUse   bool
	IncreasingVolume bool
	UUID             string
	Changed          time.Time
}

// NewAlarm creates a fresh Alarm. It returns an error if hour or
// minute are out of range; it never clamps, a silently adjusted alarm
// time is a bug the user gets to discover the hard way.
func NewAlarm(label string, hour, minute int, days Weekdays) (*Alarm, error) {
	var a = &Alarm{
		Label:   label,
		Hour:    hour,
		Minute:  minute,
		Days:    days,
		Enabled: true,
		UUID:    common.GetUUID(),
		Changed: time.Now(),
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
} // func NewAlarm(label string, hour, minute int, days Weekdays) (*Alarm, error)

// Validate checks the Alarm's time of day for sanity.
func (a *Alarm) Validate() error {
	if a.Hour < 0 || a.Hour > 23 {
		return fmt.Errorf("Invalid hour %d (must be 0 - 23)",
			a.Hour)
	} else if a.Minute < 0 || a.Minute > 59 {
		return fmt.Errorf("Invalid minute %d (must be 0 - 59)",
			a.Minute)
	}

	return nil
} // func (a *Alarm) Validate() error

// NextFireTime computes the next time the Alarm is due after the
// given reference time.
func (a *Alarm) NextFireTime(ref time.Time) time.Time {
	var due = time.Date(
		ref.Year(),
		ref.Month(),
		ref.Day(),
		a.Hour,
		a.Minute,
		0,
		0,
		ref.Location())

	if !due.After(ref) {
		due = due.AddDate(0, 0, 1)
	}

	if a.Days.IsRepeating() {
		if dist := a.Days.DistanceToNext(due.Weekday()); dist > 0 {
			due = due.AddDate(0, 0, dist)
		}
	}

	// Crossing a DST switch while adding days can perturb the wall
	// clock time, so hour and minute are asserted once more.
	return time.Date(
		due.Year(),
		due.Month(),
		due.Day(),
		a.Hour,
		a.Minute,
		0,
		0,
		due.Location())
} // func (a *Alarm) NextFireTime(ref time.Time) time.Time

// PrevFireTime computes the most recent time the Alarm was due before
// the given reference time. For a one-shot Alarm there is no
// well-defined previous occurrence, and for a snoozed one the
// recurring schedule is not consulted at all, so in both cases the
// second return value is false.
func (a *Alarm) PrevFireTime(ref time.Time, st alarmstate.ID) (time.Time, bool) {
	if !a.Days.IsRepeating() || st == alarmstate.Snoozed {
		return time.Time{}, false
	}

	var due = time.Date(
		ref.Year(),
		ref.Month(),
		ref.Day(),
		a.Hour,
		a.Minute,
		0,
		0,
		ref.Location())

	var dist = a.Days.DistanceToPrev(due.Weekday())

	if dist <= 0 {
		return time.Time{}, false
	}

	due = due.AddDate(0, 0, -dist)

	return time.Date(
		due.Year(),
		due.Month(),
		due.Day(),
		a.Hour,
		a.Minute,
		0,
		0,
		due.Location()), true
} // func (a *Alarm) PrevFireTime(ref time.Time, st alarmstate.ID) (time.Time, bool)

// IsTomorrow returns true if the Alarm's next occurrence falls on the
// day after the reference time, i.e. if its time of day has already
// passed. A snoozed Alarm is never reported as due tomorrow.
func (a *Alarm) IsTomorrow(ref time.Time, st alarmstate.ID) bool {
	if st == alarmstate.Snoozed {
		return false
	}

	return a.Hour*60+a.Minute <= ref.Hour()*60+ref.Minute()
} // func (a *Alarm) IsTomorrow(ref time.Time, st alarmstate.ID) bool

// CreateInstanceAfter creates the AlarmInstance for the Alarm's next
// occurrence after the reference time. The instance gets its own copy
// of the presentation fields, so editing the Alarm afterwards does not
// retroactively alter an occurrence that is already scheduled.
func (a *Alarm) CreateInstanceAfter(ref time.Time) *AlarmInstance {
	var due = a.NextFireTime(ref)

	return &AlarmInstance{
		AlarmID:          a.ID,
		Year:             due.Year(),
		Month:            int(due.Month()),
		Day:              due.Day(),
		Hour:             due.Hour(),
		Minute:           due.Minute(),
		State:            alarmstate.Active,
		Label:            a.Label,
		Vibrate:          a.Vibrate,
		Ringtone:         a.Ringtone,
		IncreasingVolume: a.IncreasingVolume,
		UUID:             common.GetUUID(),
		Changed:          time.Now(),
	}
} // func (a *Alarm) CreateInstanceAfter(ref time.Time) *AlarmInstance

func (a *Alarm) String() string {
	return fmt.Sprintf("Alarm{ ID: %d, Label: %q, Time: %02d:%02d, Days: %q, Enabled: %t }",
		a.ID,
		a.Label,
		a.Hour,
		a.Minute,
		a.Days.String(),
		a.Enabled)
} // func (a *Alarm) String() string

// IsNewer returns true if the receiver's Changed stamp is
// more recent than the argument's.
func (a *Alarm) IsNewer(other *Alarm) bool {
	return a.Changed.After(other.Changed)
} // func (a *Alarm) IsNewer(other *Alarm) bool
