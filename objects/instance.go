// /home/krylon/go/src/github.com/blicero/morpheus/objects/instance.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-14 21:55:10 krylon>

//go:generate ffjson instance.go

package objects

import (
	"fmt"
	"time"

	"github.com/blicero/morpheus/objects/alarmstate"
)

// AlarmInstance is one concrete occurrence of an Alarm. The fire time
// is stored decomposed into its wall clock fields rather than as an
// instant, so a change of time zone or DST rules does not silently
// move the alarm away from the time of day the user asked for.
type AlarmInstance struct {
	ID               int64
	AlarmID          int64
	Year             int
	Month            int
	Day              int
	Hour             int
	Minute           int
	State            alarmstate.ID
	Label            string
	Vibrate          bool
	Ringtone         string
	IncreasingVolume bool
	UUID             string
	Changed          time.Time
}

// FireTime recomposes the instance's wall clock fields into a
// time.Time in the given location. If loc is nil, the local time zone
// is used.
func (i *AlarmInstance) FireTime(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}

	return time.Date(
		i.Year,
		time.Month(i.Month),
		i.Day,
		i.Hour,
		i.Minute,
		0,
		0,
		loc)
} // func (i *AlarmInstance) FireTime(loc *time.Location) time.Time

// SetFireTime rewrites the instance's wall clock fields from the
// given time. Used when snoozing.
func (i *AlarmInstance) SetFireTime(t time.Time) {
	i.Year = t.Year()
	i.Month = int(t.Month())
	i.Day = t.Day()
	i.Hour = t.Hour()
	i.Minute = t.Minute()
	i.Changed = time.Now()
} // func (i *AlarmInstance) SetFireTime(t time.Time)

// SetState attempts to move the instance to the given state. An
// illegal transition is an error in the caller, it is rejected
// untouched rather than coerced to something legal-ish.
func (i *AlarmInstance) SetState(next alarmstate.ID) error {
	if err := alarmstate.Transition(i.State, next); err != nil {
		return err
	}

	i.State = next
	i.Changed = time.Now()
	return nil
} // func (i *AlarmInstance) SetState(next alarmstate.ID) error

// Due returns the instance's fire time.
func (i *AlarmInstance) Due() time.Time {
	return i.FireTime(nil)
} // func (i *AlarmInstance) Due() time.Time

// IsDue returns true if the instance's fire time has passed.
func (i *AlarmInstance) IsDue() bool {
	return !i.FireTime(nil).After(time.Now())
} // func (i *AlarmInstance) IsDue() bool

// Payload returns the instance's Label and fire time in presentable form.
func (i *AlarmInstance) Payload() (string, string) {
	var title = i.Label

	if title == "" {
		title = "Alarm"
	}

	return title, fmt.Sprintf("%04d-%02d-%02d %02d:%02d",
		i.Year,
		i.Month,
		i.Day,
		i.Hour,
		i.Minute)
} // func (i *AlarmInstance) Payload() (string, string)

func (i *AlarmInstance) String() string {
	return fmt.Sprintf("AlarmInstance{ ID: %d, AlarmID: %d, Time: %04d-%02d-%02d %02d:%02d, State: %s }",
		i.ID,
		i.AlarmID,
		i.Year,
		i.Month,
		i.Day,
		i.Hour,
		i.Minute,
		i.State)
} // func (i *AlarmInstance) String() string
