// /home/krylon/go/src/github.com/blicero/morpheus/objects/02_alarm_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-14 22:31:54 krylon>

package objects

import (
	"testing"
	"time"

	"github.com/blicero/morpheus/common"
	"github.com/blicero/morpheus/objects/alarmstate"
)

// 2022-11-14 is a Monday.
var monday = time.Date(2022, 11, 14, 0, 0, 0, 0, time.UTC)

const maskMoWeFr = 0x15

func TestNewAlarmValidation(t *testing.T) {
	type testCase struct {
		hour, minute int
		valid        bool
	}

	var cases = []testCase{
		testCase{hour: 0, minute: 0, valid: true},
		testCase{hour: 23, minute: 59, valid: true},
		testCase{hour: 24, minute: 0, valid: false},
		testCase{hour: -1, minute: 30, valid: false},
		testCase{hour: 8, minute: 60, valid: false},
		testCase{hour: 8, minute: -5, valid: false},
	}

	for _, c := range cases {
		var (
			err error
			a   *Alarm
		)

		if a, err = NewAlarm("Test", c.hour, c.minute, Weekdays{}); c.valid && err != nil {
			t.Errorf("NewAlarm(%02d:%02d) failed unexpectedly: %s",
				c.hour,
				c.minute,
				err.Error())
		} else if !c.valid && err == nil {
			t.Errorf("NewAlarm(%02d:%02d) should have been rejected, got %s",
				c.hour,
				c.minute,
				a)
		}
	}
} // func TestNewAlarmValidation(t *testing.T)

func TestNextFireTime(t *testing.T) {
	type testCase struct {
		hour, minute int
		mask         uint8
		ref          time.Time
		expect       time.Time
	}

	var cases = []testCase{
		// One-shot, time of day still ahead.
		testCase{
			hour:   8,
			minute: 30,
			ref:    monday.Add(time.Hour * 7),
			expect: time.Date(2022, 11, 14, 8, 30, 0, 0, time.UTC),
		},
		// One-shot, time of day has passed, so it is due tomorrow.
		testCase{
			hour:   8,
			minute: 30,
			ref:    monday.Add(time.Hour * 9),
			expect: time.Date(2022, 11, 15, 8, 30, 0, 0, time.UTC),
		},
		// Mon/Wed/Fri, one second past today's slot, so Wednesday it is.
		testCase{
			hour:   7,
			minute: 0,
			mask:   maskMoWeFr,
			ref:    monday.Add(time.Hour*7 + time.Second),
			expect: time.Date(2022, 11, 16, 7, 0, 0, 0, time.UTC),
		},
		// Mon/Wed/Fri, a minute before today's slot.
		testCase{
			hour:   7,
			minute: 0,
			mask:   maskMoWeFr,
			ref:    monday.Add(time.Hour*6 + time.Minute*59),
			expect: time.Date(2022, 11, 14, 7, 0, 0, 0, time.UTC),
		},
		// Saturday only, asked on a Monday evening.
		testCase{
			hour:   10,
			minute: 15,
			mask:   1 << 5,
			ref:    monday.Add(time.Hour * 20),
			expect: time.Date(2022, 11, 19, 10, 15, 0, 0, time.UTC),
		},
	}

	for _, c := range cases {
		var (
			err  error
			a    *Alarm
			days Weekdays
		)

		if days, err = WeekdaysFromBitfield(c.mask); err != nil {
			t.Fatalf("Cannot create Weekdays from mask %d: %s",
				c.mask,
				err.Error())
		} else if a, err = NewAlarm("Test", c.hour, c.minute, days); err != nil {
			t.Fatalf("Cannot create Alarm: %s", err.Error())
		}

		if due := a.NextFireTime(c.ref); !due.Equal(c.expect) {
			t.Errorf(`Unexpected fire time for %s (ref %s):
Expected:       %s
Got:            %s
`,
				a,
				c.ref.Format(common.TimestampFormat),
				c.expect.Format(common.TimestampFormat),
				due.Format(common.TimestampFormat))
		}
	}
} // func TestNextFireTime(t *testing.T)

// Adding whole days to a time can silently shift the wall clock when
// the addition crosses a DST switch; NextFireTime must deliver the
// time of day the user asked for regardless.
func TestNextFireTimeDST(t *testing.T) {
	var (
		err error
		loc *time.Location
	)

	if loc, err = time.LoadLocation("America/New_York"); err != nil {
		t.Skipf("Cannot load tzdata for America/New_York: %s",
			err.Error())
	}

	var (
		days, _ = WeekdaysFromBitfield(127)
		a, _    = NewAlarm("DST", 8, 30, days)
	)

	type testCase struct {
		ref, expect time.Time
	}

	var cases = []testCase{
		// 2022-11-06, 02:00 EDT: clocks fall back.
		testCase{
			ref:    time.Date(2022, 11, 5, 20, 0, 0, 0, loc),
			expect: time.Date(2022, 11, 6, 8, 30, 0, 0, loc),
		},
		// 2023-03-12, 02:00 EST: clocks spring forward.
		testCase{
			ref:    time.Date(2023, 3, 11, 20, 0, 0, 0, loc),
			expect: time.Date(2023, 3, 12, 8, 30, 0, 0, loc),
		},
	}

	for _, c := range cases {
		var due = a.NextFireTime(c.ref)

		if !due.Equal(c.expect) {
			t.Errorf(`Unexpected fire time across DST switch (ref %s):
Expected:       %s
Got:            %s
`,
				c.ref.Format(common.TimestampFormatSubSecond),
				c.expect.Format(common.TimestampFormatSubSecond),
				due.Format(common.TimestampFormatSubSecond))
		} else if due.Hour() != 8 || due.Minute() != 30 {
			t.Errorf("Wall clock time was not re-asserted: %s",
				due.Format(common.TimestampFormatSubSecond))
		}
	}
} // func TestNextFireTimeDST(t *testing.T)

func TestPrevFireTime(t *testing.T) {
	var (
		err     error
		days    Weekdays
		a, solo *Alarm
	)

	if days, err = WeekdaysFromBitfield(maskMoWeFr); err != nil {
		t.Fatalf("Cannot create Weekdays: %s", err.Error())
	} else if a, err = NewAlarm("Test", 7, 0, days); err != nil {
		t.Fatalf("Cannot create Alarm: %s", err.Error())
	} else if solo, err = NewAlarm("OneShot", 7, 0, Weekdays{}); err != nil {
		t.Fatalf("Cannot create one-shot Alarm: %s", err.Error())
	}

	// Wednesday noon. The backward search starts at yesterday, so the
	// previous occurrence is Monday, not today's (already past) slot.
	var ref = time.Date(2022, 11, 16, 12, 0, 0, 0, time.UTC)

	if prev, ok := a.PrevFireTime(ref, alarmstate.Active); !ok {
		t.Error("PrevFireTime on a repeating Alarm should yield a result")
	} else if expect := time.Date(2022, 11, 14, 7, 0, 0, 0, time.UTC); !prev.Equal(expect) {
		t.Errorf("Unexpected previous fire time %s (expected %s)",
			prev.Format(common.TimestampFormat),
			expect.Format(common.TimestampFormat))
	}

	if _, ok := solo.PrevFireTime(ref, alarmstate.Active); ok {
		t.Error("A one-shot Alarm has no previous occurrence")
	}

	if _, ok := a.PrevFireTime(ref, alarmstate.Snoozed); ok {
		t.Error("A snoozed Alarm must not consult the recurring schedule")
	}
} // func TestPrevFireTime(t *testing.T)

func TestIsTomorrow(t *testing.T) {
	var a, err = NewAlarm("Test", 8, 30, Weekdays{})

	if err != nil {
		t.Fatalf("Cannot create Alarm: %s", err.Error())
	}

	if !a.IsTomorrow(monday.Add(time.Hour*9), alarmstate.Active) {
		t.Error("At 09:00, an 08:30 alarm is due tomorrow")
	}

	if a.IsTomorrow(monday.Add(time.Hour*7), alarmstate.Active) {
		t.Error("At 07:00, an 08:30 alarm is due today")
	}

	for _, h := range []time.Duration{0, 7, 9, 23} {
		if a.IsTomorrow(monday.Add(time.Hour*h), alarmstate.Snoozed) {
			t.Errorf("A snoozed alarm is never reported as due tomorrow (ref hour %d)",
				h)
		}
	}
} // func TestIsTomorrow(t *testing.T)

func TestCreateInstanceAfter(t *testing.T) {
	var (
		err     error
		days, _ = WeekdaysFromBitfield(maskMoWeFr)
		a       *Alarm
	)

	if a, err = NewAlarm("Wake up", 7, 0, days); err != nil {
		t.Fatalf("Cannot create Alarm: %s", err.Error())
	}

	a.ID = 23
	a.Vibrate = true
	a.Ringtone = RingtoneSilent

	var inst = a.CreateInstanceAfter(monday.Add(time.Hour * 8))

	if inst.AlarmID != a.ID {
		t.Errorf("Instance does not reference its Alarm: %d (expected %d)",
			inst.AlarmID,
			a.ID)
	} else if inst.State != alarmstate.Active {
		t.Errorf("Fresh instance should be %s, is %s",
			alarmstate.Active,
			inst.State)
	} else if inst.Label != a.Label || inst.Vibrate != a.Vibrate || inst.Ringtone != a.Ringtone {
		t.Errorf("Presentation fields were not captured: %s", inst)
	} else if inst.UUID == "" {
		t.Error("Instance has no UUID")
	}

	var expect = time.Date(2022, 11, 16, 7, 0, 0, 0, time.UTC)

	if due := inst.FireTime(time.UTC); !due.Equal(expect) {
		t.Errorf("Unexpected instance fire time %s (expected %s)",
			due.Format(common.TimestampFormat),
			expect.Format(common.TimestampFormat))
	}
} // func TestCreateInstanceAfter(t *testing.T)
