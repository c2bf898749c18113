// /home/krylon/go/src/github.com/blicero/morpheus/objects/03_instance_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-14 22:48:33 krylon>

package objects

import (
	"testing"
	"time"

	"github.com/blicero/morpheus/common"
	"github.com/blicero/morpheus/objects/alarmstate"
)

func TestInstanceSetState(t *testing.T) {
	var inst = &AlarmInstance{
		AlarmID: 23,
		Year:    2022,
		Month:   11,
		Day:     16,
		Hour:    7,
		Minute:  0,
		State:   alarmstate.Active,
		UUID:    common.GetUUID(),
	}

	if err := inst.SetState(alarmstate.Fired); err == nil {
		t.Error("Skipping straight from Active to Fired should have been rejected")
	} else if inst.State != alarmstate.Active {
		t.Errorf("Rejected transition must leave the state untouched, found %s",
			inst.State)
	}

	for _, next := range []alarmstate.ID{
		alarmstate.LowNotification,
		alarmstate.HighNotification,
		alarmstate.Fired,
		alarmstate.Snoozed,
		alarmstate.Fired,
		alarmstate.Missed,
		alarmstate.Dismissed,
	} {
		if err := inst.SetState(next); err != nil {
			t.Fatalf("Transition to %s failed: %s",
				next,
				err.Error())
		}
	}

	if !inst.State.IsTerminal() {
		t.Errorf("Instance should have ended up in a terminal state, is %s",
			inst.State)
	}
} // func TestInstanceSetState(t *testing.T)

func TestInstanceFireTime(t *testing.T) {
	var inst = &AlarmInstance{
		Year:   2022,
		Month:  11,
		Day:    16,
		Hour:   7,
		Minute: 30,
	}

	var expect = time.Date(2022, 11, 16, 7, 30, 0, 0, time.UTC)

	if due := inst.FireTime(time.UTC); !due.Equal(expect) {
		t.Errorf("Unexpected fire time %s (expected %s)",
			due.Format(common.TimestampFormat),
			expect.Format(common.TimestampFormat))
	}

	inst.SetFireTime(expect.Add(time.Minute * 10))

	if inst.Hour != 7 || inst.Minute != 40 {
		t.Errorf("SetFireTime did not rewrite the wall clock fields: %02d:%02d",
			inst.Hour,
			inst.Minute)
	}
} // func TestInstanceFireTime(t *testing.T)
