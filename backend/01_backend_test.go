// /home/krylon/go/src/github.com/blicero/morpheus/backend/01_backend_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-19 18:24:50 krylon>

package backend

import (
	"fmt"
	"testing"
	"time"

	"github.com/blicero/morpheus/common"
	"github.com/blicero/morpheus/objects"
	"github.com/blicero/morpheus/objects/alarmstate"
)

var back *Daemon

func init() {
	var baseDir = time.Now().Format("/tmp/morpheus_backend_test_20060102_150405")

	if err := common.SetBaseDir(baseDir); err != nil {
		panic(err)
	}
} // func init()

func TestSummon(t *testing.T) {
	var (
		err  error
		addr = fmt.Sprintf("[::1]:%d", common.DefaultPort)
	)

	if back, err = Summon(addr); err != nil {
		back = nil
		t.Fatalf("Cannot create Daemon: %s",
			err.Error())
	}
} // func TestSummon(t *testing.T)

// An enabled Alarm with no live instance gets one scheduled on the
// next pass, in the initial state.
func TestScheduleInstance(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err  error
		a    *objects.Alarm
		inst *objects.AlarmInstance
		days objects.Weekdays
	)

	if days, err = objects.WeekdaysFromBitfield(127); err != nil {
		t.Fatalf("Cannot create Weekdays: %s", err.Error())
	} else if a, err = objects.NewAlarm("Daily grind", 6, 30, days); err != nil {
		t.Fatalf("Cannot create Alarm: %s", err.Error())
	}

	var db = back.pool.Get()
	defer back.pool.Put(db)

	if err = db.AlarmAdd(a); err != nil {
		t.Fatalf("Cannot add Alarm %q: %s",
			a.Label,
			err.Error())
	} else if err = back.checkAlarms(); err != nil {
		t.Fatalf("checkAlarms failed: %s", err.Error())
	}

	if inst, err = db.InstanceGetByAlarm(a); err != nil {
		t.Fatalf("Cannot look up live instance of Alarm %d: %s",
			a.ID,
			err.Error())
	} else if inst == nil {
		t.Fatalf("No instance was scheduled for Alarm %d", a.ID)
	} else if inst.State != alarmstate.Active {
		t.Errorf("Fresh instance should be %s, not %s",
			alarmstate.Active,
			inst.State)
	}
} // func TestScheduleInstance(t *testing.T)

// Walk an overdue instance through its states tick by tick.
func TestAdvanceInstance(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err  error
		a    *objects.Alarm
		inst *objects.AlarmInstance
		now  = time.Now()
	)

	if a, err = objects.NewAlarm("Naptime is over", 12, 0, objects.Weekdays{}); err != nil {
		t.Fatalf("Cannot create Alarm: %s", err.Error())
	}

	var db = back.pool.Get()
	defer back.pool.Put(db)

	if err = db.AlarmAdd(a); err != nil {
		t.Fatalf("Cannot add Alarm %q: %s",
			a.Label,
			err.Error())
	}

	inst = a.CreateInstanceAfter(now)

	if err = db.InstanceAdd(inst); err != nil {
		t.Fatalf("Cannot add instance: %s", err.Error())
	} else if err = db.InstanceSetTime(inst, now.Add(-time.Minute)); err != nil {
		t.Fatalf("Cannot backdate instance: %s", err.Error())
	}

	// Overdue and Active, the first tick escalates...
	if err = back.advanceInstance(db, inst, now); err != nil {
		t.Fatalf("Cannot advance instance: %s", err.Error())
	} else if inst.State != alarmstate.HighNotification {
		t.Fatalf("Instance should be %s, not %s",
			alarmstate.HighNotification,
			inst.State)
	}

	// ...the second one fires...
	if err = back.advanceInstance(db, inst, now); err != nil {
		t.Fatalf("Cannot advance instance: %s", err.Error())
	} else if inst.State != alarmstate.Fired {
		t.Fatalf("Instance should be %s, not %s",
			alarmstate.Fired,
			inst.State)
	}

	// ...and if nobody reacts for long enough, the Alarm was missed.
	if err = back.advanceInstance(db, inst, now.Add(missedTimeout+time.Minute)); err != nil {
		t.Fatalf("Cannot advance instance: %s", err.Error())
	} else if inst.State != alarmstate.Missed {
		t.Fatalf("Instance should be %s, not %s",
			alarmstate.Missed,
			inst.State)
	}
} // func TestAdvanceInstance(t *testing.T)

// Dismissing the instance of a spent one-shot Alarm disables the Alarm.
func TestConsumeAlarm(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err  error
		a    *objects.Alarm
		copy *objects.Alarm
	)

	if a, err = objects.NewAlarm("One morning only", 8, 15, objects.Weekdays{}); err != nil {
		t.Fatalf("Cannot create Alarm: %s", err.Error())
	}

	var db = back.pool.Get()
	defer back.pool.Put(db)

	if err = db.AlarmAdd(a); err != nil {
		t.Fatalf("Cannot add Alarm %q: %s",
			a.Label,
			err.Error())
	} else if err = back.consumeAlarm(db, a.ID); err != nil {
		t.Fatalf("consumeAlarm failed: %s", err.Error())
	}

	if copy, err = db.AlarmGetByID(a.ID); err != nil {
		t.Fatalf("Cannot look up Alarm %d: %s",
			a.ID,
			err.Error())
	} else if copy == nil {
		t.Fatalf("Alarm %d should still exist", a.ID)
	} else if copy.Enabled {
		t.Errorf("Spent one-shot Alarm %d should be disabled", a.ID)
	}
} // func TestConsumeAlarm(t *testing.T)
