// /home/krylon/go/src/github.com/blicero/morpheus/objects/alarmstate/01_state_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-09 21:05:17 krylon>

package alarmstate

import "testing"

func TestTransitions(t *testing.T) {
	type testCase struct {
		from, to ID
		legal    bool
	}

	var cases = []testCase{
		testCase{from: Active, to: LowNotification, legal: true},
		testCase{from: Active, to: HighNotification, legal: true},
		testCase{from: Active, to: Predismissed, legal: true},
		testCase{from: Active, to: Fired},
		testCase{from: Active, to: Snoozed},
		testCase{from: LowNotification, to: HideNotification, legal: true},
		testCase{from: LowNotification, to: HighNotification, legal: true},
		testCase{from: LowNotification, to: Dismissed, legal: true},
		testCase{from: LowNotification, to: Fired},
		testCase{from: HideNotification, to: HighNotification, legal: true},
		testCase{from: HideNotification, to: Dismissed},
		testCase{from: HideNotification, to: Predismissed},
		testCase{from: HighNotification, to: Fired, legal: true},
		testCase{from: HighNotification, to: Dismissed, legal: true},
		testCase{from: Snoozed, to: Fired, legal: true},
		testCase{from: Snoozed, to: Dismissed, legal: true},
		testCase{from: Snoozed, to: Missed},
		testCase{from: Fired, to: Snoozed, legal: true},
		testCase{from: Fired, to: Missed, legal: true},
		testCase{from: Fired, to: Dismissed, legal: true},
		testCase{from: Missed, to: Dismissed, legal: true},
		testCase{from: Missed, to: Fired},
		testCase{from: Dismissed, to: Active},
		testCase{from: Predismissed, to: Active},
	}

	for _, c := range cases {
		var err = Transition(c.from, c.to)

		if c.legal && err != nil {
			t.Errorf("Transition %s -> %s should be legal: %s",
				c.from,
				c.to,
				err.Error())
		} else if !c.legal && err == nil {
			t.Errorf("Transition %s -> %s should have been rejected",
				c.from,
				c.to)
		}
	}
} // func TestTransitions(t *testing.T)

func TestTerminal(t *testing.T) {
	for _, s := range All() {
		var expect = s == Dismissed || s == Predismissed

		if s.IsTerminal() != expect {
			t.Errorf("IsTerminal for %s should be %t",
				s,
				expect)
		}
	}
} // func TestTerminal(t *testing.T)

func TestCanDismissEarly(t *testing.T) {
	var expect = map[ID]bool{
		Active:           false,
		LowNotification:  true,
		HideNotification: true,
		HighNotification: true,
		Snoozed:          true,
		Fired:            false,
		Missed:           false,
		Dismissed:        false,
		Predismissed:     false,
	}

	for _, s := range All() {
		if s.CanDismissEarly() != expect[s] {
			t.Errorf("CanDismissEarly for %s should be %t",
				s,
				expect[s])
		}
	}
} // func TestCanDismissEarly(t *testing.T)
