// /home/krylon/go/src/github.com/blicero/morpheus/objects/01_weekdays_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-12 18:20:46 krylon>

package objects

import (
	"math/bits"
	"testing"
	"time"
)

var allWeekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

func TestBitfieldRoundTrip(t *testing.T) {
	for mask := uint8(0); mask <= 127; mask++ {
		var (
			err error
			w   Weekdays
		)

		if w, err = WeekdaysFromBitfield(mask); err != nil {
			t.Fatalf("Cannot create Weekdays from mask %d: %s",
				mask,
				err.Error())
		} else if w.Bitfield() != mask {
			t.Errorf("Round trip of mask %d yielded %d",
				mask,
				w.Bitfield())
		} else if w.Count() != bits.OnesCount8(mask) {
			t.Errorf("Count for mask %d is %d, expected %d",
				mask,
				w.Count(),
				bits.OnesCount8(mask))
		}
	}

	if _, err := WeekdaysFromBitfield(203); err == nil {
		t.Error("Creating Weekdays from mask 203 should have failed")
	}
} // func TestBitfieldRoundTrip(t *testing.T)

func TestDistanceToNext(t *testing.T) {
	for mask := uint8(1); mask <= 127; mask++ {
		var w, _ = WeekdaysFromBitfield(mask)

		for _, d := range allWeekdays {
			var dist = w.DistanceToNext(d)

			if dist < 0 || dist > 6 {
				t.Errorf("Mask %d, day %s: distance %d is out of range",
					mask,
					d,
					dist)
			} else if !w.On(time.Weekday((int(d) + dist) % 7)) {
				t.Errorf("Mask %d, day %s: day at distance %d is not set",
					mask,
					d,
					dist)
			}
		}
	}

	var empty Weekdays

	for _, d := range allWeekdays {
		if dist := empty.DistanceToNext(d); dist != -1 {
			t.Errorf("Empty Weekdays should yield distance -1, got %d",
				dist)
		}
	}
} // func TestDistanceToNext(t *testing.T)

func TestDistanceToPrev(t *testing.T) {
	for mask := uint8(1); mask <= 127; mask++ {
		var w, _ = WeekdaysFromBitfield(mask)

		for _, d := range allWeekdays {
			var dist = w.DistanceToPrev(d)

			if dist < 1 || dist > 7 {
				t.Errorf("Mask %d, day %s: distance %d is out of range",
					mask,
					d,
					dist)
			} else if !w.On(time.Weekday((int(d) - dist + 14) % 7)) {
				t.Errorf("Mask %d, day %s: day at distance -%d is not set",
					mask,
					d,
					dist)
			}
		}
	}

	var empty Weekdays

	for _, d := range allWeekdays {
		if dist := empty.DistanceToPrev(d); dist != -1 {
			t.Errorf("Empty Weekdays should yield distance -1, got %d",
				dist)
		}
	}
} // func TestDistanceToPrev(t *testing.T)

// For a single set day, walking forward and walking backward must both
// arrive at that one day, no matter where the walk starts.
func TestSingleDayCycle(t *testing.T) {
	for bit := 0; bit < 7; bit++ {
		var w, _ = WeekdaysFromBitfield(1 << bit)

		for _, d := range allWeekdays {
			var (
				c    = (int(d) + 6) % 7
				next = w.DistanceToNext(d)
				prev = w.DistanceToPrev(d)
			)

			if (c+next)%7 != bit {
				t.Errorf("Bit %d, day %s: forward walk of %d days lands on %d",
					bit,
					d,
					next,
					(c+next)%7)
			}

			if (c-prev+14)%7 != bit {
				t.Errorf("Bit %d, day %s: backward walk of %d days lands on %d",
					bit,
					d,
					prev,
					(c-prev+14)%7)
			}

			if c == bit && prev != 7 {
				t.Errorf("Bit %d, day %s: backward walk from the set day itself should take 7 days, took %d",
					bit,
					d,
					prev)
			}
		}
	}
} // func TestSingleDayCycle(t *testing.T)

func TestDisplayString(t *testing.T) {
	type testCase struct {
		mask   uint8
		first  time.Weekday
		long   bool
		expect string
	}

	var cases = []testCase{
		testCase{mask: 127, first: time.Monday, expect: EveryDay},
		testCase{mask: 127, first: time.Sunday, long: true, expect: EveryDay},
		testCase{mask: 0, first: time.Monday, expect: ""},
		testCase{mask: 0x15, first: time.Monday, expect: "Mon, Wed, Fri"},
		testCase{mask: 0x15, first: time.Sunday, expect: "Mon, Wed, Fri"},
		testCase{mask: 0x15, first: time.Monday, long: true, expect: "Monday, Wednesday, Friday"},
		testCase{mask: 0x41, first: time.Monday, expect: "Mon, Sun"},
		testCase{mask: 0x41, first: time.Sunday, expect: "Sun, Mon"},
	}

	for _, c := range cases {
		var w, _ = WeekdaysFromBitfield(c.mask)

		if s := w.DisplayString(c.first, c.long); s != c.expect {
			t.Errorf("DisplayString for mask %d starting %s: expected %q, got %q",
				c.mask,
				c.first,
				c.expect,
				s)
		}
	}
} // func TestDisplayString(t *testing.T)

func TestSet(t *testing.T) {
	var w Weekdays

	w.Set(time.Wednesday, true)
	w.Set(time.Sunday, true)

	if !w.On(time.Wednesday) || !w.On(time.Sunday) {
		t.Errorf("Days that were just set are not set: %#v", w)
	} else if w.Bitfield() != 0x44 {
		t.Errorf("Unexpected bitmask %d (expected %d)",
			w.Bitfield(),
			0x44)
	}

	w.Set(time.Wednesday, false)

	if w.On(time.Wednesday) {
		t.Error("Wednesday should be cleared again")
	} else if !w.IsRepeating() {
		t.Error("Weekdays with Sunday set should count as repeating")
	}
} // func TestSet(t *testing.T)
