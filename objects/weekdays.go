// /home/krylon/go/src/github.com/blicero/morpheus/objects/weekdays.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-12 17:36:08 krylon>

//go:generate ffjson weekdays.go

package objects

import (
	"fmt"
	"strings"
	"time"
)

// Weekdays is the set of weekdays a repeating Alarm is set to go off on.
// Index 0 is Monday, regardless of what day a given locale considers
// the first day of the week. Display order is strictly the concern of
// DisplayString.
type Weekdays [7]bool

// Go's time package has a type Weekday, too, can I use that somehow?
// ... Turns out it's not super useful to us because it insists on
// Sunday being the first days of the week, whereas in Europe it's
// considered the last day of the week. So no.

// Bitfield returns an unsigned integer using the least significant bits
// as flags from right to left, i.e. the least significant bit is Monday,
// the second bit from the right is Tuesday, etc. The most significant
// bit is always zero.
func (w *Weekdays) Bitfield() uint8 {
	var days uint8 = b2i(w[0]) |
		b2i(w[1])<<1 |
		b2i(w[2])<<2 |
		b2i(w[3])<<3 |
		b2i(w[4])<<4 |
		b2i(w[5])<<5 |
		b2i(w[6])<<6

	return days
} // func (w *Weekdays) Bitfield() uint8

// WeekdaysFromBitfield is the inverse of Bitfield. It returns an error
// if the given mask has its most significant bit set.
func WeekdaysFromBitfield(mask uint8) (Weekdays, error) {
	var w Weekdays

	if mask > 127 {
		return w, fmt.Errorf("Invalid weekday mask %d (must be 0-127)",
			mask)
	}

	for i := 0; i < 7; i++ {
		w[i] = mask&(1<<i) != 0
	}

	return w, nil
} // func WeekdaysFromBitfield(mask uint8) (Weekdays, error)

// Count returns the number of weekdays the Alarm is set to go off.
func (w *Weekdays) Count() int {
	var cnt int

	for _, b := range w {
		if b {
			cnt++
		}
	}

	return cnt
} // func (w *Weekdays) Count() int

// IsRepeating returns true if at least one weekday is set.
func (w *Weekdays) IsRepeating() bool {
	return w.Count() > 0
} // func (w *Weekdays) IsRepeating() bool

// On returns the flag value for the given weekday.
func (w *Weekdays) On(d time.Weekday) bool {
	return w[(d+6)%7]
} // func (w *Weekdays) On(d time.Weekday) bool

// Set sets or clears the flag for the given weekday.
func (w *Weekdays) Set(d time.Weekday, flag bool) {
	w[(d+6)%7] = flag
} // func (w *Weekdays) Set(d time.Weekday, flag bool)

// DistanceToNext returns the smallest number of days - possibly zero -
// one has to move forward from the given weekday to arrive at a day
// that is set. If no day is set at all, it returns -1.
func (w *Weekdays) DistanceToNext(d time.Weekday) int {
	if !w.IsRepeating() {
		return -1
	}

	var c = (int(d) + 6) % 7

	for i := 0; i < 7; i++ {
		if w[(c+i)%7] {
			return i
		}
	}

	return -1
} // func (w *Weekdays) DistanceToNext(d time.Weekday) int

// DistanceToPrev returns the smallest number of days one has to move
// backward from the given weekday to arrive at a day that is set.
// The search deliberately starts at yesterday, so the result is in the
// range of 1 through 7; that way "today" is never reported as the
// previous occurrence of a day that has not come to pass yet.
// If no day is set at all, it returns -1.
func (w *Weekdays) DistanceToPrev(d time.Weekday) int {
	if !w.IsRepeating() {
		return -1
	}

	var c = (int(d) + 6) % 7

	for i := 1; i <= 7; i++ {
		if w[(c-i+14)%7] {
			return i
		}
	}

	return -1
} // func (w *Weekdays) DistanceToPrev(d time.Weekday) int

var wDayShort = [7]string{
	"Mon",
	"Tue",
	"Wed",
	"Thu",
	"Fri",
	"Sat",
	"Sun",
}

var wDayLong = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// EveryDay is what DisplayString returns when all seven days are set.
const EveryDay = "every day"

// DisplayString renders the set days in display order, beginning at
// the given first day of the week. If all seven days are set, it
// returns EveryDay; if none are set, the empty string (the caller gets
// to decide how to render a one-shot Alarm).
func (w *Weekdays) DisplayString(first time.Weekday, long bool) string {
	switch w.Count() {
	case 7:
		return EveryDay
	case 0:
		return ""
	}

	var (
		c     = (int(first) + 6) % 7
		names = &wDayShort
		days  = make([]string, 0, 7)
	)

	if long {
		names = &wDayLong
	}

	for i := 0; i < 7; i++ {
		var idx = (c + i) % 7
		if w[idx] {
			days = append(days, names[idx])
		}
	}

	return strings.Join(days, ", ")
} // func (w *Weekdays) DisplayString(first time.Weekday, long bool) string

func (w *Weekdays) String() string {
	return w.DisplayString(time.Monday, false)
} // func (w *Weekdays) String() string

func b2i(b bool) uint8 {
	if b {
		return 1
	}
	return 0
} // func b2i(b bool) uint8
