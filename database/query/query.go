// /home/krylon/go/src/github.com/blicero/morpheus/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-15 18:02:11 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

type ID uint8

const (
	AlarmAdd ID = iota
	AlarmDelete
	AlarmGetAll
	AlarmGetEnabled
	AlarmGetByID
	AlarmSetEnabled
	AlarmSetTime
	AlarmSetDays
	AlarmSetLabel
	AlarmSetRingtone
	AlarmSetOptions
	InstanceAdd
	InstanceDelete
	InstanceGetByID
	InstanceGetByAlarm
	InstanceGetPending
	InstanceSetState
	InstanceSetTime
)
