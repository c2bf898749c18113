// /home/krylon/go/src/github.com/blicero/morpheus/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-10-02 18:55:31 krylon>

// Package logdomain provides symbolic constants to identify the
// various "areas" of the application that perform logging.
package logdomain

//go:generate stringer -type=ID

// ID represents a log domain.
type ID uint8

// These constants identify the log domains of the application.
const (
	Common ID = iota
	Backend
	Client
	Database
	DBPool
	DNSSD
)

// AllDomains returns a slice of all log domains.
func AllDomains() []ID {
	return []ID{
		Common,
		Backend,
		Client,
		Database,
		DBPool,
		DNSSD,
	}
} // func AllDomains() []ID
