// /home/krylon/go/src/github.com/blicero/morpheus/backend/helpers.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-18 21:48:33 krylon>

package backend

import (
	"fmt"
	"time"

	"github.com/grandcat/zeroconf"
)

// service is a DNS-SD record of a fellow instance on the local
// network, plus the time it stops being trustworthy.
type service struct {
	entry   *zeroconf.ServiceEntry
	expires time.Time
}

func mkService(entry *zeroconf.ServiceEntry) *service {
	return &service{
		entry:   entry,
		expires: time.Now().Add(time.Second * srvTTL * 2),
	}
} // func mkService(entry *zeroconf.ServiceEntry) *service

func (s *service) isExpired() bool {
	return s.expires.Before(time.Now())
} // func (s *service) isExpired() bool

func rrStr(rr *zeroconf.ServiceEntry) string {
	return fmt.Sprintf("%s:%d",
		rr.HostName,
		rr.Port)
} // func rrStr(rr *zeroconf.ServiceEntry) string
