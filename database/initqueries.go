// /home/krylon/go/src/github.com/blicero/morpheus/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-15 18:40:19 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE alarm (
    id                INTEGER PRIMARY KEY,
    label             TEXT NOT NULL DEFAULT '',
    hour              INTEGER NOT NULL,
    minute            INTEGER NOT NULL,
    days              INTEGER NOT NULL DEFAULT 0,
    enabled           INTEGER NOT NULL DEFAULT 1,
    vibrate           INTEGER NOT NULL DEFAULT 0,
    ringtone          TEXT,
    delete_after_use  INTEGER NOT NULL DEFAULT 0,
    increasing_volume INTEGER NOT NULL DEFAULT 0,
    uuid              TEXT UNIQUE NOT NULL,
    changed           INTEGER NOT NULL,
    CHECK (hour BETWEEN 0 AND 23),
    CHECK (minute BETWEEN 0 AND 59),
    CHECK (days BETWEEN 0 AND 127)
)
`,
	"CREATE INDEX alarm_enabled_idx ON alarm (enabled)",
	`
CREATE TABLE instance (
    id                INTEGER PRIMARY KEY,
    alarm_id          INTEGER NOT NULL,
    year              INTEGER NOT NULL,
    month             INTEGER NOT NULL,
    day               INTEGER NOT NULL,
    hour              INTEGER NOT NULL,
    minute            INTEGER NOT NULL,
    state             INTEGER NOT NULL DEFAULT 0,
    label             TEXT NOT NULL DEFAULT '',
    vibrate           INTEGER NOT NULL DEFAULT 0,
    ringtone          TEXT,
    increasing_volume INTEGER NOT NULL DEFAULT 0,
    uuid              TEXT UNIQUE NOT NULL,
    changed           INTEGER NOT NULL,
    FOREIGN KEY (alarm_id) REFERENCES alarm (id)
        ON DELETE CASCADE
        ON UPDATE RESTRICT
)
`,
	"CREATE INDEX instance_alarm_idx ON instance (alarm_id)",
	"CREATE INDEX instance_state_idx ON instance (state)",
}
