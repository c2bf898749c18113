// /home/krylon/go/src/github.com/blicero/morpheus/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-15 19:21:36 krylon>

package database

import "github.com/blicero/morpheus/database/query"

// Terminal instance states are 7 (Dismissed) and 8 (Predismissed),
// cf. objects/alarmstate.
var dbQueries = map[query.ID]string{
	query.AlarmAdd: `
INSERT INTO alarm (label, hour, minute, days, enabled, vibrate, ringtone, delete_after_use, increasing_volume, uuid, changed)
VALUES            (    ?,    ?,      ?,    ?,       ?,       ?,        ?,                ?,                 ?,    ?,       ?)
`,
	query.AlarmDelete: "DELETE FROM alarm WHERE id = ?",
	query.AlarmGetAll: `
SELECT
    id,
    label,
    hour,
    minute,
    days,
    enabled,
    vibrate,
    ringtone,
    delete_after_use,
    increasing_volume,
    uuid,
    changed
FROM alarm
ORDER BY hour, minute, label
`,
	query.AlarmGetEnabled: `
SELECT
    id,
    label,
    hour,
    minute,
    days,
    vibrate,
    ringtone,
    delete_after_use,
    increasing_volume,
    uuid,
    changed
FROM alarm
WHERE enabled
ORDER BY hour, minute, label
`,
	query.AlarmGetByID: `
SELECT
    label,
    hour,
    minute,
    days,
    enabled,
    vibrate,
    ringtone,
    delete_after_use,
    increasing_volume,
    uuid,
    changed
FROM alarm
WHERE id = ?
`,
	query.AlarmSetEnabled: `
UPDATE alarm
SET enabled = ?, changed = ?
WHERE id = ?`,
	query.AlarmSetTime: `
UPDATE alarm
SET hour = ?, minute = ?, changed = ?
WHERE id = ?`,
	query.AlarmSetDays: `
UPDATE alarm
SET days = ?, changed = ?
WHERE id = ?`,
	query.AlarmSetLabel: `
UPDATE alarm
SET label = ?, changed = ?
WHERE id = ?`,
	query.AlarmSetRingtone: `
UPDATE alarm
SET ringtone = ?, changed = ?
WHERE id = ?`,
	query.AlarmSetOptions: `
UPDATE alarm
SET vibrate = ?, delete_after_use = ?, increasing_volume = ?, changed = ?
WHERE id = ?`,
	query.InstanceAdd: `
INSERT INTO instance (alarm_id, year, month, day, hour, minute, state, label, vibrate, ringtone, increasing_volume, uuid, changed)
VALUES               (       ?,    ?,     ?,   ?,    ?,      ?,     ?,     ?,       ?,        ?,                 ?,    ?,       ?)
`,
	query.InstanceDelete: "DELETE FROM instance WHERE id = ?",
	query.InstanceGetByID: `
SELECT
    alarm_id,
    year,
    month,
    day,
    hour,
    minute,
    state,
    label,
    vibrate,
    ringtone,
    increasing_volume,
    uuid,
    changed
FROM instance
WHERE id = ?
`,
	query.InstanceGetByAlarm: `
SELECT
    id,
    year,
    month,
    day,
    hour,
    minute,
    state,
    label,
    vibrate,
    ringtone,
    increasing_volume,
    uuid,
    changed
FROM instance
WHERE alarm_id = ? AND state NOT IN (7, 8)
`,
	query.InstanceGetPending: `
SELECT
    id,
    alarm_id,
    year,
    month,
    day,
    hour,
    minute,
    state,
    label,
    vibrate,
    ringtone,
    increasing_volume,
    uuid,
    changed
FROM instance
WHERE state NOT IN (7, 8)
ORDER BY year, month, day, hour, minute
`,
	query.InstanceSetState: `
UPDATE instance
SET state = ?, changed = ?
WHERE id = ?`,
	query.InstanceSetTime: `
UPDATE instance
SET year = ?, month = ?, day = ?, hour = ?, minute = ?, changed = ?
WHERE id = ?`,
}
