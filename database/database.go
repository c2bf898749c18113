// /home/krylon/go/src/github.com/blicero/morpheus/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-16 21:38:54 krylon>

// Package database provides persistence for Alarms and their
// AlarmInstances.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/morpheus/common"
	"github.com/blicero/morpheus/database/query"
	"github.com/blicero/morpheus/logdomain"
	"github.com/blicero/morpheus/objects"
	"github.com/blicero/morpheus/objects/alarmstate"
	_ "github.com/mattn/go-sqlite3" // Import the database driver
)

// ErrTxInProgress indicates that an attempt was made to initiate a
// transaction while one is already in progress.
var ErrTxInProgress = errors.New("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction while none is active.
var ErrNoTxInProgress = errors.New("There is no transaction in progress")

// If a query returns an error and the error text is matched by this
// regex, we consider the error transient and try again after a short
// delay.
var retryPat = regexp.MustCompile("(?i)database is (?:locked|busy)")

// worthARetry returns true if an error returned from the database
// is matched by the retryPat regex.
func worthARetry(e error) bool {
	return retryPat.MatchString(e.Error())
} // func worthARetry(e error) bool

// retryDelay is the amount of time we wait before we repeat a database
// operation that failed due to a transient error.
const retryDelay = 25 * time.Millisecond

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

var (
	openLock sync.Mutex
	idCnt    int64
)

// Database wraps a connection to the SQLite database and the prepared
// statements defined on it.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens the Database at the given path. If the database does not
// exist yet, it is created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt, len(dbQueries)),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	} else if common.Debug {
		db.log.Printf("[DEBUG] Open database %s\n", path)
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=1&recursive_triggers=0",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Cannot check if database file %s exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Cannot open database at %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to remove database file %s: %s\n",
					path,
					e2.Error())
			}
			return nil, err
		}

		db.log.Printf("[INFO] Database at %s has been initialized.\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var (
		err error
		tx  *sql.Tx
	)

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin initialization transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot roll back failed initialization: %s\n",
					rbErr.Error())
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[ERROR] Cannot commit initialization transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database connection, discarding any prepared
// statements and rolling back a pending transaction, if any.
func (db *Database) Close() error {
	var err error

	if db.tx != nil {
		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[ERROR] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[ERROR] Cannot close statement %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[ERROR] Cannot close database: %s\n",
			err.Error())
		return err
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		err   error
		stmt  *sql.Stmt
		found bool
	)

	if stmt, found = db.queries[id]; found {
		return stmt, nil
	} else if _, found = dbQueries[id]; !found {
		return nil, fmt.Errorf("Unknown query %s", id)
	}

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(id query.ID) (*sql.Stmt, error)

// Begin starts an explicit transaction.
func (db *Database) Begin() error {
	var err error

	if db.tx != nil {
		return ErrTxInProgress
	}

BEGIN_TX:
	if db.tx, err = db.db.Begin(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto BEGIN_TX
		}

		db.log.Printf("[ERROR] Cannot start transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) Begin() error

// Commit commits the currently active transaction.
func (db *Database) Commit() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Commit(); err != nil {
		db.log.Printf("[ERROR] Cannot commit transaction: %s\n",
			err.Error())
		return err
	}

	db.tx = nil
	return nil
} // func (db *Database) Commit() error

// Rollback aborts the currently active transaction.
func (db *Database) Rollback() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Rollback(); err != nil {
		db.log.Printf("[ERROR] Cannot roll back transaction: %s\n",
			err.Error())
		return err
	}

	db.tx = nil
	return nil
} // func (db *Database) Rollback() error

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Alarm ////////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

// AlarmAdd adds a new Alarm to the database, filling in its ID.
func (db *Database) AlarmAdd(a *objects.Alarm) error {
	const qid query.ID = query.AlarmAdd
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if err = a.Validate(); err != nil {
		db.log.Printf("[ERROR] Refusing to add invalid Alarm %q: %s\n",
			a.Label,
			err.Error())
		return err
	} else if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Cannot commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Cannot roll back ad-hoc transaction: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

	var (
		res      sql.Result
		ringtone = ringtoneValue(a.Ringtone)
	)

EXEC_QUERY:
	if res, err = stmt.Exec(
		a.Label,
		a.Hour,
		a.Minute,
		a.Days.Bitfield(),
		a.Enabled,
		a.Vibrate,
		ringtone,
		a.DeleteAfterUse,
		a.IncreasingVolume,
		a.UUID,
		a.Changed.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot add Alarm %q to database: %s\n",
			a.Label,
			err.Error())
		return err
	}

	var id int64

	if id, err = res.LastInsertId(); err != nil {
		db.log.Printf("[ERROR] Cannot get ID of new Alarm %q: %s\n",
			a.Label,
			err.Error())
		return err
	}

	status = true
	a.ID = id
	return nil
} // func (db *Database) AlarmAdd(a *objects.Alarm) error

// AlarmDelete removes the given Alarm from the database. Its instances
// go with it, courtesy of the foreign key constraint.
func (db *Database) AlarmDelete(a *objects.Alarm) error {
	const qid query.ID = query.AlarmDelete
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Cannot commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Cannot roll back ad-hoc transaction: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(a.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot delete Alarm %d (%q): %s\n",
			a.ID,
			a.Label,
			err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) AlarmDelete(a *objects.Alarm) error

// AlarmGetAll loads all Alarms from the database.
func (db *Database) AlarmGetAll() ([]objects.Alarm, error) {
	const qid query.ID = query.AlarmGetAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load Alarms: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var alarms = make([]objects.Alarm, 0, 8)

	for rows.Next() {
		var (
			a        objects.Alarm
			mask     uint8
			ringtone *string
			stamp    int64
		)

		if err = rows.Scan(
			&a.ID,
			&a.Label,
			&a.Hour,
			&a.Minute,
			&mask,
			&a.Enabled,
			&a.Vibrate,
			&ringtone,
			&a.DeleteAfterUse,
			&a.IncreasingVolume,
			&a.UUID,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		} else if a.Days, err = objects.WeekdaysFromBitfield(mask); err != nil {
			db.log.Printf("[CANTHAPPEN] Invalid weekday mask in database: %s\n",
				err.Error())
			return nil, err
		}

		if ringtone != nil {
			a.Ringtone = *ringtone
		}

		a.Changed = time.Unix(stamp, 0)
		alarms = append(alarms, a)
	}

	return alarms, nil
} // func (db *Database) AlarmGetAll() ([]objects.Alarm, error)

// AlarmGetEnabled loads all enabled Alarms from the database.
func (db *Database) AlarmGetEnabled() ([]objects.Alarm, error) {
	const qid query.ID = query.AlarmGetEnabled
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load enabled Alarms: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var alarms = make([]objects.Alarm, 0, 8)

	for rows.Next() {
		var (
			a        objects.Alarm
			mask     uint8
			ringtone *string
			stamp    int64
		)

		a.Enabled = true

		if err = rows.Scan(
			&a.ID,
			&a.Label,
			&a.Hour,
			&a.Minute,
			&mask,
			&a.Vibrate,
			&ringtone,
			&a.DeleteAfterUse,
			&a.IncreasingVolume,
			&a.UUID,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		} else if a.Days, err = objects.WeekdaysFromBitfield(mask); err != nil {
			db.log.Printf("[CANTHAPPEN] Invalid weekday mask in database: %s\n",
				err.Error())
			return nil, err
		}

		if ringtone != nil {
			a.Ringtone = *ringtone
		}

		a.Changed = time.Unix(stamp, 0)
		alarms = append(alarms, a)
	}

	return alarms, nil
} // func (db *Database) AlarmGetEnabled() ([]objects.Alarm, error)

// AlarmGetByID looks up an Alarm by its ID. If no such Alarm exists,
// it returns nil, but no error.
func (db *Database) AlarmGetByID(id int64) (*objects.Alarm, error) {
	const qid query.ID = query.AlarmGetByID
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot look up Alarm %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			a        = objects.Alarm{ID: id}
			mask     uint8
			ringtone *string
			stamp    int64
		)

		if err = rows.Scan(
			&a.Label,
			&a.Hour,
			&a.Minute,
			&mask,
			&a.Enabled,
			&a.Vibrate,
			&ringtone,
			&a.DeleteAfterUse,
			&a.IncreasingVolume,
			&a.UUID,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		} else if a.Days, err = objects.WeekdaysFromBitfield(mask); err != nil {
			db.log.Printf("[CANTHAPPEN] Invalid weekday mask in database: %s\n",
				err.Error())
			return nil, err
		}

		if ringtone != nil {
			a.Ringtone = *ringtone
		}

		a.Changed = time.Unix(stamp, 0)
		return &a, nil
	}

	return nil, nil
} // func (db *Database) AlarmGetByID(id int64) (*objects.Alarm, error)

// AlarmSetEnabled sets or clears the given Alarm's Enabled flag.
func (db *Database) AlarmSetEnabled(a *objects.Alarm, enabled bool) error {
	var err error

	if err = db.alarmUpdate(query.AlarmSetEnabled, a, enabled); err != nil {
		return err
	}

	a.Enabled = enabled
	return nil
} // func (db *Database) AlarmSetEnabled(a *objects.Alarm, enabled bool) error

// AlarmSetTime updates the given Alarm's time of day. Out-of-range
// values are rejected, not clamped.
func (db *Database) AlarmSetTime(a *objects.Alarm, hour, minute int) error {
	var probe = objects.Alarm{Hour: hour, Minute: minute}

	if err := probe.Validate(); err != nil {
		db.log.Printf("[ERROR] Refusing to set invalid time on Alarm %d: %s\n",
			a.ID,
			err.Error())
		return err
	} else if err = db.alarmUpdate(query.AlarmSetTime, a, hour, minute); err != nil {
		return err
	}

	a.Hour = hour
	a.Minute = minute
	return nil
} // func (db *Database) AlarmSetTime(a *objects.Alarm, hour, minute int) error

// AlarmSetDays updates the given Alarm's weekday set.
func (db *Database) AlarmSetDays(a *objects.Alarm, days objects.Weekdays) error {
	var err error

	if err = db.alarmUpdate(query.AlarmSetDays, a, days.Bitfield()); err != nil {
		return err
	}

	a.Days = days
	return nil
} // func (db *Database) AlarmSetDays(a *objects.Alarm, days objects.Weekdays) error

// AlarmSetLabel updates the given Alarm's label.
func (db *Database) AlarmSetLabel(a *objects.Alarm, label string) error {
	var err error

	if err = db.alarmUpdate(query.AlarmSetLabel, a, label); err != nil {
		return err
	}

	a.Label = label
	return nil
} // func (db *Database) AlarmSetLabel(a *objects.Alarm, label string) error

// AlarmSetRingtone updates the given Alarm's ringtone.
func (db *Database) AlarmSetRingtone(a *objects.Alarm, ringtone string) error {
	var err error

	if err = db.alarmUpdate(query.AlarmSetRingtone, a, ringtoneValue(ringtone)); err != nil {
		return err
	}

	a.Ringtone = ringtone
	return nil
} // func (db *Database) AlarmSetRingtone(a *objects.Alarm, ringtone string) error

// AlarmSetOptions updates the given Alarm's Vibrate, DeleteAfterUse
// and IncreasingVolume flags in one go.
func (db *Database) AlarmSetOptions(a *objects.Alarm, vibrate, deleteAfterUse, increasingVolume bool) error {
	var err error

	if err = db.alarmUpdate(query.AlarmSetOptions, a, vibrate, deleteAfterUse, increasingVolume); err != nil {
		return err
	}

	a.Vibrate = vibrate
	a.DeleteAfterUse = deleteAfterUse
	a.IncreasingVolume = increasingVolume
	return nil
} // func (db *Database) AlarmSetOptions(a *objects.Alarm, vibrate, deleteAfterUse, increasingVolume bool) error

// alarmUpdate runs one of the alarm UPDATE queries, which all share
// the same shape: the new values, the changed stamp, the alarm ID.
func (db *Database) alarmUpdate(qid query.ID, a *objects.Alarm, values ...any) error {
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Cannot commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Cannot roll back ad-hoc transaction: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

	var (
		now  = time.Now()
		args = make([]any, 0, len(values)+2)
	)

	args = append(args, values...)
	args = append(args, now.Unix(), a.ID)

EXEC_QUERY:
	if _, err = stmt.Exec(args...); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot update Alarm %d (%s): %s\n",
			a.ID,
			qid,
			err.Error())
		return err
	}

	status = true
	a.Changed = now
	return nil
} // func (db *Database) alarmUpdate(qid query.ID, a *objects.Alarm, values ...any) error

//////////////////////////////////////////////////////////////////////////////////////////////////
/// AlarmInstance ////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

// InstanceAdd adds a new AlarmInstance to the database, filling in its ID.
func (db *Database) InstanceAdd(inst *objects.AlarmInstance) error {
	const qid query.ID = query.InstanceAdd
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Cannot commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Cannot roll back ad-hoc transaction: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

	var (
		res      sql.Result
		ringtone = ringtoneValue(inst.Ringtone)
	)

EXEC_QUERY:
	if res, err = stmt.Exec(
		inst.AlarmID,
		inst.Year,
		inst.Month,
		inst.Day,
		inst.Hour,
		inst.Minute,
		inst.State,
		inst.Label,
		inst.Vibrate,
		ringtone,
		inst.IncreasingVolume,
		inst.UUID,
		inst.Changed.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot add instance for Alarm %d to database: %s\n",
			inst.AlarmID,
			err.Error())
		return err
	}

	var id int64

	if id, err = res.LastInsertId(); err != nil {
		db.log.Printf("[ERROR] Cannot get ID of new instance for Alarm %d: %s\n",
			inst.AlarmID,
			err.Error())
		return err
	}

	status = true
	inst.ID = id
	return nil
} // func (db *Database) InstanceAdd(inst *objects.AlarmInstance) error

// InstanceDelete removes the given AlarmInstance from the database.
func (db *Database) InstanceDelete(inst *objects.AlarmInstance) error {
	const qid query.ID = query.InstanceDelete
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Cannot commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Cannot roll back ad-hoc transaction: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(inst.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot delete instance %d: %s\n",
			inst.ID,
			err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) InstanceDelete(inst *objects.AlarmInstance) error

// InstanceGetByID looks up an AlarmInstance by its ID. If no such
// instance exists, it returns nil, but no error.
func (db *Database) InstanceGetByID(id int64) (*objects.AlarmInstance, error) {
	const qid query.ID = query.InstanceGetByID
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot look up instance %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			inst     = objects.AlarmInstance{ID: id}
			ringtone *string
			stamp    int64
		)

		if err = rows.Scan(
			&inst.AlarmID,
			&inst.Year,
			&inst.Month,
			&inst.Day,
			&inst.Hour,
			&inst.Minute,
			&inst.State,
			&inst.Label,
			&inst.Vibrate,
			&ringtone,
			&inst.IncreasingVolume,
			&inst.UUID,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		if ringtone != nil {
			inst.Ringtone = *ringtone
		}

		inst.Changed = time.Unix(stamp, 0)
		return &inst, nil
	}

	return nil, nil
} // func (db *Database) InstanceGetByID(id int64) (*objects.AlarmInstance, error)

// InstanceGetByAlarm returns the given Alarm's live instance, i.e. the
// one that has not reached a terminal state yet. For any Alarm there
// is at most one of those at a time. If there is none, it returns nil,
// but no error.
func (db *Database) InstanceGetByAlarm(a *objects.Alarm) (*objects.AlarmInstance, error) {
	const qid query.ID = query.InstanceGetByAlarm
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(a.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot look up live instance of Alarm %d: %s\n",
			a.ID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			inst     = objects.AlarmInstance{AlarmID: a.ID}
			ringtone *string
			stamp    int64
		)

		if err = rows.Scan(
			&inst.ID,
			&inst.Year,
			&inst.Month,
			&inst.Day,
			&inst.Hour,
			&inst.Minute,
			&inst.State,
			&inst.Label,
			&inst.Vibrate,
			&ringtone,
			&inst.IncreasingVolume,
			&inst.UUID,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		if ringtone != nil {
			inst.Ringtone = *ringtone
		}

		inst.Changed = time.Unix(stamp, 0)
		return &inst, nil
	}

	return nil, nil
} // func (db *Database) InstanceGetByAlarm(a *objects.Alarm) (*objects.AlarmInstance, error)

// InstanceGetPending loads all instances that have not reached a
// terminal state, ordered by fire time.
func (db *Database) InstanceGetPending() ([]objects.AlarmInstance, error) {
	const qid query.ID = query.InstanceGetPending
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load pending instances: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var instances = make([]objects.AlarmInstance, 0, 8)

	for rows.Next() {
		var (
			inst     objects.AlarmInstance
			ringtone *string
			stamp    int64
		)

		if err = rows.Scan(
			&inst.ID,
			&inst.AlarmID,
			&inst.Year,
			&inst.Month,
			&inst.Day,
			&inst.Hour,
			&inst.Minute,
			&inst.State,
			&inst.Label,
			&inst.Vibrate,
			&ringtone,
			&inst.IncreasingVolume,
			&inst.UUID,
			&stamp); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		if ringtone != nil {
			inst.Ringtone = *ringtone
		}

		inst.Changed = time.Unix(stamp, 0)
		instances = append(instances, inst)
	}

	return instances, nil
} // func (db *Database) InstanceGetPending() ([]objects.AlarmInstance, error)

// InstanceSetState attempts to move the given instance to the given
// state. The transition is checked before the database is touched; an
// illegal one is rejected without a trace in the database.
func (db *Database) InstanceSetState(inst *objects.AlarmInstance, st alarmstate.ID) error {
	const qid query.ID = query.InstanceSetState
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if err = alarmstate.Transition(inst.State, st); err != nil {
		db.log.Printf("[ERROR] Instance %d: %s\n",
			inst.ID,
			err.Error())
		return err
	} else if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Cannot commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Cannot roll back ad-hoc transaction: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

	var now = time.Now()

EXEC_QUERY:
	if _, err = stmt.Exec(st, now.Unix(), inst.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot set state of instance %d to %s: %s\n",
			inst.ID,
			st,
			err.Error())
		return err
	}

	status = true
	inst.State = st
	inst.Changed = now
	return nil
} // func (db *Database) InstanceSetState(inst *objects.AlarmInstance, st alarmstate.ID) error

// InstanceSetTime rewrites the given instance's fire time. Used when
// snoozing.
func (db *Database) InstanceSetTime(inst *objects.AlarmInstance, t time.Time) error {
	const qid query.ID = query.InstanceSetTime
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot start ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Cannot commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Cannot roll back ad-hoc transaction: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

	var now = time.Now()

EXEC_QUERY:
	if _, err = stmt.Exec(
		t.Year(),
		int(t.Month()),
		t.Day(),
		t.Hour(),
		t.Minute(),
		now.Unix(),
		inst.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot set fire time of instance %d: %s\n",
			inst.ID,
			err.Error())
		return err
	}

	status = true
	inst.SetFireTime(t)
	return nil
} // func (db *Database) InstanceSetTime(inst *objects.AlarmInstance, t time.Time) error

// ringtoneValue maps the empty string - the system default sound - to
// NULL for storage.
func ringtoneValue(r string) *string {
	if r == "" {
		return nil
	}

	return &r
} // func ringtoneValue(r string) *string
