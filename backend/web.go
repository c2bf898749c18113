// /home/krylon/go/src/github.com/blicero/morpheus/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-19 17:50:12 krylon>

package backend

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blicero/morpheus/database"
	"github.com/blicero/morpheus/objects"
	"github.com/blicero/morpheus/objects/alarmstate"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
)

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/alarm/add", d.handleAlarmAdd)
	d.router.HandleFunc("/alarm/all", d.handleAlarmGetAll)
	d.router.HandleFunc("/alarm/pending", d.handleInstanceGetPending)
	d.router.HandleFunc("/alarm/{id:(?:\\d+)}/update", d.handleAlarmUpdate)
	d.router.HandleFunc("/alarm/{id:(?:\\d+)}/enable", d.handleAlarmEnable)
	d.router.HandleFunc("/alarm/{id:(?:\\d+)}/disable", d.handleAlarmDisable)
	d.router.HandleFunc("/alarm/{id:(?:\\d+)}/delete", d.handleAlarmDelete)
	d.router.HandleFunc("/instance/{id:(?:\\d+)}/snooze", d.handleInstanceSnooze)
	d.router.HandleFunc("/instance/{id:(?:\\d+)}/dismiss", d.handleInstanceDismiss)
	d.router.HandleFunc("/instance/{id:(?:\\d+)}", d.handleInstanceGetByID)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web interface is going online at %s\n", d.web.Addr)
	http.Handle("/", d.router)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

func (d *Daemon) handleAlarmAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err                      error
		db                       *database.Database
		a                        *objects.Alarm
		days                     objects.Weekdays
		hour, minute, mask       int64
		hourStr, minStr, maskStr string
		msg                      string
		response                 = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	hourStr = r.PostFormValue("hour")
	minStr = r.PostFormValue("minute")
	maskStr = r.PostFormValue("days")

	if hour, err = strconv.ParseInt(hourStr, 10, 8); err != nil {
		msg = fmt.Sprintf("Cannot parse hour %q: %s",
			hourStr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if minute, err = strconv.ParseInt(minStr, 10, 8); err != nil {
		msg = fmt.Sprintf("Cannot parse minute %q: %s",
			minStr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	if maskStr != "" {
		if mask, err = strconv.ParseInt(maskStr, 10, 16); err != nil {
			msg = fmt.Sprintf("Cannot parse day mask %q: %s",
				maskStr,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		} else if mask < 0 || mask > 127 {
			msg = fmt.Sprintf("Day mask %d is out of range", mask)
			d.log.Printf("[ERROR] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		} else if days, err = objects.WeekdaysFromBitfield(uint8(mask)); err != nil {
			msg = fmt.Sprintf("Invalid day mask %d: %s",
				mask,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		}
	}

	if a, err = objects.NewAlarm(r.PostFormValue("label"), int(hour), int(minute), days); err != nil {
		msg = fmt.Sprintf("Cannot create Alarm: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	a.Vibrate = r.PostFormValue("vibrate") == "true"
	a.DeleteAfterUse = r.PostFormValue("delete_after_use") == "true"
	a.IncreasingVolume = r.PostFormValue("increasing_volume") == "true"
	a.Ringtone = r.PostFormValue("ringtone")

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.AlarmAdd(a); err != nil {
		msg = fmt.Sprintf("Cannot add Alarm %q to database: %s",
			a.Label,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = a.UUID
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleAlarmAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err    error
		db     *database.Database
		alarms []objects.Alarm
		buf    []byte
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if alarms, err = db.AlarmGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Alarms: %s\n",
			err.Error())

	} else if buf, err = ffjson.Marshal(alarms); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Alarm list: %s\n",
			err.Error())

	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleAlarmGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleInstanceGetPending(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		db        *database.Database
		instances []objects.AlarmInstance
		buf       []byte
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if instances, err = db.InstanceGetPending(); err != nil {
		d.log.Printf("[ERROR] Cannot load pending instances: %s\n",
			err.Error())

	} else if buf, err = ffjson.Marshal(instances); err != nil {
		d.log.Printf("[ERROR] Cannot serialize instance list: %s\n",
			err.Error())

	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleInstanceGetPending(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmUpdate(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err                error
		db                 *database.Database
		id                 int64
		hour, minute, mask int64
		days               objects.Weekdays
		idstr, msg         string
		labelStr, maskStr  string
		hourStr, minStr    string
		ringStr            string
		a                  *objects.Alarm
		res                = objects.Response{ID: d.getID()}
		txStatus           bool
	)

	vars := mux.Vars(r)

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	idstr = vars["id"]
	labelStr = r.FormValue("label")
	hourStr = r.FormValue("hour")
	minStr = r.FormValue("minute")
	maskStr = r.FormValue("days")
	ringStr = r.FormValue("ringtone")

	db = d.pool.Get()
	defer d.pool.Put(db)

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if hour, err = strconv.ParseInt(hourStr, 10, 8); err != nil {
		msg = fmt.Sprintf("Cannot parse hour %q: %s",
			hourStr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if minute, err = strconv.ParseInt(minStr, 10, 8); err != nil {
		msg = fmt.Sprintf("Cannot parse minute %q: %s",
			minStr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if mask, err = strconv.ParseInt(maskStr, 10, 16); err != nil {
		msg = fmt.Sprintf("Cannot parse day mask %q: %s",
			maskStr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if days, err = objects.WeekdaysFromBitfield(uint8(mask)); err != nil {
		msg = fmt.Sprintf("Invalid day mask %d: %s",
			mask,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	if a, err = db.AlarmGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to look up Alarm #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if a == nil {
		msg = fmt.Sprintf("Could not find Alarm #%d in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.Begin(); err != nil {
		msg = fmt.Sprintf("Error starting transaction: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	if a.Hour != int(hour) || a.Minute != int(minute) {
		if err = db.AlarmSetTime(a, int(hour), int(minute)); err != nil {
			msg = fmt.Sprintf("Error updating time of Alarm %d: %s",
				a.ID,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			goto SEND_RESPONSE
		}
	}

	if a.Days.Bitfield() != uint8(mask) {
		if err = db.AlarmSetDays(a, days); err != nil {
			msg = fmt.Sprintf("Error updating days of Alarm %d: %s",
				a.ID,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			goto SEND_RESPONSE
		}
	}

	if a.Label != labelStr {
		if err = db.AlarmSetLabel(a, labelStr); err != nil {
			msg = fmt.Sprintf("Failed to update label of Alarm %d from %q to %q: %s",
				a.ID,
				a.Label,
				labelStr,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			goto SEND_RESPONSE
		}
	}

	if a.Ringtone != ringStr {
		if err = db.AlarmSetRingtone(a, ringStr); err != nil {
			msg = fmt.Sprintf("Failed to update ringtone of Alarm %d: %s",
				a.ID,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			goto SEND_RESPONSE
		}
	}

	res.Status = true
	res.Message = "OK"
	txStatus = true

SEND_RESPONSE:
	if txStatus {
		if err = db.Commit(); err != nil {
			msg = fmt.Sprintf("Error committing transaction: %s",
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			res.Status = false
		}
	} else if db != nil {
		if err = db.Rollback(); err != nil {
			d.log.Printf("[ERROR] Failed to rollback transaction: %s\n",
				err.Error())
		}
	}

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleAlarmUpdate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmEnable(w http.ResponseWriter, r *http.Request) {
	d.handleAlarmSetEnabled(w, r, true)
} // func (d *Daemon) handleAlarmEnable(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmDisable(w http.ResponseWriter, r *http.Request) {
	d.handleAlarmSetEnabled(w, r, false)
} // func (d *Daemon) handleAlarmDisable(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmSetEnabled(w http.ResponseWriter, r *http.Request, flag bool) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		vars       map[string]string
		idstr, msg string
		id         int64
		db         *database.Database
		a          *objects.Alarm
		inst       *objects.AlarmInstance
		res        = objects.Response{ID: d.getID()}
	)

	vars = mux.Vars(r)

	idstr = vars["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if a, err = db.AlarmGetByID(id); err != nil {
		msg = fmt.Sprintf("Cannot look up Alarm by ID %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if a == nil {
		msg = fmt.Sprintf("Did not find Alarm %d in database", id)
		d.log.Printf("[INFO] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.AlarmSetEnabled(a, flag); err != nil {
		msg = fmt.Sprintf("Cannot set enabled flag of Alarm %d (%q): %s",
			id,
			a.Label,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	// Disabling an Alarm withdraws its live instance, if any.
	if !flag {
		if inst, err = db.InstanceGetByAlarm(a); err != nil {
			msg = fmt.Sprintf("Cannot look up live instance of Alarm %d: %s",
				id,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			goto SEND_RESPONSE
		} else if inst != nil {
			if err = db.InstanceDelete(inst); err != nil {
				msg = fmt.Sprintf("Cannot withdraw instance %d of Alarm %d: %s",
					inst.ID,
					id,
					err.Error())
				d.log.Printf("[ERROR] %s\n", msg)
				res.Message = msg
				goto SEND_RESPONSE
			}
		}
	}

	res.Message = fmt.Sprintf("Alarm %d (%q) is now %s",
		id,
		a.Label,
		map[bool]string{true: "enabled", false: "disabled"}[flag])
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleAlarmSetEnabled(w http.ResponseWriter, r *http.Request, flag bool)

func (d *Daemon) handleAlarmDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		vars       map[string]string
		idstr, msg string
		id         int64
		db         *database.Database
		a          *objects.Alarm
		res        = objects.Response{ID: d.getID()}
	)

	vars = mux.Vars(r)

	idstr = vars["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if a, err = db.AlarmGetByID(id); err != nil {
		msg = fmt.Sprintf("Cannot look up Alarm by ID %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if a == nil {
		msg = fmt.Sprintf("Did not find Alarm %d in database", id)
		d.log.Printf("[INFO] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.AlarmDelete(a); err != nil {
		msg = fmt.Sprintf("Failed to delete Alarm %d (%q): %s",
			id,
			a.Label,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Message = fmt.Sprintf("Alarm %d (%q) was deleted",
		id,
		a.Label)
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleAlarmDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleInstanceSnooze(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err         error
		idstr, msg  string
		id, minutes int64
		db          *database.Database
		inst        *objects.AlarmInstance
		until       time.Time
		res         = objects.Response{ID: d.getID()}
		txStatus    bool
	)

	vars := mux.Vars(r)

	if err = r.ParseForm(); err != nil {
		msg = fmt.Sprintf("Cannot parse form data: %s", err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	idstr = vars["id"]
	minutes = int64(snoozeDuration / time.Minute)

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	if mstr := r.FormValue("minutes"); mstr != "" {
		if minutes, err = strconv.ParseInt(mstr, 10, 16); err != nil || minutes < 1 {
			msg = fmt.Sprintf("Invalid snooze duration %q", mstr)
			d.log.Printf("[ERROR] %s\n", msg)
			res.Message = msg
			goto SEND_RESPONSE
		}
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	until = time.Now().Add(time.Minute * time.Duration(minutes))

	if inst, err = db.InstanceGetByID(id); err != nil {
		msg = fmt.Sprintf("Cannot look up instance %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if inst == nil {
		msg = fmt.Sprintf("Did not find instance %d in database", id)
		d.log.Printf("[INFO] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.Begin(); err != nil {
		msg = fmt.Sprintf("Error starting transaction: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.InstanceSetState(inst, alarmstate.Snoozed); err != nil {
		msg = fmt.Sprintf("Cannot snooze instance %d (state %s): %s",
			id,
			inst.State,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = db.InstanceSetTime(inst, until); err != nil {
		msg = fmt.Sprintf("Cannot set fire time of instance %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Status = true
	res.Message = fmt.Sprintf("Instance %d snoozed until %s",
		id,
		until.Format("15:04"))
	txStatus = true

SEND_RESPONSE:
	if db != nil {
		if txStatus {
			db.Commit() // nolint: errcheck
		} else {
			db.Rollback() // nolint: errcheck
		}
	}

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleInstanceSnooze(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleInstanceDismiss(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		vars       map[string]string
		idstr, msg string
		id         int64
		db         *database.Database
		inst       *objects.AlarmInstance
		target     = alarmstate.Dismissed
		res        = objects.Response{ID: d.getID()}
	)

	vars = mux.Vars(r)

	idstr = vars["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if inst, err = db.InstanceGetByID(id); err != nil {
		msg = fmt.Sprintf("Cannot look up instance %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if inst == nil {
		msg = fmt.Sprintf("Did not find instance %d in database", id)
		d.log.Printf("[INFO] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	// An instance that never got to ring is predismissed, one that
	// did ring is plainly dismissed.
	switch inst.State {
	case alarmstate.Active, alarmstate.LowNotification, alarmstate.HighNotification:
		target = alarmstate.Predismissed
	}

	if err = db.InstanceSetState(inst, target); err != nil {
		msg = fmt.Sprintf("Cannot dismiss instance %d (state %s): %s",
			id,
			inst.State,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	} else if err = d.consumeAlarm(db, inst.AlarmID); err != nil {
		msg = fmt.Sprintf("Error handling Alarm %d after dismissal: %s",
			inst.AlarmID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		goto SEND_RESPONSE
	}

	res.Status = true
	res.Message = fmt.Sprintf("Instance %d is now %s",
		id,
		target)

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleInstanceDismiss(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleInstanceGetByID(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err   error
		vars  map[string]string
		idstr string
		id    int64
		db    *database.Database
		inst  *objects.AlarmInstance
		buf   []byte
	)

	vars = mux.Vars(r)

	idstr = vars["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		d.log.Printf("[CANTHAPPEN] Cannot parse ID %q: %s\n",
			idstr,
			err.Error())
		http.Error(w, err.Error(), 400)
		return
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if inst, err = db.InstanceGetByID(id); err != nil {
		d.log.Printf("[ERROR] Cannot look up instance %d: %s\n",
			id,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	} else if inst == nil {
		http.Error(w, fmt.Sprintf("Instance %d was not found", id), 404)
		return
	} else if buf, err = ffjson.Marshal(inst); err != nil {
		d.log.Printf("[ERROR] Cannot serialize instance %d: %s\n",
			id,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleInstanceGetByID(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response object %#v: %s\n",
			res,
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)
