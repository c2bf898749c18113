// /home/krylon/go/src/github.com/blicero/morpheus/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-18 20:29:41 krylon>

// Package backend implements the ... backend of the application,
// the part that deals with the database, the scheduling of Alarms,
// and dbus.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/blicero/morpheus/common"
	"github.com/blicero/morpheus/database"
	"github.com/blicero/morpheus/logdomain"
	"github.com/blicero/morpheus/objects"
	"github.com/blicero/morpheus/objects/alarmstate"
	"github.com/godbus/dbus/v5"
	"github.com/gorilla/mux"
	"github.com/grandcat/zeroconf"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyIntf   = "org.freedesktop.Notifications" // nolint: deadcode,unused,varcheck
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
	queueDepth   = 5
	queueTimeout = time.Second * 2
	tickInterval = time.Second * 10
)

// Lead times for announcing upcoming Alarms, the snooze interval, and
// how long a ringing Alarm may go unacknowledged before it counts as
// missed.
const (
	leadLowNotification  = time.Hour * 2
	leadHighNotification = time.Minute * 30
	snoozeDuration       = time.Minute * 10
	missedTimeout        = time.Minute * 10
)

// Daemon is the centerpiece of the backend, coordinating between the
// database, the clients, and the desktop notification service.
type Daemon struct {
	log        *log.Logger
	pool       *database.Pool
	bus        *dbus.Conn
	lock       sync.RWMutex // nolint: structcheck,unused
	active     bool
	Queue      chan objects.Notification
	web        http.Server
	router     *mux.Router
	listenAddr string
	hostname   string
	dnssd      *zeroconf.Server
	pLock      sync.Mutex
	peers      map[string]*service
	idLock     sync.Mutex
	idCnt      int64
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is required.
func Summon(addr string) (*Daemon, error) {
	var (
		err error
		d   = &Daemon{
			listenAddr: addr,
			active:     true,
			Queue:      make(chan objects.Notification, queueDepth),
			router:     mux.NewRouter(),
			peers:      make(map[string]*service),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(4); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	} else if d.hostname, err = os.Hostname(); err != nil {
		d.log.Printf("[ERROR] Cannot determine hostname: %s\n",
			err.Error())
		return nil, err
	}

	// The session bus may be absent, e.g. when running headless.
	// The Alarm bookkeeping works all the same, we only lose the
	// desktop notifications, so we carry on.
	if d.bus, err = dbus.SessionBus(); err != nil {
		d.log.Printf("[ERROR] Failed to connect to DBus Session bus: %s\n",
			err.Error())
		d.bus = nil
	}

	d.web.Addr = addr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	}

	if err = d.initDNSSd(); err != nil {
		d.log.Printf("[ERROR] Failed to register with DNS-SD: %s\n",
			err.Error())
	} else {
		go d.findPeers()
	}

	go d.notifyLoop()
	go d.tickLoop()
	go d.serveHTTP()

	return d, nil
} // func Summon(addr string) (*Daemon, error)

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag, telling components to shut down.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	if d.dnssd != nil {
		d.dnssd.Shutdown()
		d.dnssd = nil
	}

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()
	return err
} // func (d *Daemon) Banish() error

func (d *Daemon) notifyLoop() {
	defer d.log.Println("[TRACE] Quitting notifyLoop")

	var (
		err  error
		tick = time.NewTicker(queueTimeout)
	)
	defer tick.Stop()

	for d.IsAlive() {
		select {
		case <-tick.C:
			continue
		case m := <-d.Queue:
			var title, body = m.Payload()
			d.log.Printf("[DEBUG] Received Notification: %s\n%s\n",
				title,
				body)

			if err = d.notify(m); err != nil {
				d.log.Printf("[ERROR] Failed to post Notification %q: %s\n",
					title,
					err.Error())
			}
		}
	}
} // func (d *Daemon) notifyLoop()

func (d *Daemon) notify(n objects.Notification) error {
	if d.bus == nil {
		return fmt.Errorf("no connection to DBus session bus")
	}

	var (
		err        error
		obj        = d.bus.Object(notifyObj, notifyPath)
		head, body string
	)

	if obj == nil {
		err = fmt.Errorf("Did not find object %s (%s) on session bus",
			notifyObj,
			notifyPath)
		d.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	head, body = n.Payload()

	// A heads-up about an upcoming Alarm is posted with low urgency,
	// an Alarm actually going off with critical urgency.
	var hints = make(map[string]dbus.Variant)

	if inst, ok := n.(*objects.AlarmInstance); ok {
		switch inst.State {
		case alarmstate.LowNotification:
			hints["urgency"] = dbus.MakeVariant(byte(0))
		case alarmstate.Fired:
			hints["urgency"] = dbus.MakeVariant(byte(2))
		}
	}

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		head,
		body,
		[]string{},
		hints,
		int32(0),
	)

	if res.Err != nil {
		d.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			head,
			res.Err.Error())
		return res.Err
	}

	return nil
} // func (d *Daemon) notify(n objects.Notification) error

func (d *Daemon) tickLoop() {
	defer d.log.Println("[TRACE] tickLoop is shutting down")

	var ticker = time.NewTicker(tickInterval)
	defer ticker.Stop()

	for d.IsAlive() {
		var err error
		<-ticker.C

		if err = d.checkAlarms(); err != nil {
			d.log.Printf("[ERROR] Failed to check Alarms: %s\n",
				err.Error())
		}
	}
} // func (d *Daemon) tickLoop()

// checkAlarms makes sure every enabled Alarm has a live instance and
// walks each instance through its states as its fire time approaches
// and passes.
func (d *Daemon) checkAlarms() error {
	var (
		err    error
		db     *database.Database
		alarms []objects.Alarm
		now    = time.Now()
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if alarms, err = db.AlarmGetEnabled(); err != nil {
		d.log.Printf("[ERROR] Cannot get enabled Alarms from database: %s\n",
			err.Error())
		return err
	}

	for idx := range alarms {
		var (
			a    = &alarms[idx]
			inst *objects.AlarmInstance
		)

		if inst, err = db.InstanceGetByAlarm(a); err != nil {
			d.log.Printf("[ERROR] Cannot get live instance of Alarm %d: %s\n",
				a.ID,
				err.Error())
			return err
		} else if inst == nil {
			inst = a.CreateInstanceAfter(now)

			if err = db.InstanceAdd(inst); err != nil {
				d.log.Printf("[ERROR] Cannot add instance for Alarm %d: %s\n",
					a.ID,
					err.Error())
				return err
			}

			d.log.Printf("[DEBUG] Scheduled Alarm %d (%q) for %s\n",
				a.ID,
				a.Label,
				inst.FireTime(nil).Format(common.TimestampFormatMinute))
			continue
		}

		if err = d.advanceInstance(db, inst, now); err != nil {
			return err
		}
	}

	return nil
} // func (d *Daemon) checkAlarms() error

// advanceInstance moves a single instance along its state machine
// according to the wall clock. Each tick advances an instance by at
// most one state, which is plenty at the rate the clock ticks.
func (d *Daemon) advanceInstance(db *database.Database, inst *objects.AlarmInstance, now time.Time) error {
	var (
		err  error
		fire = inst.FireTime(nil)
	)

	switch inst.State {
	case alarmstate.Active:
		if now.After(fire.Add(-leadHighNotification)) {
			err = db.InstanceSetState(inst, alarmstate.HighNotification)
		} else if now.After(fire.Add(-leadLowNotification)) {
			if err = db.InstanceSetState(inst, alarmstate.LowNotification); err == nil {
				d.Queue <- inst
			}
		}
	case alarmstate.LowNotification, alarmstate.HideNotification:
		if now.After(fire.Add(-leadHighNotification)) {
			err = db.InstanceSetState(inst, alarmstate.HighNotification)
		}
	case alarmstate.HighNotification, alarmstate.Snoozed:
		if !fire.After(now) {
			if err = db.InstanceSetState(inst, alarmstate.Fired); err == nil {
				d.log.Printf("[INFO] Alarm instance %d (%q) is firing\n",
					inst.ID,
					inst.Label)
				d.Queue <- inst
			}
		}
	case alarmstate.Fired:
		if now.Sub(fire) > missedTimeout {
			d.log.Printf("[INFO] Alarm instance %d (%q) went unacknowledged, marking as missed\n",
				inst.ID,
				inst.Label)
			err = db.InstanceSetState(inst, alarmstate.Missed)
		}
	case alarmstate.Missed:
		// Stays around until the user dismisses it.
	}

	if err != nil {
		d.log.Printf("[ERROR] Cannot advance instance %d: %s\n",
			inst.ID,
			err.Error())
	}

	return err
} // func (d *Daemon) advanceInstance(db *database.Database, inst *objects.AlarmInstance, now time.Time) error

// consumeAlarm takes care of an Alarm whose instance was just
// dismissed. A one-shot Alarm is spent at that point, depending on
// its DeleteAfterUse flag it is either removed entirely or merely
// disabled. A repeating Alarm is left alone, the next tick will
// schedule its next occurrence.
func (d *Daemon) consumeAlarm(db *database.Database, alarmID int64) error {
	var (
		err error
		a   *objects.Alarm
	)

	if a, err = db.AlarmGetByID(alarmID); err != nil {
		d.log.Printf("[ERROR] Cannot look up Alarm %d: %s\n",
			alarmID,
			err.Error())
		return err
	} else if a == nil {
		d.log.Printf("[DEBUG] Alarm %d is already gone\n",
			alarmID)
		return nil
	} else if a.Days.IsRepeating() {
		return nil
	}

	if a.DeleteAfterUse {
		d.log.Printf("[INFO] One-shot Alarm %d (%q) is spent, deleting it\n",
			a.ID,
			a.Label)
		return db.AlarmDelete(a)
	}

	return db.AlarmSetEnabled(a, false)
} // func (d *Daemon) consumeAlarm(db *database.Database, alarmID int64) error

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64
