// /home/krylon/go/src/github.com/blicero/morpheus/clients/morphctl/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-19 19:41:27 krylon>

// morphctl is a simple command line client for the Morpheus daemon.
// It can add, list, enable, disable, and delete Alarms, and it can
// snooze or dismiss a ringing Alarm.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/blicero/morpheus/clients/clientlib"
	"github.com/blicero/morpheus/common"
	"github.com/blicero/morpheus/objects"
)

func main() {
	var (
		err                        error
		c                          *clientlib.Client
		srv, label, tstr, ringtone string
		days, minutes              int
		id                         int64
		vibrate, delAfter, incVol  bool
	)

	flag.StringVar(
		&srv,
		"server",
		fmt.Sprintf("localhost:%d", common.DefaultPort),
		"Address of the Morpheus daemon")
	flag.StringVar(&label, "label", "", "Label of the Alarm to add")
	flag.StringVar(&tstr, "time", "", "Time of day the Alarm goes off (HH:MM)")
	flag.StringVar(&ringtone, "ringtone", "", "Ringtone to play (empty for the default)")
	flag.IntVar(&days, "days", 0, "Days the Alarm repeats on, as a bitmask (bit 0 = Monday)")
	flag.IntVar(&minutes, "minutes", 0, "Number of minutes to snooze")
	flag.Int64Var(&id, "id", 0, "ID of the Alarm or instance to operate on")
	flag.BoolVar(&vibrate, "vibrate", false, "Vibrate when the Alarm goes off")
	flag.BoolVar(&delAfter, "delete-after-use", false, "Delete the Alarm once it has run")
	flag.BoolVar(&incVol, "increasing-volume", false, "Ramp up the volume gradually")

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Missing command (add|list|pending|enable|disable|delete|snooze|dismiss)")
		os.Exit(1)
	}

	if c, err = clientlib.NewClient(srv); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Client: %s\n",
			err.Error())
		os.Exit(1)
	}

	switch cmd := flag.Arg(0); cmd {
	case "add":
		var (
			t  time.Time
			wd objects.Weekdays
			a  *objects.Alarm
		)

		if t, err = time.Parse("15:04", tstr); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot parse time of day %q: %s\n",
				tstr,
				err.Error())
			os.Exit(1)
		} else if days < 0 || days > 127 {
			fmt.Fprintf(
				os.Stderr,
				"Day mask %d is out of range (0 - 127)\n",
				days)
			os.Exit(1)
		} else if wd, err = objects.WeekdaysFromBitfield(uint8(days)); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Invalid day mask %d: %s\n",
				days,
				err.Error())
			os.Exit(1)
		} else if a, err = objects.NewAlarm(label, t.Hour(), t.Minute(), wd); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot create Alarm: %s\n",
				err.Error())
			os.Exit(1)
		}

		a.Ringtone = ringtone
		a.Vibrate = vibrate
		a.DeleteAfterUse = delAfter
		a.IncreasingVolume = incVol

		err = c.SubmitAlarm(a)
	case "list":
		var alarms []objects.Alarm

		if alarms, err = c.FetchAlarms(); err == nil {
			for idx := range alarms {
				fmt.Printf("%s\n", &alarms[idx])
			}
		}
	case "pending":
		var instances []objects.AlarmInstance

		if instances, err = c.FetchPending(); err == nil {
			for idx := range instances {
				fmt.Printf("%s\n", &instances[idx])
			}
		}
	case "enable":
		err = c.EnableAlarm(id, true)
	case "disable":
		err = c.EnableAlarm(id, false)
	case "delete":
		err = c.DeleteAlarm(id)
	case "snooze":
		err = c.SnoozeInstance(id, minutes)
	case "dismiss":
		err = c.DismissInstance(id)
	default:
		fmt.Fprintf(
			os.Stderr,
			"Unknown command %q\n",
			cmd)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Command %q failed: %s\n",
			flag.Arg(0),
			err.Error())
		os.Exit(1)
	}
}
