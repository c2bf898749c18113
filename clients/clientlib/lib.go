// /home/krylon/go/src/github.com/blicero/morpheus/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-19 19:02:45 krylon>

// Package clientlib provides the basic framework for building clients
// that talk to the Morpheus daemon.
package clientlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/blicero/morpheus/common"
	"github.com/blicero/morpheus/logdomain"
	"github.com/blicero/morpheus/objects"
	"github.com/cenkalti/backoff"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	pathAlarmAdd     = "/alarm/add"
	pathAlarmAll     = "/alarm/all"
	pathAlarmPending = "/alarm/pending"
	retryTimeout     = time.Second * 30
)

// Client is the basic implementation of a Morpheus client, it
// implements the fundamental communication with the daemon.
type Client struct {
	Server *url.URL
	Client http.Client
	log    *log.Logger
}

// NewClient creates a new Client.
func NewClient(srv string) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: time.Second * 10,
			},
		}
	)

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse(srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	c.Server.Scheme = "http"

	return c, nil
} // func NewClient(srv string) (*Client, error)

// GetLogger returns the Client's Logger, so applications built on top
// of the Client do not need to create their own.
func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

func (c *Client) mkURL(path string) string {
	var u = *c.Server
	u.Path = path
	return u.String()
} // func (c *Client) mkURL(path string) string

// postForm delivers one form to the daemon, retrying with exponential
// backoff if the daemon is slow to come up.
func (c *Client) postForm(path string, values url.Values) (*objects.Response, error) {
	var (
		err    error
		hres   *http.Response
		ores   objects.Response
		rcvBuf bytes.Buffer
		addr   = c.mkURL(path)
		policy = backoff.NewExponentialBackOff()
	)

	policy.MaxElapsedTime = retryTimeout

	err = backoff.Retry(
		func() error {
			var e error
			if hres, e = c.Client.PostForm(addr, values); e != nil {
				c.log.Printf("[DEBUG] Failed to POST to %s, will retry: %s\n",
					addr,
					e.Error())
			}
			return e
		},
		policy)

	if err != nil {
		c.log.Printf("[ERROR] Failed to POST to %s: %s\n",
			addr,
			err.Error())
		return nil, err
	} else if hres.StatusCode != http.StatusOK {
		var msg = fmt.Sprintf("Unexpected status from %s: %s",
			addr,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return nil, errors.New(msg)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr,
			err.Error())
		return nil, err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &ores); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			addr,
			err.Error())
		return nil, err
	} else if !ores.Status {
		err = fmt.Errorf("Request to %s failed: %s",
			addr,
			ores.Message)
		c.log.Printf("[ERROR] %s\n",
			err.Error())
		return &ores, err
	}

	c.log.Printf("[DEBUG] Request to %s was successful: %s\n",
		addr,
		ores.Message)

	return &ores, nil
} // func (c *Client) postForm(path string, values url.Values) (*objects.Response, error)

// SubmitAlarm delivers a new Alarm to the daemon.
func (c *Client) SubmitAlarm(a *objects.Alarm) error {
	var values = make(url.Values)

	values.Set("label", a.Label)
	values.Set("hour", strconv.Itoa(a.Hour))
	values.Set("minute", strconv.Itoa(a.Minute))
	values.Set("days", strconv.Itoa(int(a.Days.Bitfield())))
	values.Set("ringtone", a.Ringtone)
	values.Set("vibrate", strconv.FormatBool(a.Vibrate))
	values.Set("delete_after_use", strconv.FormatBool(a.DeleteAfterUse))
	values.Set("increasing_volume", strconv.FormatBool(a.IncreasingVolume))

	var _, err = c.postForm(pathAlarmAdd, values)
	return err
} // func (c *Client) SubmitAlarm(a *objects.Alarm) error

// FetchAlarms asks the daemon for all Alarms it knows of.
func (c *Client) FetchAlarms() ([]objects.Alarm, error) {
	var (
		err    error
		alarms []objects.Alarm
	)

	if err = c.fetchJSON(pathAlarmAll, &alarms); err != nil {
		return nil, err
	}

	return alarms, nil
} // func (c *Client) FetchAlarms() ([]objects.Alarm, error)

// FetchPending asks the daemon for the Alarm instances that have not
// run their course yet.
func (c *Client) FetchPending() ([]objects.AlarmInstance, error) {
	var (
		err       error
		instances []objects.AlarmInstance
	)

	if err = c.fetchJSON(pathAlarmPending, &instances); err != nil {
		return nil, err
	}

	return instances, nil
} // func (c *Client) FetchPending() ([]objects.AlarmInstance, error)

// SnoozeInstance tells the daemon to snooze the given instance. A
// duration of zero minutes leaves the choice to the daemon.
func (c *Client) SnoozeInstance(id int64, minutes int) error {
	var values = make(url.Values)

	if minutes > 0 {
		values.Set("minutes", strconv.Itoa(minutes))
	}

	var _, err = c.postForm(fmt.Sprintf("/instance/%d/snooze", id), values)
	return err
} // func (c *Client) SnoozeInstance(id int64, minutes int) error

// DismissInstance tells the daemon to dismiss the given instance.
func (c *Client) DismissInstance(id int64) error {
	var _, err = c.postForm(fmt.Sprintf("/instance/%d/dismiss", id), make(url.Values))
	return err
} // func (c *Client) DismissInstance(id int64) error

// EnableAlarm sets or clears the enabled flag of the given Alarm.
func (c *Client) EnableAlarm(id int64, flag bool) error {
	var path string

	if flag {
		path = fmt.Sprintf("/alarm/%d/enable", id)
	} else {
		path = fmt.Sprintf("/alarm/%d/disable", id)
	}

	var _, err = c.postForm(path, make(url.Values))
	return err
} // func (c *Client) EnableAlarm(id int64, flag bool) error

// DeleteAlarm tells the daemon to delete the given Alarm.
func (c *Client) DeleteAlarm(id int64) error {
	var _, err = c.postForm(fmt.Sprintf("/alarm/%d/delete", id), make(url.Values))
	return err
} // func (c *Client) DeleteAlarm(id int64) error

func (c *Client) fetchJSON(path string, dst interface{}) error {
	var (
		err    error
		hres   *http.Response
		rcvBuf bytes.Buffer
		addr   = c.mkURL(path)
	)

	if hres, err = c.Client.Get(addr); err != nil {
		c.log.Printf("[ERROR] Failed to GET %s: %s\n",
			addr,
			err.Error())
		return err
	} else if hres.StatusCode != http.StatusOK {
		var msg = fmt.Sprintf("Unexpected status from %s: %s",
			addr,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr,
			err.Error())
		return err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), dst); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			addr,
			err.Error())
		return err
	}

	return nil
} // func (c *Client) fetchJSON(path string, dst interface{}) error
