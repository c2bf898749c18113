// /home/krylon/go/src/github.com/blicero/morpheus/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-10-28 19:12:45 krylon>

// Package common provides constants and helpers used throughout
// the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/blicero/krylib"
	"github.com/blicero/morpheus/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

// Debug indicates whether the application runs in debug mode,
// AppName and Version identify the application.
const (
	Debug   = true
	AppName = "Morpheus"
	Version = "0.1.0"
)

// Time stamp formats used throughout the application.
const (
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatMinute    = "2006-01-02 15:04"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	TimestampFormatTime      = "15:04:05"
	TimestampFormatDate      = "2006-01-02"
)

// DefaultPort is the TCP port the backend listens on unless told otherwise.
const DefaultPort = 6232

// BaseDir is the directory where the application keeps its files,
// LogPath and DbPath are the log file and database, respectively.
var (
	BaseDir = filepath.Join(os.Getenv("HOME"), ".morpheus.d")
	LogPath = filepath.Join(BaseDir, "morpheus.log")
	DbPath  = filepath.Join(BaseDir, "morpheus.db")
)

// SetBaseDir sets the directory the application uses to store its
// files and adjusts the paths of the log file and database
// accordingly.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BaseDir to %s\n", path)

	BaseDir = path
	LogPath = filepath.Join(BaseDir, "morpheus.log")
	DbPath = filepath.Join(BaseDir, "morpheus.db")

	if err := InitApp(); err != nil {
		fmt.Printf("Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// InitApp performs some basic preparations for the application to run.
// Currently, this means creating the BaseDir if it does not exist.
func InitApp() error {
	var (
		err    error
		exists bool
	)

	if exists, err = krylib.Fexists(BaseDir); err != nil {
		return fmt.Errorf("Error checking BaseDir %s: %s",
			BaseDir,
			err.Error())
	} else if !exists {
		if err = os.MkdirAll(BaseDir, 0700); err != nil {
			return fmt.Errorf("Error creating BaseDir %s: %s",
				BaseDir,
				err.Error())
		}
	}

	return nil
} // func InitApp() error

// LogLevels are the names of the log levels supported by the logger.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// PackageLevels defines minimum log levels per package.
var PackageLevels = make(map[logdomain.ID]logutils.LogLevel, len(LogLevels))

func init() {
	for _, id := range logdomain.AllDomains() {
		PackageLevels[id] = "TRACE"
	}
} // func init()

// GetLogger tries to create a Logger for the given log domain.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		logfile *os.File
	)

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("Error initializing application environment: %s",
			err.Error())
	}

	var name = fmt.Sprintf("%s.%s",
		AppName,
		dom)

	if logfile, err = os.OpenFile(LogPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600); err != nil {
		return nil, fmt.Errorf("Error opening log file %s: %s",
			LogPath,
			err.Error())
	}

	var writer = io.MultiWriter(os.Stdout, logfile)

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: PackageLevels[dom],
		Writer:   writer,
	}

	var logger = log.New(filter, name+" ", log.Ldate|log.Ltime|log.Lshortfile)

	return logger, nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// GetUUID returns a fresh random UUID in string form.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string
