// /home/krylon/go/src/github.com/blicero/morpheus/database/01_database_init_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-16 22:15:04 krylon>

package database

import (
	"testing"
	"time"

	"github.com/blicero/morpheus/common"
)

var db *Database

func init() {
	var baseDir = time.Now().Format("/tmp/morpheus_db_test_20060102_150405")

	if err := common.SetBaseDir(baseDir); err != nil {
		panic(err)
	}
} // func init()

func TestCreateDatabase(t *testing.T) {
	var err error

	if db, err = Open(common.DbPath); err != nil {
		db = nil
		t.Fatalf("Cannot open database at %s: %s",
			common.DbPath,
			err.Error())
	}
} // func TestCreateDatabase(t *testing.T)

// We prepare each query once to make sure there are no syntax errors in the SQL.
func TestPrepareQueries(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for id := range dbQueries {
		var err error
		if _, err = db.getQuery(id); err != nil {
			t.Errorf("Cannot prepare query %s: %s",
				id,
				err.Error())
		}
	}
} // func TestPrepareQueries(t *testing.T)
