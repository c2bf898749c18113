// /home/krylon/go/src/github.com/blicero/morpheus/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 10. 2022 by Benjamin Walkenhorst
// (c) 2022 Benjamin Walkenhorst
// Time-stamp: <2022-11-16 22:01:30 krylon>

package database

import (
	"log"
	"sync"

	"github.com/blicero/morpheus/common"
	"github.com/blicero/morpheus/logdomain"
)

// Pool is a pool of database connections. SQLite connections are cheap
// to come by, but not free, and the prepared statements live on the
// connection, so recycling them pays off.
type Pool struct {
	log  *log.Logger
	lock sync.Mutex
	pool []*Database
}

// NewPool opens the given number of database connections and returns
// the Pool holding them.
func NewPool(cnt int) (*Pool, error) {
	var (
		err  error
		pool = &Pool{
			pool: make([]*Database, 0, cnt),
		}
	)

	if pool.log, err = common.GetLogger(logdomain.DBPool); err != nil {
		return nil, err
	}

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(common.DbPath); err != nil {
			pool.log.Printf("[ERROR] Cannot open database connection #%d: %s\n",
				i+1,
				err.Error())
			return nil, err
		}

		pool.pool = append(pool.pool, db)
	}

	return pool, nil
} // func NewPool(cnt int) (*Pool, error)

// Get returns a database connection from the Pool. If the Pool has run
// dry, a fresh connection is opened instead. In the unlikely case that
// fails, Get returns nil.
func (pool *Pool) Get() *Database {
	pool.lock.Lock()

	if cnt := len(pool.pool); cnt > 0 {
		var db = pool.pool[cnt-1]
		pool.pool = pool.pool[:cnt-1]
		pool.lock.Unlock()
		return db
	}

	pool.lock.Unlock()

	var (
		err error
		db  *Database
	)

	if db, err = Open(common.DbPath); err != nil {
		pool.log.Printf("[CRITICAL] Cannot open database connection: %s\n",
			err.Error())
		return nil
	}

	return db
} // func (pool *Pool) Get() *Database

// Put returns a database connection to the Pool.
func (pool *Pool) Put(db *Database) {
	if db == nil {
		return
	}

	pool.lock.Lock()
	pool.pool = append(pool.pool, db)
	pool.lock.Unlock()
} // func (pool *Pool) Put(db *Database)

// Close closes all connections currently in the Pool.
func (pool *Pool) Close() error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	for _, db := range pool.pool {
		if err := db.Close(); err != nil {
			pool.log.Printf("[ERROR] Cannot close database connection: %s\n",
				err.Error())
			return err
		}
	}

	pool.pool = pool.pool[:0]
	return nil
} // func (pool *Pool) Close() error
