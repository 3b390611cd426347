// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package settings is a small persistent key/value store for gateway
// preferences that survive restarts: whether to prepend a system prompt,
// whether to include prior history, and debug-logging verbosity.
package settings

import (
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/AleutianAI/aigateway/internal/settings/sqlitedialect"
)

// Setting is the single table this store owns.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const (
	KeyIncludeSystemPrompt = "includeSystemPrompt"
	KeySystemPrompt        = "systemPrompt"
	KeyIncludeHistory      = "includeHistory"
	KeyDebugLogging        = "debugLogging"
	KeyDebugFullRequestLog = "debugFullRequestLog"
)

// Defaults are seeded on first startup for any key not already present.
var Defaults = map[string]string{
	KeyIncludeSystemPrompt: "false",
	KeySystemPrompt:        "",
	KeyIncludeHistory:      "true",
	KeyDebugLogging:        "false",
	KeyDebugFullRequestLog: "false",
}

// Store is a read-through cache over the settings table. Reads are
// served from the in-memory cache; writes go to the database first and
// only update the cache on success.
type Store struct {
	db *gorm.DB

	mu    sync.RWMutex
	cache map[string]string
}

// Open opens (creating if necessary) a settings database at dsn — a
// filesystem path, or ":memory:" for tests — migrates the settings
// table, seeds any missing default keys, and loads the full table into
// the in-memory cache.
//
// If the underlying database cannot be opened or migrated, Open does not
// fail the caller: it returns a Store backed by in-memory defaults only,
// so a filesystem problem with the settings database never prevents the
// gateway from serving requests.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlitedialect.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return newInMemoryStore(), err
	}

	if err := db.AutoMigrate(&Setting{}); err != nil {
		return newInMemoryStore(), err
	}

	s := &Store{db: db, cache: make(map[string]string, len(Defaults))}
	if err := s.seedAndLoad(); err != nil {
		return newInMemoryStore(), err
	}
	return s, nil
}

func newInMemoryStore() *Store {
	cache := make(map[string]string, len(Defaults))
	for k, v := range Defaults {
		cache[k] = v
	}
	return &Store{db: nil, cache: cache}
}

func (s *Store) seedAndLoad() error {
	for key, value := range Defaults {
		err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&Setting{Key: key, Value: value}).Error
		if err != nil {
			return err
		}
	}

	var rows []Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return err
	}

	s.mu.Lock()
	for _, row := range rows {
		s.cache[row.Key] = row.Value
	}
	s.mu.Unlock()
	return nil
}

// Get returns key's value, or ("", false) if unknown.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.cache[key]
	return v, ok
}

// GetBool returns key's value interpreted as a boolean ("true"/"false"),
// defaulting to def if the key is unknown or unparseable.
func (s *Store) GetBool(key string, def bool) bool {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	switch v {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// errNotOpen is returned by Set when the store has no backing database
// (Open failed and fell back to in-memory defaults).
var errNotOpen = errors.New("settings store has no backing database")

// Set persists key=value and, on success, updates the cache.
func (s *Store) Set(key, value string) error {
	if s.db == nil {
		return errNotOpen
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Setting{Key: key, Value: value}).Error
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()
	return nil
}
