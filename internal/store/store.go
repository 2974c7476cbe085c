package store

import (
	"encoding/json"
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite dialect
)

// Document is one persisted collection: a JSON payload under a fixed key.
// The schema is version-free; readers fall back to an empty collection when
// a payload no longer parses.
type Document struct {
	Key  string `gorm:"primary_key"`
	Data string `gorm:"type:text"`
}

// TableName sets the table name for Document
func (Document) TableName() string {
	return "documents"
}

// Store persists JSON documents in a key/value table. SQLite by default,
// PostgreSQL via the dsn.
type Store struct {
	db *gorm.DB
}

// Open connects to the database and ensures the documents table exists.
// Supported dialects: "sqlite3" and "postgres".
func Open(dialect, dsn string) (*Store, error) {
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}
	if err := db.AutoMigrate(&Document{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &Store{db: db}, nil
}

// Load unmarshals the document stored under key into out. A missing key or
// a malformed payload leaves out untouched and returns nil: the caller
// proceeds with its default collection.
func (s *Store) Load(key string, out any) error {
	var doc Document
	if err := s.db.Where("key = ?", key).First(&doc).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal([]byte(doc.Data), out); err != nil {
		// Schema drift falls back to the empty collection.
		return nil
	}
	return nil
}

// Save marshals v and upserts it under key.
func (s *Store) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", key, err)
	}

	var doc Document
	err = s.db.Where("key = ?", key).First(&doc).Error
	switch {
	case err == nil:
		return s.db.Model(&Document{}).Where("key = ?", key).Update("data", string(data)).Error
	case gorm.IsRecordNotFoundError(err):
		return s.db.Create(&Document{Key: key, Data: string(data)}).Error
	default:
		return err
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
