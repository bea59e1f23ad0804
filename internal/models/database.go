package models

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// preferencesKey is the fixed key of the single preferences record
const preferencesKey uint64 = 1

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// StoredCookie is a backend cookie persisted between runs. Only name and
// value are kept: a cookie jar hands back nothing else, and the backend
// rejects a cookie that has expired on its side.
type StoredCookie struct {
	ID    uint64 `boltholdKey:"ID"`
	Host  string `boltholdIndex:"Host"`
	Name  string
	Value string
}

// Preferences holds the last submitted filter set
type Preferences struct {
	ID        uint64 `boltholdKey:"ID"`
	Type      ContentType
	GenreIDs  []string
	Language  string
	Adult     string
	Rating    string
	SortBy    string
	UpdatedAt time.Time
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Cookie operations

// SaveCookies replaces every cookie stored for host
func (db *Database) SaveCookies(host string, cookies []*http.Cookie) error {
	return db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		if err := db.store.TxDeleteMatching(tx, &StoredCookie{}, bolthold.Where("Host").Eq(host)); err != nil {
			return fmt.Errorf("failed to clear cookies: %w", err)
		}

		for _, c := range cookies {
			record := &StoredCookie{
				Host:  host,
				Name:  c.Name,
				Value: c.Value,
			}
			if err := db.store.TxInsert(tx, bolthold.NextSequence(), record); err != nil {
				return fmt.Errorf("failed to store cookie %s: %w", c.Name, err)
			}
		}
		return nil
	})
}

// LoadCookies returns the cookies stored for host
func (db *Database) LoadCookies(host string) ([]*http.Cookie, error) {
	var records []*StoredCookie
	if err := db.store.Find(&records, bolthold.Where("Host").Eq(host)); err != nil {
		return nil, err
	}

	cookies := make([]*http.Cookie, 0, len(records))
	for _, r := range records {
		cookies = append(cookies, &http.Cookie{Name: r.Name, Value: r.Value})
	}
	return cookies, nil
}

// Preferences operations

// SavePreferences stores the last submitted filter set
func (db *Database) SavePreferences(p *Preferences) error {
	p.ID = preferencesKey
	p.UpdatedAt = time.Now()
	return db.store.Upsert(preferencesKey, p)
}

// LoadPreferences returns the stored preferences, or nil if none were saved
func (db *Database) LoadPreferences() (*Preferences, error) {
	var p Preferences
	err := db.store.Get(preferencesKey, &p)
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
