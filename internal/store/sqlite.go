package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/smileynet/addressbook/internal/book"
)

// contactRow is one record; Position keeps book iteration order.
type contactRow struct {
	Name     string `gorm:"primaryKey"`
	Position int    `gorm:"not null;index"`
	Birthday string
}

func (contactRow) TableName() string { return "contacts" }

type phoneRow struct {
	ID          uint   `gorm:"primaryKey"`
	ContactName string `gorm:"not null;index"`
	Position    int    `gorm:"not null"`
	Number      string `gorm:"not null"`
}

func (phoneRow) TableName() string { return "phones" }

// SQLiteStore persists the address book in a SQLite database.
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the database at path and migrates
// its schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: creating directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	if err := db.AutoMigrate(&contactRow{}, &phoneRow{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("store: migrating %s: %w", path, err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Load reads every contact ordered by position. Rows that fail validation
// are copied to backup tables and yield an empty book and a *CorruptError.
func (s *SQLiteStore) Load() (*book.AddressBook, error) {
	var contacts []contactRow
	if err := s.db.Order("position").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("store: loading contacts: %w", err)
	}
	var phones []phoneRow
	if err := s.db.Order("contact_name, position").Find(&phones).Error; err != nil {
		return nil, fmt.Errorf("store: loading phones: %w", err)
	}

	byContact := make(map[string][]string, len(contacts))
	for _, p := range phones {
		byContact[p.ContactName] = append(byContact[p.ContactName], p.Number)
	}

	doc := document{Version: documentVersion, Contacts: make([]contact, len(contacts))}
	for i, c := range contacts {
		doc.Contacts[i] = contact{Name: c.Name, Phones: byContact[c.Name], Birthday: c.Birthday}
	}

	b, err := decode(doc)
	if err != nil {
		return s.quarantine(err)
	}
	return b, nil
}

// quarantine copies both tables to <table>_corrupt_<unix seconds> and returns
// an empty book with a *CorruptError. Save only rewrites the live tables.
func (s *SQLiteStore) quarantine(cause error) (*book.AddressBook, error) {
	suffix := fmt.Sprintf("_corrupt_%d", time.Now().Unix())
	tables := []string{contactRow{}.TableName(), phoneRow{}.TableName()}
	backups := make([]string, len(tables))
	for i, table := range tables {
		backups[i] = table + suffix
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, table := range tables {
			if err := tx.Exec(fmt.Sprintf("CREATE TABLE %q AS SELECT * FROM %q", backups[i], table)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: copying corrupt tables in %s: %w", s.path, errors.Join(err, cause))
	}
	return book.New(), &CorruptError{Source: s.path, Backup: strings.Join(backups, ", "), Err: cause}
}

// Save replaces all rows with the contents of b in one transaction.
func (s *SQLiteStore) Save(b *book.AddressBook) error {
	doc := encode(b)

	contacts := make([]contactRow, 0, len(doc.Contacts))
	var phones []phoneRow
	for i, c := range doc.Contacts {
		contacts = append(contacts, contactRow{Name: c.Name, Position: i, Birthday: c.Birthday})
		for j, number := range c.Phones {
			phones = append(phones, phoneRow{ContactName: c.Name, Position: j, Number: number})
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&phoneRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&contactRow{}).Error; err != nil {
			return err
		}
		if len(contacts) > 0 {
			if err := tx.Create(&contacts).Error; err != nil {
				return err
			}
		}
		if len(phones) > 0 {
			if err := tx.Create(&phones).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: saving: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("store: closing: %w", err)
	}
	return sqlDB.Close()
}
