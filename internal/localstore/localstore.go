package localstore

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Well-known snapshot keys. Each state manager owns exactly one key;
// there is no transactionality across keys.
const (
	KeyProducts = "products"
	KeyCart     = "cart"
	KeyOrders   = "orders"
	KeyUser     = "user"
)

type entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value []byte `gorm:"column:value"`
}

func (entry) TableName() string { return "kv" }

// Store is the durable key-value fallback backend. Reads and writes are
// synchronous; values are opaque serialized snapshots.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the snapshot database at path. An empty path
// opens a private in-memory store, which tests rely on.
func Open(path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return &Store{db: db}, nil
}

// Read returns the stored value for key, or false when no snapshot
// exists. A read failure is indistinguishable from absence on purpose:
// every caller treats "no snapshot" as a reseed trigger.
func (s *Store) Read(key string) ([]byte, bool) {
	var e entry
	if err := s.db.Take(&e, "key = ?", key).Error; err != nil {
		return nil, false
	}
	return e.Value, true
}

func (s *Store) Write(key string, value []byte) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("write %q snapshot: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if err := s.db.Delete(&entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete %q snapshot: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
