package query

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CachedResult is one persisted list payload. The disk store only warms the
// in-memory cache after a restart; correctness never depends on it.
type CachedResult struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string `gorm:"uniqueIndex;not null"     json:"key"`
	Resource  string `gorm:"index;not null"           json:"resource"`
	Payload   []byte `gorm:"not null"                 json:"payload"`
	FetchedAt int64  `gorm:"not null"                 json:"fetched_at"`
}

type DiskStore struct {
	db *gorm.DB
}

func OpenDisk(path string) (*DiskStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if err := db.AutoMigrate(&CachedResult{}); err != nil {
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}
	return &DiskStore{db: db}, nil
}

func (s *DiskStore) Load(key string) (payload []byte, fetchedAt time.Time, ok bool) {
	var row CachedResult
	if err := s.db.Where("key = ?", key).First(&row).Error; err != nil {
		return nil, time.Time{}, false
	}
	return row.Payload, time.Unix(row.FetchedAt, 0), true
}

// Save upserts in one statement so an interrupted write can never drop an
// existing entry.
func (s *DiskStore) Save(key, resource string, payload []byte, fetchedAt time.Time) error {
	row := CachedResult{
		Key:       key,
		Resource:  resource,
		Payload:   payload,
		FetchedAt: fetchedAt.Unix(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"resource", "payload", "fetched_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("cache db save: %w", err)
	}
	return nil
}

func (s *DiskStore) DeleteResource(resource string) error {
	if err := s.db.Where("resource = ?", resource).Delete(&CachedResult{}).Error; err != nil {
		return fmt.Errorf("cache db delete resource: %w", err)
	}
	return nil
}

func (s *DiskStore) DeleteOlderThan(cutoff time.Time) error {
	if err := s.db.Where("fetched_at < ?", cutoff.Unix()).Delete(&CachedResult{}).Error; err != nil {
		return fmt.Errorf("cache db expire: %w", err)
	}
	return nil
}

func (s *DiskStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
