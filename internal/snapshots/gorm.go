package snapshots

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
)

// GormStore keeps snapshots in the snapshots table of a sqlite or postgres
// database.
type GormStore struct {
	client *db.Client
}

// NewGormStore binds the store to the client, creating the table when
// autoMigrate is set.
func NewGormStore(ctx context.Context, client *db.Client, autoMigrate bool) (*GormStore, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if autoMigrate {
		if err := client.DB().WithContext(ctx).AutoMigrate(&models.Snapshot{}); err != nil {
			return nil, fmt.Errorf("migrating snapshots table: %w", err)
		}
	}
	return &GormStore{client: client}, nil
}

func (s *GormStore) Load(ctx context.Context, key string) ([]byte, error) {
	var row models.Snapshot
	err := s.client.DB().WithContext(ctx).Where("snapshot_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Payload, nil
}

func (s *GormStore) Save(ctx context.Context, key string, payload []byte) error {
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		row := models.Snapshot{Key: key, Payload: payload}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).Create(&row).Error
	})
}
