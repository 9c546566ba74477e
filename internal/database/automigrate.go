package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendance-service/internal/domain"
)

// models lists every persisted domain model in dependency order
func models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.ActivityEvent{},
		&domain.OvertimeRecord{},
	}
}

// AutoMigrate creates or updates the ledger tables and their indexes
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()

	for _, m := range models() {
		existed := migrator.HasTable(m)
		if err := db.AutoMigrate(m); err != nil {
			log.Error("Failed to migrate table",
				zap.String("model", fmt.Sprintf("%T", m)),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
		log.Debug("Migrated table",
			zap.String("model", fmt.Sprintf("%T", m)),
			zap.Bool("was_existing", existed),
		)
	}

	log.Info("Auto-migration completed", zap.Int("tables_migrated", len(models())))
	return nil
}
