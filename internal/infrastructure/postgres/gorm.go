package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenGorm binds gorm to an existing connection. Every write in the
// gateway touches a single row, so gorm's implicit transaction is skipped.
func OpenGorm(db *sql.DB, logSQL bool) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if logSQL {
		gormLogger = logger.Default.LogMode(logger.Info)
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return gdb, nil
}
