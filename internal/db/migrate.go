package db

import (
	"context"                            // Context for pings
	"reservation_system/internal/domain" // Importing domain models

	"gorm.io/driver/mysql"           // MySQL driver for GORM
	"gorm.io/gorm"                   // GORM ORM library
	gormlogger "gorm.io/gorm/logger" // GORM query logger
)

// Open connects to MySQL with duplicate-key errors translated to gorm.ErrDuplicatedKey
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,                                        // Map driver errors to gorm errors
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn), // Only slow queries and errors
	})
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	return db.AutoMigrate(&domain.User{}, &domain.Reservation{})
}

// Ping checks that the database is reachable
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB() // Underlying connection pool
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
