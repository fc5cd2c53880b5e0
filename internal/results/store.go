// Package results persists finished analysis payloads for later retrieval.
// Persistence is best effort: a storage failure never fails the request
// that produced the analysis.
package results

import (
	"context"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"trade-insights/internal/logger"
)

// AnalysisRecord is one stored analysis result.
type AnalysisRecord struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index;size:128"`
	Payload   string `gorm:"type:longtext"`
	CreatedAt time.Time
}

// Store writes analysis records to MySQL.
type Store struct {
	db *gorm.DB
}

// NewStore opens the MySQL connection and migrates the schema.
func NewStore(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&AnalysisRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveAsync persists the payload in the background. Failures are logged and
// swallowed; the caller already has its response.
func (s *Store) SaveAsync(ctx context.Context, userID, payload string) {
	go func() {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		record := AnalysisRecord{UserID: userID, Payload: payload}
		if err := s.db.WithContext(saveCtx).Create(&record).Error; err != nil {
			logger.ErrorWithErr(saveCtx, "failed to persist analysis result", err, "user_id", userID)
			return
		}
		logger.Debug(saveCtx, "analysis result persisted", "user_id", userID, "record_id", record.ID)
	}()
}
