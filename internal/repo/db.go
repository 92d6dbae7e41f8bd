// Package repo is the GORM persistence layer: free functions taking a
// context and a *gorm.DB, so services can run them on the root handle or
// inside a transaction alike.
package repo

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-sports-backend/internal/domain"
)

const (
	maxOpenConns  = 10
	busyTimeoutMS = 5000
	slowQuery     = 200 * time.Millisecond
)

// sqliteDSN puts the PRAGMAs in the DSN so every pooled connection gets
// them, not only the first. _txlock=immediate takes the write lock at BEGIN,
// which turns lock-upgrade deadlocks between concurrent counter updates into
// plain busy waits.
func sqliteDSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeoutMS))
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// gormWriter routes GORM's slow-query and error lines into zerolog.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	log.Warn().Str("component", "gorm").Msgf(format, args...)
}

// OpenSQLite opens (or creates) the database file at path. The parent
// directory must exist.
func OpenSQLite(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(gormWriter{}, logger.Config{
			SlowThreshold:             slowQuery,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxOpenConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// pendingJoinRequestIndex guarantees at most one open request per
// (user, group). It is partial, so resolved history rows never collide.
const pendingJoinRequestIndex = `CREATE UNIQUE INDEX IF NOT EXISTS ux_join_requests_pending
	ON join_requests (user_id, group_id) WHERE status = 'PENDING'`

// AutoMigrate creates or updates every table plus the indexes GORM tags
// cannot express.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Group{},
		&domain.Membership{},
		&domain.JoinRequest{},
		&domain.Post{},
		&domain.PostLike{},
		&domain.Attendance{},
		&domain.Comment{},
		&domain.Idempotency{},
	); err != nil {
		return err
	}
	return db.Exec(pendingJoinRequestIndex).Error
}
