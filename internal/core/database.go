// AngelaMos | 2026
// database.go

package core

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/summercamp-api/internal/config"
)

const pingTimeout = 5 * time.Second

// Database is the process-wide store handle. Feature repositories receive
// its DB field at construction and never reach for a global.
type Database struct {
	DB *sqlx.DB
}

func NewDatabase(
	ctx context.Context,
	cfg config.DatabaseConfig,
) (*Database, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(jitteredDuration(cfg.ConnMaxLifetime))
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	d := &Database{DB: db}
	if err := d.Ping(ctx); err != nil {
		_ = db.Close() //nolint:errcheck // cleanup on connection failure
		return nil, err
	}

	return d, nil
}

func (d *Database) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := d.DB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

func (d *Database) Stats() sql.DBStats {
	return d.DB.Stats()
}

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx.
type DBTX interface {
	sqlx.ExtContext
	sqlx.ExecerContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(
		ctx context.Context,
		dest any,
		query string,
		args ...any,
	) error
}

func jitteredDuration(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	//nolint:gosec // G404: non-security-sensitive jitter for connection pool
	jitter := time.Duration(rand.Int64N(int64(base/7) + 1))
	return base + jitter
}
