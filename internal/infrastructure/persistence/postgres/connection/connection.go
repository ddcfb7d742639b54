package connection

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mzohdy/northstar/pkg/config"
)

const (
	defaultMaxIdleConns    = 10
	defaultMaxOpenConns    = 100
	defaultConnMaxLifetime = time.Hour
)

type Database struct {
	*gorm.DB
	dsn  string
	pool poolSettings
}

type poolSettings struct {
	maxIdleConns    int
	maxOpenConns    int
	connMaxLifetime time.Duration
}

func buildDSN(cfg *config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode,
	)
}

func poolFromConfig(cfg *config.DatabaseConfig) poolSettings {
	pool := poolSettings{
		maxIdleConns:    defaultMaxIdleConns,
		maxOpenConns:    defaultMaxOpenConns,
		connMaxLifetime: defaultConnMaxLifetime,
	}
	if cfg.MaxIdleConns > 0 {
		pool.maxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxOpenConns > 0 {
		pool.maxOpenConns = cfg.MaxOpenConns
	}
	if cfg.ConnMaxLifetime > 0 {
		pool.connMaxLifetime = cfg.ConnMaxLifetime
	}
	return pool
}

func NewDatabase(cfg *config.Config) (*Database, error) {
	dsn := buildDSN(&cfg.Database)

	// Verify basic connectivity before handing the DSN to GORM so pq's
	// richer error surface is available on failure.
	probe, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create sql.DB: %w", err)
	}
	defer probe.Close()

	probe.SetConnMaxLifetime(10 * time.Second)
	if err := probe.Ping(); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return nil, fmt.Errorf("postgres error: code=%s, message=%s, detail=%s", pqErr.Code, pqErr.Message, pqErr.Detail)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database with GORM: %w", err)
	}

	db := &Database{
		DB:   gormDB,
		dsn:  dsn,
		pool: poolFromConfig(&cfg.Database),
	}
	if err := db.applyPoolSettings(); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping connection pool: %w", err)
	}

	return db, nil
}

// Reconnect attempts to reconnect to the database if the connection is lost
func (db *Database) Reconnect() error {
	newDB, err := gorm.Open(postgres.Open(db.dsn), gormConfig())
	if err != nil {
		return fmt.Errorf("failed to reconnect to database: %w", err)
	}

	db.DB = newDB
	return db.applyPoolSettings()
}

func (db *Database) applyPoolSettings() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(db.pool.maxIdleConns)
	sqlDB.SetMaxOpenConns(db.pool.maxOpenConns)
	sqlDB.SetConnMaxLifetime(db.pool.connMaxLifetime)
	return nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true, // Enables prepared statement caching
		NowFunc: func() time.Time {
			return time.Now().UTC() // Standardize time
		},
	}
}
