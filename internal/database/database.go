package database

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"socialnetwork/internal/config"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type DB struct {
	*sqlx.DB
}

func DSN(cfg config.DB) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DbHOST,
		cfg.DbPORT,
		cfg.DbUSER,
		cfg.DbPASSWORD,
		cfg.DbNAME,
		cfg.DbSSLMODE,
	)
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	logrus.WithFields(logrus.Fields{
		"host":   cfg.DB.DbHOST,
		"dbname": cfg.DB.DbNAME,
	}).Info("Connecting to database")

	db, err := sqlx.Connect("postgres", DSN(cfg.DB))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}

	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	logrus.Info("Connected to PostgreSQL")
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations applies every embedded migration in name order. Each file is idempotent.
func (db *DB) RunMigrations() error {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		migrationSQL, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		logrus.WithField("file", name).Info("Applying migration")

		if _, err := db.Exec(string(migrationSQL)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}

	logrus.WithField("count", len(names)).Info("Migrations applied")
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}
