// Package sqlite is an embedded transaction store on gorm and mattn/go-sqlite3.
// It is used for local runs and for database-backed tests without PostgreSQL.
package sqlite

import (
	"fmt"
	"strings"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
    transaction_id      TEXT PRIMARY KEY,
    account_number_from TEXT NOT NULL,
    account_type_from   TEXT NOT NULL
        CHECK (account_type_from IN ('CHECKING', 'SAVINGS', 'CREDIT', 'INVESTMENT')),
    account_number_to   TEXT NOT NULL,
    account_type_to     TEXT NOT NULL
        CHECK (account_type_to IN ('CHECKING', 'SAVINGS', 'CREDIT', 'INVESTMENT')),
    trace_number        TEXT NOT NULL UNIQUE CHECK (length(trace_number) = 32),
    amount              TEXT NOT NULL
        CHECK (CAST(amount AS REAL) > 0 AND CAST(amount AS REAL) <= 999999999.99),
    creation_date       TIMESTAMP NOT NULL,
    memo                TEXT NOT NULL CHECK (length(memo) <= 255)
);
CREATE INDEX IF NOT EXISTS idx_transactions_creation_date ON transactions (creation_date DESC);
`

// Open opens (creating if needed) the database file at path and ensures the schema.
// Writers take the lock at BEGIN and wait up to five seconds for it.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(gormsqlite.Open(dsn(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "_busy_timeout=5000&_txlock=immediate&_foreign_keys=on"
}
