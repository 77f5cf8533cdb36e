// Package sqlite implements a stocks.Store in a SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/etnz/stocks"
	_ "github.com/mattn/go-sqlite3"
)

// Schema is the table holding the positions. Decimals are stored as text so
// that the stored precision is kept exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS positions (
	ticker    TEXT PRIMARY KEY,
	quantity  TEXT NOT NULL,
	buy_price TEXT NOT NULL
);`

// Store persists the ledger in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens, or creates, the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create schema in %q: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Load implements stocks.Store.
func (s *Store) Load() (*stocks.Ledger, error) {
	rows, err := s.db.Query(`SELECT ticker, quantity, buy_price FROM positions ORDER BY ticker`)
	if err != nil {
		return stocks.NewLedger(), fmt.Errorf("%w: %v", stocks.ErrPersistenceCorrupt, err)
	}
	defer rows.Close()

	var positions []stocks.Position
	for rows.Next() {
		var ticker, quantity, price string
		if err := rows.Scan(&ticker, &quantity, &price); err != nil {
			return stocks.NewLedger(), fmt.Errorf("%w: %v", stocks.ErrPersistenceCorrupt, err)
		}
		q, err := stocks.ParseQuantity(quantity)
		if err != nil {
			return stocks.NewLedger(), fmt.Errorf("%w: %s quantity %q: %v", stocks.ErrPersistenceCorrupt, ticker, quantity, err)
		}
		p, err := stocks.ParseMoney(price)
		if err != nil {
			return stocks.NewLedger(), fmt.Errorf("%w: %s buy price %q: %v", stocks.ErrPersistenceCorrupt, ticker, price, err)
		}
		positions = append(positions, stocks.Position{Ticker: ticker, Quantity: q, AverageCost: p})
	}
	if err := rows.Err(); err != nil {
		return stocks.NewLedger(), fmt.Errorf("%w: %v", stocks.ErrPersistenceCorrupt, err)
	}

	ledger, err := stocks.RestoreLedger(positions)
	if err != nil {
		return stocks.NewLedger(), err
	}
	return ledger, nil
}

// Save implements stocks.Store. The previous content is replaced in a single transaction.
func (s *Store) Save(l *stocks.Ledger) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM positions`); err != nil {
		return err
	}
	for p := range l.Positions() {
		_, err = tx.Exec(`INSERT INTO positions (ticker, quantity, buy_price) VALUES (?, ?, ?)`,
			p.Ticker, p.Quantity.Round().String(), p.AverageCost.Round().Decimal().String())
		if err != nil {
			return fmt.Errorf("could not save %s: %w", p.Ticker, err)
		}
	}
	return tx.Commit()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ stocks.Store = (*Store)(nil)
