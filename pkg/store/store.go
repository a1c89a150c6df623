// Package store persists the mapping from Discord user id to wallet address.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/xanadu-labs/coinbot/pkg/errs"
)

// Account links a platform user to a wallet address. The user id is the
// natural key; re-linking overwrites the previous address.
type Account struct {
	UserID        string
	WalletAddress string
	LinkedAt      time.Time
}

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, "open database", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS accounts (
		discord_user_id TEXT PRIMARY KEY,
		wallet_address  TEXT NOT NULL,
		linked_at       DATETIME NOT NULL
	)`)
	if err != nil {
		return errs.Wrap(errs.KindPersistence, "create accounts table", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Link upserts the user's wallet address (last-write-wins).
func (s *Store) Link(ctx context.Context, userID, address string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (discord_user_id, wallet_address, linked_at) VALUES (?, ?, ?)
		 ON CONFLICT(discord_user_id) DO UPDATE SET wallet_address = excluded.wallet_address, linked_at = excluded.linked_at`,
		userID, address, time.Now().UTC())
	if err != nil {
		return errs.Wrap(errs.KindPersistence, "link account", err)
	}
	return nil
}

// FindByUser looks up the account by user id. A missing account is a normal
// outcome reported through the bool, not an error.
func (s *Store) FindByUser(ctx context.Context, userID string) (*Account, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT discord_user_id, wallet_address, linked_at FROM accounts WHERE discord_user_id = ?", userID)

	var account Account
	err := row.Scan(&account.UserID, &account.WalletAddress, &account.LinkedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(errs.KindPersistence, "find account", err)
	}
	return &account, true, nil
}
