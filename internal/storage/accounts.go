package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// LinkAccount stores a verified link. Any existing row sharing the uuid,
// username or Discord ID is removed first, so each identity is linked at
// most once. Both steps run in one transaction.
func (r *Repository) LinkAccount(ctx context.Context, a *LinkedAccount) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM linked_accounts WHERE discord = $1 OR username = $2 OR uuid = $3`,
		a.DiscordID, a.Username, a.UUID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove previous links: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO linked_accounts (uuid, username, discord, last_updated) VALUES ($1, $2, $3, $4)`,
		a.UUID, a.Username, a.DiscordID, a.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert linked account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit linked account: %w", err)
	}
	return nil
}

// GetAccountByDiscord finds the account linked to a Discord user
func (r *Repository) GetAccountByDiscord(ctx context.Context, discordID string) (*LinkedAccount, error) {
	a := &LinkedAccount{}
	err := r.db.QueryRowContext(ctx,
		`SELECT uuid, username, discord, last_updated FROM linked_accounts WHERE discord = $1`,
		discordID,
	).Scan(&a.UUID, &a.Username, &a.DiscordID, &a.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAccounts returns every linked account
func (r *Repository) ListAccounts(ctx context.Context) ([]*LinkedAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT uuid, username, discord, last_updated FROM linked_accounts ORDER BY last_updated`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*LinkedAccount
	for rows.Next() {
		a := &LinkedAccount{}
		if err := rows.Scan(&a.UUID, &a.Username, &a.DiscordID, &a.LastUpdated); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}
