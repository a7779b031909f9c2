package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/rentadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/rentadmin/internal/common"
	"github.com/dmitrijs2005/rentadmin/internal/dbx"
)

const loginCountKey = "session_logins"

// MetadataTokenStore keeps the token in the local SQLite metadata table.
type MetadataTokenStore struct {
	db   *sql.DB
	repo *metadata.SQLiteRepository
}

func NewMetadataTokenStore(db *sql.DB) *MetadataTokenStore {
	return &MetadataTokenStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

func (m *MetadataTokenStore) LoadToken(ctx context.Context) (string, error) {
	e, err := m.repo.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return "", err
	}
	return string(e.Value), nil
}

// SaveToken writes the token and bumps the login counter in one transaction.
func (m *MetadataTokenStore) SaveToken(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.repo.WithTx(tx)
		if err := repo.Put(ctx, common.SessionTokenKey, []byte(token)); err != nil {
			return err
		}

		n := 0
		e, err := repo.Get(ctx, loginCountKey)
		switch {
		case err == nil:
			n, _ = strconv.Atoi(string(e.Value))
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}
		return repo.Put(ctx, loginCountKey, []byte(strconv.Itoa(n+1)))
	})
}

func (m *MetadataTokenStore) ClearToken(ctx context.Context) error {
	return m.repo.Delete(ctx, common.SessionTokenKey)
}

// Logins returns how many logins were persisted on this machine.
func (m *MetadataTokenStore) Logins(ctx context.Context) (int, error) {
	e, err := m.repo.Get(ctx, loginCountKey)
	if errors.Is(err, common.ErrorNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(string(e.Value))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", loginCountKey, err)
	}
	return n, nil
}
