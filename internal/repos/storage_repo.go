package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// StorageRepo holds whole JSON documents under fixed keys. Every write
// replaces the full document; there are no partial updates.
type StorageRepo struct{ db *sqlx.DB }

func NewStorageRepo(db *sqlx.DB) *StorageRepo { return &StorageRepo{db: db} }

// Get returns the document for key, or found=false when absent.
func (r *StorageRepo) Get(key string) ([]byte, bool, error) {
	var value string
	err := r.db.Get(&value, `SELECT value FROM storage WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *StorageRepo) Put(key string, value []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO storage(key, value, updated_at)
		VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	return err
}

func (r *StorageRepo) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM storage WHERE key = ?`, key)
	return err
}
