package activity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Append(ctx context.Context, userId int, entry Entry) (int, error)
	// GetAll lists entries newest first. limit of 0 means all.
	GetAll(ctx context.Context, userId int, limit int) ([]Entry, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Append(ctx context.Context, userId int, entry Entry) (int, error) {
	query := `INSERT INTO activity_log (action, details, created_at, user_id)
				VALUES ($1, $2, $3, $4) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		entry.Action,
		entry.Details,
		entry.CreatedAt.UTC().Format(time.RFC3339),
		userId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not append activity entry: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int, limit int) ([]Entry, error) {
	query := `SELECT id, action, details, created_at FROM activity_log
				WHERE user_id = $1 ORDER BY id DESC`
	args := []any{userId}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query activity log: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Details, &createdAt); err != nil {
			err := fmt.Errorf("could not scan activity entry: %w", err)
			log.Error(err)
			return nil, err
		}
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}
