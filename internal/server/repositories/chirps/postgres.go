package chirps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/chirpy/internal/common"
	"github.com/dmitrijs2005/chirpy/internal/dbx"
	"github.com/dmitrijs2005/chirpy/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements the chirps Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID uuid.UUID, body string) (*models.Chirp, error) {
	query := `
		INSERT INTO chirps (body, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	chirp := &models.Chirp{Body: body, UserID: userID}
	err := r.db.QueryRowContext(ctx, query, body, userID).
		Scan(&chirp.ID, &chirp.CreatedAt, &chirp.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return chirp, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Chirp, error) {
	query := `
		SELECT id, body, user_id, created_at, updated_at
		FROM chirps
		WHERE id = $1
	`

	chirp := &models.Chirp{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&chirp.ID, &chirp.Body, &chirp.UserID, &chirp.CreatedAt, &chirp.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return chirp, nil
}

func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) ([]models.Chirp, error) {
	query := `
		SELECT id, body, user_id, created_at, updated_at
		FROM chirps
	`

	args := []any{}
	if opts.AuthorID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *opts.AuthorID)
	}
	if opts.Descending {
		query += ` ORDER BY created_at DESC`
	} else {
		query += ` ORDER BY created_at ASC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	chirps := []models.Chirp{}
	for rows.Next() {
		var chirp models.Chirp
		if err := rows.Scan(&chirp.ID, &chirp.Body, &chirp.UserID, &chirp.CreatedAt, &chirp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		chirps = append(chirps, chirp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return chirps, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM chirps
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
