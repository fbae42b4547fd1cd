package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ideacrafter/ideacrafter/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo on a SQLite database.
type SQLiteProfileRepo struct {
	db *sql.DB
}

// NewSQLiteProfileRepo creates a profile repo.
func NewSQLiteProfileRepo(db *sql.DB) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: db}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT id, user_type, full_name, company, industry, bio, created_at, updated_at
		FROM profiles WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var p domain.Profile
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.UserType, &p.FullName, &p.Company, &p.Industry, &p.Bio, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	now := time.Now().UTC()
	query := `INSERT INTO profiles (id, user_type, full_name, company, industry, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_type = excluded.user_type,
			full_name = excluded.full_name,
			company = excluded.company,
			industry = excluded.industry,
			bio = excluded.bio,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserType, p.FullName, p.Company, p.Industry, p.Bio,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	p.UpdatedAt = now
	return nil
}
