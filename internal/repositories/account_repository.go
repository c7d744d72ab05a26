// file: internal/repositories/account_repository.go
package repositories

import (
	"context"
	"fmt"

	"learnhub/internal/database"
	"learnhub/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ===============================
// EDUCATORS
// ===============================

// educatorRepository implements EducatorRepository on Postgres
type educatorRepository struct {
	*BaseRepository
}

// NewEducatorRepository creates a new educator repository
func NewEducatorRepository(db *database.Manager, logger *zap.Logger) EducatorRepository {
	return &educatorRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// courses is derived from authorship so it can never drift from courses.educator_id
const educatorSelect = `
	SELECT e.id, e.name, e.email, e.password_hash, e.bio, e.teaching_focus,
		e.restriction, e.created_at, e.updated_at,
		COALESCE((SELECT array_agg(c.id ORDER BY c.created_at) FROM courses c WHERE c.educator_id = e.id), '{}')
	FROM educators e`

// Create inserts an educator, assigning an id when none is set
func (r *educatorRepository) Create(ctx context.Context, educator *models.Educator) error {
	if educator.ID == "" {
		educator.ID = newID()
	}
	if educator.TeachingFocus == nil {
		educator.TeachingFocus = []string{}
	}
	educator.Courses = []string{}

	query := `
		INSERT INTO educators (id, name, email, password_hash, bio, teaching_focus)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.conn(ctx).QueryRowContext(ctx, query,
		educator.ID, educator.Name, educator.Email, educator.PasswordHash,
		educator.Bio, pq.Array(educator.TeachingFocus),
	).Scan(&educator.CreatedAt, &educator.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create educator: %w", mapError(err))
	}

	r.logger.Info("Educator created",
		zap.String("educator_id", educator.ID),
		zap.String("email", educator.Email),
	)
	return nil
}

// GetByID retrieves an educator with authored course ids
func (r *educatorRepository) GetByID(ctx context.Context, id string) (*models.Educator, error) {
	return r.getOne(ctx, educatorSelect+` WHERE e.id = $1`, id)
}

// GetByEmail retrieves an educator with authored course ids
func (r *educatorRepository) GetByEmail(ctx context.Context, email string) (*models.Educator, error) {
	return r.getOne(ctx, educatorSelect+` WHERE LOWER(e.email) = LOWER($1)`, email)
}

func (r *educatorRepository) getOne(ctx context.Context, query, arg string) (*models.Educator, error) {
	var e models.Educator
	err := r.conn(ctx).QueryRowContext(ctx, query, arg).Scan(
		&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Bio, pq.Array(&e.TeachingFocus),
		&e.Restriction, &e.CreatedAt, &e.UpdatedAt, pq.Array(&e.Courses),
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &e, nil
}

// SetRestriction updates the educator's restriction flag
func (r *educatorRepository) SetRestriction(ctx context.Context, educatorID string, restriction int) error {
	result, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE educators SET restriction = $2, updated_at = NOW() WHERE id = $1`, educatorID, restriction)
	if err != nil {
		return fmt.Errorf("failed to set restriction: %w", err)
	}
	return requireAffected(result)
}

// ===============================
// ADMINS
// ===============================

// adminRepository implements AdminRepository on Postgres
type adminRepository struct {
	*BaseRepository
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *database.Manager, logger *zap.Logger) AdminRepository {
	return &adminRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Upsert creates the admin or refreshes name and password for its email
func (r *adminRepository) Upsert(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = newID()
	}

	query := `
		INSERT INTO admins (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
			SET name = EXCLUDED.name, password_hash = EXCLUDED.password_hash
		RETURNING id, created_at`

	err := r.conn(ctx).QueryRowContext(ctx, query,
		admin.ID, admin.Name, admin.Email, admin.PasswordHash,
	).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert admin: %w", mapError(err))
	}
	return nil
}

// GetByEmail retrieves an admin
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	err := r.conn(ctx).QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM admins WHERE LOWER(email) = LOWER($1)`, email,
	).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}
