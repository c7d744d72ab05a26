// file: internal/repositories/user_repository.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"learnhub/internal/database"
	"learnhub/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// userRepository implements UserRepository on Postgres
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new learner repository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const userColumns = `id, name, email, password_hash, google_id, profile_image,
	restriction, category, created_at, updated_at`

// ===============================
// BASIC CRUD OPERATIONS
// ===============================

// Create inserts a learner, assigning an id when none is set
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	if user.Category == nil {
		user.Category = []string{}
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, google_id, profile_image, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.conn(ctx).QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.GoogleID, user.ProfileImage, pq.Array(user.Category),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapError(err))
	}

	r.logger.Info("User created",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)
	return nil
}

// GetByID retrieves a learner with purchases and wishlist
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a learner with purchases and wishlist
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

// GetByGoogleID retrieves the learner linked to a Google account
func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
}

// LinkGoogleID attaches a Google subject to an existing learner
func (r *userRepository) LinkGoogleID(ctx context.Context, userID, googleID string) error {
	result, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE users SET google_id = $2, updated_at = NOW() WHERE id = $1`, userID, googleID)
	if err != nil {
		return fmt.Errorf("failed to link google account: %w", mapError(err))
	}
	return requireAffected(result)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := r.conn(ctx).QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.GoogleID,
		&user.ProfileImage, &user.Restriction, pq.Array(&user.Category),
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	if err := r.loadRelations(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) loadRelations(ctx context.Context, user *models.User) error {
	rows, err := r.conn(ctx).QueryContext(ctx,
		`SELECT course_id, purchase_date FROM user_purchases WHERE user_id = $1 ORDER BY purchase_date`, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load purchases: %w", err)
	}
	defer rows.Close()

	user.PurchaseCourse = []models.PurchaseRecord{}
	for rows.Next() {
		var p models.PurchaseRecord
		if err := rows.Scan(&p.CourseID, &p.PurchaseDate); err != nil {
			return fmt.Errorf("failed to scan purchase: %w", err)
		}
		user.PurchaseCourse = append(user.PurchaseCourse, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	err = r.conn(ctx).QueryRowContext(ctx,
		`SELECT COALESCE(array_agg(course_id ORDER BY created_at), '{}') FROM user_wishlist WHERE user_id = $1`,
		user.ID,
	).Scan(pq.Array(&user.Wishlist))
	if err != nil {
		return fmt.Errorf("failed to load wishlist: %w", err)
	}
	return nil
}

// ===============================
// PURCHASES AND WISHLIST
// ===============================

// AddPurchase records ownership. ErrDuplicate if already purchased.
func (r *userRepository) AddPurchase(ctx context.Context, userID, courseID string, at time.Time) error {
	_, err := r.conn(ctx).ExecContext(ctx,
		`INSERT INTO user_purchases (user_id, course_id, purchase_date) VALUES ($1, $2, $3)`,
		userID, courseID, at)
	if err != nil {
		return fmt.Errorf("failed to add purchase: %w", mapError(err))
	}
	return nil
}

// ToggleWishlist adds the course when absent and removes it when present
func (r *userRepository) ToggleWishlist(ctx context.Context, userID, courseID string) (bool, error) {
	result, err := r.conn(ctx).ExecContext(ctx,
		`DELETE FROM user_wishlist WHERE user_id = $1 AND course_id = $2`, userID, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle wishlist: %w", mapError(err))
	}
	if n, _ := result.RowsAffected(); n > 0 {
		return false, nil
	}

	_, err = r.conn(ctx).ExecContext(ctx,
		`INSERT INTO user_wishlist (user_id, course_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle wishlist: %w", mapError(err))
	}
	return true, nil
}

// RemoveFromWishlist drops the course from the wishlist if present
func (r *userRepository) RemoveFromWishlist(ctx context.Context, userID, courseID string) error {
	_, err := r.conn(ctx).ExecContext(ctx,
		`DELETE FROM user_wishlist WHERE user_id = $1 AND course_id = $2`, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist entry: %w", err)
	}
	return nil
}

// SetRestriction updates the learner's restriction flag
func (r *userRepository) SetRestriction(ctx context.Context, userID string, restriction int) error {
	result, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE users SET restriction = $2, updated_at = NOW() WHERE id = $1`, userID, restriction)
	if err != nil {
		return fmt.Errorf("failed to set restriction: %w", err)
	}
	return requireAffected(result)
}
