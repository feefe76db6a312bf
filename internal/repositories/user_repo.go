package repositories

import (
	"context"
	"strings"

	"github.com/conterGui/Aconchego-Pap/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	// EnsureAdmin inserts the admin unless the email is already registered. It reports whether a row was created.
	EnsureAdmin(ctx context.Context, user *models.AdminUser) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

type userRepo struct {
	db Database
}

func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) EnsureAdmin(ctx context.Context, user *models.AdminUser) (bool, error) {
	query := `
		INSERT INTO admin_users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (email) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, user.ID, strings.ToLower(user.Email), user.Name, user.PasswordHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	user := &models.AdminUser{}
	query := `SELECT id, email, name, password_hash, created_at FROM admin_users WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	user := &models.AdminUser{}
	query := `SELECT id, email, name, password_hash, created_at FROM admin_users WHERE email = $1`
	err := r.db.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}
