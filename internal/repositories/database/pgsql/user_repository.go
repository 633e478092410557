package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nepalfund/nepalfund_backend/internal/apperrors"
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"
	"github.com/nepalfund/nepalfund_backend/internal/models"
	"github.com/nepalfund/nepalfund_backend/internal/utils/mapping"
)

const userColumns = `user_id, email, password_hash, google_id, provider, first_name, last_name, photo,
	profile_completed, bio, gender, phone, username, dob, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.PasswordHash,
		&m.GoogleID,
		&m.Provider,
		&m.FirstName,
		&m.LastName,
		&m.Photo,
		&m.ProfileCompleted,
		&m.Bio,
		&m.Gender,
		&m.Phone,
		&m.Username,
		&m.DateOfBirth,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by %s: %w", where, err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id", userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *PgxUserRepository) FindUsersByEmailOrGoogleID(ctx context.Context, email, googleID string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR ($2::text <> '' AND google_id = $2) LIMIT 2;`
	rows, err := r.Pool.Query(ctx, query, email, googleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by email or google id: %w", err)
	}
	defer rows.Close()

	ms := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return mapping.ToDomainUserSlice(ms), nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.LastUpdatedAt.IsZero() {
		user.LastUpdatedAt = now
	}
	m := mapping.ToModelUser(user)

	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Email, m.PasswordHash, m.GoogleID, m.Provider, m.FirstName, m.LastName, m.Photo,
		m.ProfileCompleted, m.Bio, m.Gender, m.Phone, m.Username, m.DateOfBirth, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return nil, wrapWriteErr("failed to save user", err)
	}
	return &user, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	if m.LastUpdatedAt.IsZero() {
		m.LastUpdatedAt = time.Now().UTC()
	}
	query := `
        UPDATE users
        SET email = $1, password_hash = COALESCE($2, password_hash), google_id = COALESCE($3, google_id),
            provider = $4, first_name = $5, last_name = $6, photo = $7, profile_completed = $8,
            bio = $9, gender = $10, phone = $11, username = $12, updated_at = $13
        WHERE user_id = $14;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Email, m.PasswordHash, m.GoogleID, m.Provider, m.FirstName, m.LastName, m.Photo,
		m.ProfileCompleted, m.Bio, m.Gender, m.Phone, m.Username, m.LastUpdatedAt, m.UserID,
	)
	if err != nil {
		return wrapWriteErr("failed to execute update user query", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", m.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUserByEmail(ctx context.Context, email string, patch domain.ProfilePatch) (*domain.User, error) {
	sets, args := patchAssignments(patch)
	args = append(args, time.Now().UTC(), email)
	sets = append(sets, "updated_at = $"+strconv.Itoa(len(args)-1))

	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE email = $` + strconv.Itoa(len(args)) + ` RETURNING ` + userColumns + `;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapWriteErr("failed to update user by email", err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func patchAssignments(p domain.ProfilePatch) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	put := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}
	if p.FirstName != nil {
		put("first_name", *p.FirstName)
	}
	if p.LastName != nil {
		put("last_name", *p.LastName)
	}
	if p.Username != nil {
		put("username", *p.Username)
	}
	if p.Bio != nil {
		put("bio", *p.Bio)
	}
	if p.Gender != nil {
		put("gender", *p.Gender)
	}
	if p.Phone != nil {
		put("phone", *p.Phone)
	}
	if p.Photo != nil {
		put("photo", *p.Photo)
	}
	if p.ProfileCompleted != nil {
		put("profile_completed", *p.ProfileCompleted)
	}
	return sets, args
}
