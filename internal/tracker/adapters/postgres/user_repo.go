package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"leisurelog/internal/tracker/domain/entities"
	"leisurelog/internal/tracker/ports/repositories"
	"leisurelog/pkg/logger"
)

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create создает нового пользователя. Уникальность provider_user_id и
// email гарантируют ограничения БД: нарушение транслируется в
// entities.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (provider_user_id, email)
        VALUES ($1, $2)
        RETURNING id, provider_user_id, email, created_at, updated_at, last_entry_date
    `

	var createdUser entities.User
	err := r.pool.QueryRow(ctx, query,
		user.ProviderUserID,
		user.Email,
	).Scan(
		&createdUser.ID,
		&createdUser.ProviderUserID,
		&createdUser.Email,
		&createdUser.CreatedAt,
		&createdUser.UpdatedAt,
		&createdUser.LastEntryDate,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "duplicate user",
				zap.String("provider_user_id", user.ProviderUserID),
				zap.String("constraint", pgErr.ConstraintName))
			return nil, entities.ErrUserExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &createdUser, nil
}

// FindByProviderID находит пользователя по идентификатору провайдера идентификации.
func (r *UserRepository) FindByProviderID(ctx context.Context, providerUserID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByProviderID"))

	query := `
        SELECT id, provider_user_id, email, created_at, updated_at, last_entry_date
        FROM users
        WHERE provider_user_id = $1
    `

	var user entities.User
	err := r.pool.QueryRow(ctx, query, providerUserID).Scan(
		&user.ID,
		&user.ProviderUserID,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastEntryDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("provider_user_id", providerUserID))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by provider id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by provider id: %w", err)
	}

	return &user, nil
}

// SetLastEntryDate обновляет подсказку last_entry_date пользователя.
func (r *UserRepository) SetLastEntryDate(ctx context.Context, userID string, date *time.Time) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "SetLastEntryDate"))

	query := `
        UPDATE users
        SET last_entry_date = $2, updated_at = $3
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, userID, date, time.Now().UTC())
	if err != nil {
		log.Error(ctx, "error updating last entry date", zap.Error(err))
		return fmt.Errorf("error updating last entry date: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for update", zap.String("id", userID))
		return entities.ErrUserNotFound
	}

	return nil
}

// ListAll возвращает всех пользователей, новые первыми.
func (r *UserRepository) ListAll(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "ListAll"))

	query := `
        SELECT id, provider_user_id, email, created_at, updated_at, last_entry_date
        FROM users
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		var user entities.User
		err := rows.Scan(
			&user.ID,
			&user.ProviderUserID,
			&user.Email,
			&user.CreatedAt,
			&user.UpdatedAt,
			&user.LastEntryDate,
		)
		if err != nil {
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}
