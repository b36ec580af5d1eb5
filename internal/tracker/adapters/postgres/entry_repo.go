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

// Код SQLSTATE нарушения ограничения уникальности.
const uniqueViolationCode = "23505"

const entryColumns = `id, user_id, entry_date,
        casual_leisure_hours, casual_leisure_note,
        serious_leisure_hours, serious_leisure_note,
        project_leisure_hours, project_leisure_note,
        total_hours, created_at`

// EntryRepository реализует интерфейс repositories.EntryRepository для работы с Postgres.
type EntryRepository struct {
	pool PgxPoolInterface
}

// NewEntryRepository создает новый экземпляр репозитория записей.
func NewEntryRepository(pool PgxPoolInterface) repositories.EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create вставляет новую запись. Уникальность пары (пользователь, дата)
// гарантирует ограничение БД: нарушение транслируется в entities.ErrEntryExists,
// а не проверяется заранее, чтобы исключить гонку между конкурентными запросами.
func (r *EntryRepository) Create(ctx context.Context, entry *entities.Entry) (*entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "Create"))

	query := `
        INSERT INTO daily_entries (user_id, entry_date,
            casual_leisure_hours, casual_leisure_note,
            serious_leisure_hours, serious_leisure_note,
            project_leisure_hours, project_leisure_note,
            total_hours)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + entryColumns

	var created entities.Entry
	err := r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.EntryDate,
		entry.CasualHours,
		entry.CasualNote,
		entry.SeriousHours,
		entry.SeriousNote,
		entry.ProjectHours,
		entry.ProjectNote,
		entry.TotalHours,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.EntryDate,
		&created.CasualHours,
		&created.CasualNote,
		&created.SeriousHours,
		&created.SeriousNote,
		&created.ProjectHours,
		&created.ProjectNote,
		&created.TotalHours,
		&created.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "duplicate entry for date",
				zap.String("user_id", entry.UserID),
				zap.Time("entry_date", entry.EntryDate))
			return nil, entities.ErrEntryExists
		}
		log.Error(ctx, "error creating entry", zap.Error(err))
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	return &created, nil
}

// FindByUserAndDate находит запись пользователя за конкретную дату.
func (r *EntryRepository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "FindByUserAndDate"))

	query := `
        SELECT ` + entryColumns + `
        FROM daily_entries
        WHERE user_id = $1 AND entry_date = $2
    `

	var entry entities.Entry
	err := r.pool.QueryRow(ctx, query, userID, date).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.EntryDate,
		&entry.CasualHours,
		&entry.CasualNote,
		&entry.SeriousHours,
		&entry.SeriousNote,
		&entry.ProjectHours,
		&entry.ProjectNote,
		&entry.TotalHours,
		&entry.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "entry not found",
				zap.String("user_id", userID),
				zap.Time("entry_date", date))
			return nil, entities.ErrEntryNotFound
		}
		log.Error(ctx, "error finding entry", zap.Error(err))
		return nil, fmt.Errorf("error querying entry: %w", err)
	}

	return &entry, nil
}

// ListByUser возвращает страницу записей пользователя по убыванию даты
// вместе с общим количеством записей после фильтра по дате.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, since *time.Time, limit, offset int) ([]*entities.Entry, int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "ListByUser"))

	var total int
	var err error
	if since != nil {
		err = r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM daily_entries WHERE user_id = $1 AND entry_date >= $2`,
			userID, *since,
		).Scan(&total)
	} else {
		err = r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM daily_entries WHERE user_id = $1`,
			userID,
		).Scan(&total)
	}
	if err != nil {
		log.Error(ctx, "error counting entries", zap.Error(err))
		return nil, 0, fmt.Errorf("error counting entries: %w", err)
	}

	var rows pgx.Rows
	if since != nil {
		rows, err = r.pool.Query(ctx,
			`SELECT `+entryColumns+`
             FROM daily_entries
             WHERE user_id = $1 AND entry_date >= $2
             ORDER BY entry_date DESC
             LIMIT $3 OFFSET $4`,
			userID, *since, limit, offset,
		)
	} else {
		rows, err = r.pool.Query(ctx,
			`SELECT `+entryColumns+`
             FROM daily_entries
             WHERE user_id = $1
             ORDER BY entry_date DESC
             LIMIT $2 OFFSET $3`,
			userID, limit, offset,
		)
	}
	if err != nil {
		log.Error(ctx, "error listing entries", zap.Error(err))
		return nil, 0, fmt.Errorf("error listing entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		log.Error(ctx, "error scanning entries", zap.Error(err))
		return nil, 0, err
	}

	return entries, total, nil
}

// ListByUserSince возвращает все записи пользователя с даты since без пагинации.
func (r *EntryRepository) ListByUserSince(ctx context.Context, userID string, since *time.Time, ascending bool) ([]*entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "ListByUserSince"))

	order := "DESC"
	if ascending {
		order = "ASC"
	}

	var rows pgx.Rows
	var err error
	if since != nil {
		rows, err = r.pool.Query(ctx,
			`SELECT `+entryColumns+`
             FROM daily_entries
             WHERE user_id = $1 AND entry_date >= $2
             ORDER BY entry_date `+order,
			userID, *since,
		)
	} else {
		rows, err = r.pool.Query(ctx,
			`SELECT `+entryColumns+`
             FROM daily_entries
             WHERE user_id = $1
             ORDER BY entry_date `+order,
			userID,
		)
	}
	if err != nil {
		log.Error(ctx, "error listing entries", zap.Error(err))
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		log.Error(ctx, "error scanning entries", zap.Error(err))
		return nil, err
	}

	return entries, nil
}

// ListAll возвращает все записи всех пользователей.
func (r *EntryRepository) ListAll(ctx context.Context) ([]*entities.Entry, error) {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "ListAll"))

	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+`
         FROM daily_entries
         ORDER BY entry_date DESC`,
	)
	if err != nil {
		log.Error(ctx, "error listing all entries", zap.Error(err))
		return nil, fmt.Errorf("error listing all entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		log.Error(ctx, "error scanning entries", zap.Error(err))
		return nil, err
	}

	return entries, nil
}

// ResetUserData атомарно удаляет все записи пользователя и очищает
// подсказку last_entry_date. Обе операции выполняются в одной транзакции:
// частичное применение невозможно.
func (r *EntryRepository) ResetUserData(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "entry"), zap.String("method", "ResetUserData"))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "error starting reset transaction", zap.Error(err))
		return fmt.Errorf("error starting reset transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`DELETE FROM daily_entries WHERE user_id = $1`, userID,
	); err != nil {
		log.Error(ctx, "error deleting entries", zap.Error(err))
		return fmt.Errorf("error deleting entries: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET last_entry_date = NULL, updated_at = $2 WHERE id = $1`,
		userID, time.Now().UTC(),
	); err != nil {
		log.Error(ctx, "error clearing last entry date", zap.Error(err))
		return fmt.Errorf("error clearing last entry date: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "error committing reset transaction", zap.Error(err))
		return fmt.Errorf("error committing reset transaction: %w", err)
	}

	return nil
}

// scanEntries читает строки результата в срез записей.
func scanEntries(rows pgx.Rows) ([]*entities.Entry, error) {
	entries := make([]*entities.Entry, 0)
	for rows.Next() {
		var entry entities.Entry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.EntryDate,
			&entry.CasualHours,
			&entry.CasualNote,
			&entry.SeriousHours,
			&entry.SeriousNote,
			&entry.ProjectHours,
			&entry.ProjectNote,
			&entry.TotalHours,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}
