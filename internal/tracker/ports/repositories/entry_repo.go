package repositories

import (
	"context"
	"time"

	"leisurelog/internal/tracker/domain/entities"
)

// EntryRepository определяет интерфейс для операций с ежедневными записями.
// Уникальность пары (пользователь, дата) гарантируется самим хранилищем:
// Create возвращает entities.ErrEntryExists при попытке вставить дубликат.
type EntryRepository interface {
	Create(ctx context.Context, entry *entities.Entry) (*entities.Entry, error)

	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*entities.Entry, error)

	// ListByUser возвращает страницу записей пользователя, отсортированных
	// по дате по убыванию, и общее количество записей после фильтра.
	// nil since означает отсутствие фильтра по дате.
	ListByUser(ctx context.Context, userID string, since *time.Time, limit, offset int) ([]*entities.Entry, int, error)

	// ListByUserSince возвращает все записи пользователя с даты since
	// без пагинации в указанном порядке.
	ListByUserSince(ctx context.Context, userID string, since *time.Time, ascending bool) ([]*entities.Entry, error)

	// ListAll возвращает все записи всех пользователей.
	ListAll(ctx context.Context) ([]*entities.Entry, error)

	// ResetUserData атомарно удаляет все записи пользователя и очищает
	// подсказку last_entry_date. При любой ошибке выполняется полный откат.
	ResetUserData(ctx context.Context, userID string) error
}
