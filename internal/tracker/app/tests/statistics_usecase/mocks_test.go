package statisticsusecase_test

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"

	"leisurelog/internal/tracker/domain/entities"
)

var errStorage = errors.New("storage unavailable")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type mockEntryRepository struct {
	mock.Mock
}

func (m *mockEntryRepository) Create(ctx context.Context, entry *entities.Entry) (*entities.Entry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Entry), args.Error(1)
}

func (m *mockEntryRepository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*entities.Entry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Entry), args.Error(1)
}

func (m *mockEntryRepository) ListByUser(ctx context.Context, userID string, since *time.Time, limit, offset int) ([]*entities.Entry, int, error) {
	args := m.Called(ctx, userID, since, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Entry), args.Int(1), args.Error(2)
}

func (m *mockEntryRepository) ListByUserSince(ctx context.Context, userID string, since *time.Time, ascending bool) ([]*entities.Entry, error) {
	args := m.Called(ctx, userID, since, ascending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entry), args.Error(1)
}

func (m *mockEntryRepository) ListAll(ctx context.Context) ([]*entities.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Entry), args.Error(1)
}

func (m *mockEntryRepository) ResetUserData(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
