package entryusecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"leisurelog/internal/tracker/domain/entities"
)

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

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByProviderID(ctx context.Context, providerUserID string) (*entities.User, error) {
	args := m.Called(ctx, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) SetLastEntryDate(ctx context.Context, userID string, date *time.Time) error {
	return m.Called(ctx, userID, date).Error(0)
}

func (m *mockUserRepository) ListAll(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}
