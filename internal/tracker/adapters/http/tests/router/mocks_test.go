package router_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leisurelog/internal/tracker/app/dto"
	"leisurelog/internal/tracker/domain/entities"
)

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) SendOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockAuthUseCase) VerifyOTP(ctx context.Context, email, otp string) (*dto.TokenResponse, error) {
	args := m.Called(ctx, email, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *mockAuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *mockAuthUseCase) ResolveUser(ctx context.Context, accessToken string) (*entities.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockEntryUseCase struct {
	mock.Mock
}

func (m *mockEntryUseCase) CanSubmit(ctx context.Context, user *entities.User) (*dto.CanSubmitResponse, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CanSubmitResponse), args.Error(1)
}

func (m *mockEntryUseCase) Submit(ctx context.Context, user *entities.User, req *dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EntryResponse), args.Error(1)
}

func (m *mockEntryUseCase) GetToday(ctx context.Context, user *entities.User) (*dto.EntryResponse, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EntryResponse), args.Error(1)
}

func (m *mockEntryUseCase) History(ctx context.Context, user *entities.User, period string, page, pageSize int) (*dto.EntryListResponse, error) {
	args := m.Called(ctx, user, period, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EntryListResponse), args.Error(1)
}

type mockStatisticsUseCase struct {
	mock.Mock
}

func (m *mockStatisticsUseCase) Overview(ctx context.Context, user *entities.User, period string) (*dto.OverallStats, error) {
	args := m.Called(ctx, user, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OverallStats), args.Error(1)
}

func (m *mockStatisticsUseCase) Trends(ctx context.Context, user *entities.User, days int) (*dto.TrendData, error) {
	args := m.Called(ctx, user, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TrendData), args.Error(1)
}

func (m *mockStatisticsUseCase) Reset(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockAdminUseCase struct {
	mock.Mock
}

func (m *mockAdminUseCase) AllUserStats(ctx context.Context) ([]*dto.UserStatsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.UserStatsResponse), args.Error(1)
}

func (m *mockAdminUseCase) NotesCorpus(ctx context.Context) (*dto.WordCloudResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WordCloudResponse), args.Error(1)
}
