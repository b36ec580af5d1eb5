package entryusecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leisurelog/internal/tracker/app"
	"leisurelog/internal/tracker/app/dto"
	"leisurelog/internal/tracker/domain/entities"
)

var errStorage = errors.New("storage unavailable")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string {
	return &s
}

func TestSubmit(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	testUser := &entities.User{ID: "user-1", Email: "user@example.com"}

	tests := []struct {
		name        string
		req         *dto.CreateEntryRequest
		setupMocks  func(entryRepo *mockEntryRepository, userRepo *mockUserRepository)
		check       func(t *testing.T, res *dto.EntryResponse)
		expectedErr error
	}{
		{
			name: "success - entry created with derived total",
			req: &dto.CreateEntryRequest{
				CasualLeisureHours:  2.5,
				SeriousLeisureHours: 1.5,
				ProjectLeisureHours: 1.0,
				CasualLeisureNote:   strPtr("  watched a movie  "),
			},
			setupMocks: func(entryRepo *mockEntryRepository, userRepo *mockUserRepository) {
				entryRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entities.Entry) bool {
					return e.UserID == "user-1" &&
						e.EntryDate.Equal(today) &&
						e.TotalHours == 5.0 &&
						e.CasualNote != nil && *e.CasualNote == "watched a movie" &&
						e.SeriousNote == nil
				})).Return(&entities.Entry{
					ID:          "entry-1",
					UserID:      "user-1",
					EntryDate:   today,
					CasualHours: 2.5, SeriousHours: 1.5, ProjectHours: 1.0,
					TotalHours: 5.0,
					CreatedAt:  now,
				}, nil).Once()
				userRepo.On("SetLastEntryDate", mock.Anything, "user-1", mock.MatchedBy(func(d *time.Time) bool {
					return d != nil && d.Equal(today)
				})).Return(nil).Once()
			},
			check: func(t *testing.T, res *dto.EntryResponse) {
				t.Helper()
				assert.Equal(t, "2025-06-15", res.EntryDate)
				assert.InDelta(t, 5.0, res.TotalHours, 1e-9)
			},
		},
		{
			name: "success - retroactive entry keeps hint untouched",
			req: &dto.CreateEntryRequest{
				EntryDate:          "2025-06-14",
				CasualLeisureHours: 3.0,
			},
			setupMocks: func(entryRepo *mockEntryRepository, _ *mockUserRepository) {
				entryRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entities.Entry) bool {
					return e.EntryDate.Equal(yesterday)
				})).Return(&entities.Entry{
					ID: "entry-2", UserID: "user-1", EntryDate: yesterday,
					CasualHours: 3.0, TotalHours: 3.0, CreatedAt: now,
				}, nil).Once()
			},
			check: func(t *testing.T, res *dto.EntryResponse) {
				t.Helper()
				assert.Equal(t, "2025-06-14", res.EntryDate)
			},
		},
		{
			name: "success - whitespace-only note becomes absent",
			req: &dto.CreateEntryRequest{
				CasualLeisureHours: 1.0,
				ProjectLeisureNote: strPtr("   "),
			},
			setupMocks: func(entryRepo *mockEntryRepository, userRepo *mockUserRepository) {
				entryRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *entities.Entry) bool {
					return e.ProjectNote == nil
				})).Return(&entities.Entry{
					ID: "entry-3", UserID: "user-1", EntryDate: today,
					CasualHours: 1.0, TotalHours: 1.0, CreatedAt: now,
				}, nil).Once()
				userRepo.On("SetLastEntryDate", mock.Anything, "user-1", mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, res *dto.EntryResponse) {
				t.Helper()
				assert.Nil(t, res.ProjectLeisureNote)
			},
		},
		{
			name: "error - category hours above daily maximum",
			req: &dto.CreateEntryRequest{
				CasualLeisureHours: 25.0,
			},
			setupMocks:  func(_ *mockEntryRepository, _ *mockUserRepository) {},
			expectedErr: entities.ErrHoursOutOfRange,
		},
		{
			name: "error - negative category hours",
			req: &dto.CreateEntryRequest{
				CasualLeisureHours:  -1.0,
				SeriousLeisureHours: 2.0,
			},
			setupMocks:  func(_ *mockEntryRepository, _ *mockUserRepository) {},
			expectedErr: entities.ErrHoursOutOfRange,
		},
		{
			name:        "error - all-zero submission",
			req:         &dto.CreateEntryRequest{},
			setupMocks:  func(_ *mockEntryRepository, _ *mockUserRepository) {},
			expectedErr: entities.ErrTotalHoursNotPositive,
		},
		{
			name: "error - total above daily maximum",
			req: &dto.CreateEntryRequest{
				CasualLeisureHours:  10.0,
				SeriousLeisureHours: 10.0,
				ProjectLeisureHours: 10.0,
			},
			setupMocks:  func(_ *mockEntryRepository, _ *mockUserRepository) {},
			expectedErr: entities.ErrTotalHoursExceeded,
		},
		{
			name: "error - malformed entry date",
			req: &dto.CreateEntryRequest{
				EntryDate:          "15.06.2025",
				CasualLeisureHours: 1.0,
			},
			setupMocks:  func(_ *mockEntryRepository, _ *mockUserRepository) {},
			expectedErr: entities.ErrInvalidEntryDate,
		},
		{
			name: "error - duplicate date surfaces conflict",
			req: &dto.CreateEntryRequest{
				CasualLeisureHours: 1.0,
			},
			setupMocks: func(entryRepo *mockEntryRepository, _ *mockUserRepository) {
				entryRepo.On("Create", mock.Anything, mock.Anything).
					Return(nil, entities.ErrEntryExists).Once()
			},
			expectedErr: entities.ErrEntryExists,
		},
		{
			name: "error - storage failure on create",
			req: &dto.CreateEntryRequest{
				CasualLeisureHours: 1.0,
			},
			setupMocks: func(entryRepo *mockEntryRepository, _ *mockUserRepository) {
				entryRepo.On("Create", mock.Anything, mock.Anything).
					Return(nil, errStorage).Once()
			},
			expectedErr: errStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entryRepo := new(mockEntryRepository)
			userRepo := new(mockUserRepository)
			tt.setupMocks(entryRepo, userRepo)

			useCase := app.NewEntryUseCase(entryRepo, userRepo, fixedClock(now))

			res, err := useCase.Submit(context.Background(), testUser, tt.req)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				require.NotNil(t, res)
				if tt.check != nil {
					tt.check(t, res)
				}
			}

			entryRepo.AssertExpectations(t)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestSubmitHintFailure(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	testUser := &entities.User{ID: "user-1"}

	entryRepo := new(mockEntryRepository)
	userRepo := new(mockUserRepository)

	entryRepo.On("Create", mock.Anything, mock.Anything).Return(&entities.Entry{
		ID: "entry-1", UserID: "user-1", EntryDate: today,
		CasualHours: 2.0, TotalHours: 2.0, CreatedAt: now,
	}, nil).Once()
	userRepo.On("SetLastEntryDate", mock.Anything, "user-1", mock.Anything).
		Return(errStorage).Once()

	useCase := app.NewEntryUseCase(entryRepo, userRepo, fixedClock(now))

	res, err := useCase.Submit(context.Background(), testUser, &dto.CreateEntryRequest{
		CasualLeisureHours: 2.0,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errStorage)
	assert.Nil(t, res)

	entryRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}
