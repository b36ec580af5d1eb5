package entryusecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leisurelog/internal/tracker/app"
	"leisurelog/internal/tracker/domain/entities"
)

func makeEntries(userID string, dates ...time.Time) []*entities.Entry {
	entries := make([]*entities.Entry, 0, len(dates))
	for i, d := range dates {
		entries = append(entries, &entities.Entry{
			ID:          string(rune('a' + i)),
			UserID:      userID,
			EntryDate:   d,
			CasualHours: 1.0,
			TotalHours:  1.0,
		})
	}
	return entries
}

func TestHistory(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	weekAgo := today.AddDate(0, 0, -7)
	testUser := &entities.User{ID: "user-1"}

	tests := []struct {
		name        string
		period      string
		page        int
		pageSize    int
		setupMocks  func(entryRepo *mockEntryRepository)
		checkTotal  int
		checkPages  int
		checkCount  int
		expectedErr error
	}{
		{
			name:     "success - first page of full history",
			period:   "",
			page:     1,
			pageSize: 2,
			setupMocks: func(entryRepo *mockEntryRepository) {
				entryRepo.On("ListByUser", mock.Anything, "user-1", (*time.Time)(nil), 2, 0).
					Return(makeEntries("user-1", today, today.AddDate(0, 0, -1)), 5, nil).Once()
			},
			checkTotal: 5,
			checkPages: 3,
			checkCount: 2,
		},
		{
			name:     "success - week period passes date filter",
			period:   "week",
			page:     1,
			pageSize: 10,
			setupMocks: func(entryRepo *mockEntryRepository) {
				entryRepo.On("ListByUser", mock.Anything, "user-1", mock.MatchedBy(func(since *time.Time) bool {
					return since != nil && since.Equal(weekAgo)
				}), 10, 0).
					Return(makeEntries("user-1", today), 1, nil).Once()
			},
			checkTotal: 1,
			checkPages: 1,
			checkCount: 1,
		},
		{
			name:     "success - page beyond range is empty with real total",
			period:   "",
			page:     4,
			pageSize: 10,
			setupMocks: func(entryRepo *mockEntryRepository) {
				entryRepo.On("ListByUser", mock.Anything, "user-1", (*time.Time)(nil), 10, 30).
					Return([]*entities.Entry{}, 5, nil).Once()
			},
			checkTotal: 5,
			checkPages: 1,
			checkCount: 0,
		},
		{
			name:     "success - empty history has zero pages",
			period:   "",
			page:     1,
			pageSize: 10,
			setupMocks: func(entryRepo *mockEntryRepository) {
				entryRepo.On("ListByUser", mock.Anything, "user-1", (*time.Time)(nil), 10, 0).
					Return([]*entities.Entry{}, 0, nil).Once()
			},
			checkTotal: 0,
			checkPages: 0,
			checkCount: 0,
		},
		{
			name:        "error - zero page",
			period:      "",
			page:        0,
			pageSize:    10,
			setupMocks:  func(_ *mockEntryRepository) {},
			expectedErr: entities.ErrInvalidPage,
		},
		{
			name:        "error - page size above maximum",
			period:      "",
			page:        1,
			pageSize:    101,
			setupMocks:  func(_ *mockEntryRepository) {},
			expectedErr: entities.ErrInvalidPageSize,
		},
		{
			name:        "error - unknown period",
			period:      "year",
			page:        1,
			pageSize:    10,
			setupMocks:  func(_ *mockEntryRepository) {},
			expectedErr: entities.ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entryRepo := new(mockEntryRepository)
			userRepo := new(mockUserRepository)
			tt.setupMocks(entryRepo)

			useCase := app.NewEntryUseCase(entryRepo, userRepo, fixedClock(now))

			res, err := useCase.History(context.Background(), testUser, tt.period, tt.page, tt.pageSize)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.checkTotal, res.Total)
				assert.Equal(t, tt.checkPages, res.TotalPages)
				assert.Len(t, res.Entries, tt.checkCount)
				assert.Equal(t, tt.page, res.Page)
				assert.Equal(t, tt.pageSize, res.PageSize)
			}

			entryRepo.AssertExpectations(t)
		})
	}
}
