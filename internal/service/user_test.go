package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserServiceImpl_ListUsers(t *testing.T) {
	users := new(UserRepositoryMock)
	users.On("ListUsers", mock.Anything, mock.MatchedBy(func(f domain.UserFilter) bool {
		return f.Search == "ali" && f.Page.Page == 1 && f.Page.Limit == 10
	})).Return([]domain.UserWithCounts{
		{User: domain.User{ID: 1, Name: "Alice"}, TotalReports: 4, ApprovedReports: 2},
	}, 1, nil)

	svc := NewUserService(new(TransactorMock), discardLogger(), users, nil, nil, new(StorageMock))

	list, err := svc.ListUsers(context.Background(), domain.UserFilter{Search: " ali "})
	require.NoError(t, err)

	require.Len(t, list.Users, 1)
	require.NotNil(t, list.Users[0].Count)
	assert.Equal(t, 4, list.Users[0].Count.FraudReports)
	assert.Equal(t, 2, list.Users[0].Count.ApprovedReports)
	assert.Equal(t, 1, list.Pagination.Pages)
}

func TestUserServiceImpl_UpdateProfile(t *testing.T) {
	users := new(UserRepositoryMock)
	users.On("UpdateProfile", mock.Anything, int64(7), "Alice B", (*string)(nil)).
		Return(&domain.User{ID: 7, Name: "Alice B"}, nil).Once()

	svc := NewUserService(new(TransactorMock), discardLogger(), users, nil, nil, new(StorageMock))

	u, err := svc.UpdateProfile(context.Background(), 7, "  Alice B ", strptr(" "))
	require.NoError(t, err)
	assert.Equal(t, "Alice B", u.Name)

	users.AssertExpectations(t)
}

func TestUserServiceImpl_GetUserActivity(t *testing.T) {
	users := new(UserRepositoryMock)
	query := new(ReportQueryRepositoryMock)

	users.On("GetUserByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Name: "Alice"}, nil)
	query.On("GetReportStats", mock.Anything, int64ptr(7)).Return(&domain.ReportStats{Total: 2, Pending: 1, Rejected: 1}, nil)
	query.On("ListReports", mock.Anything, mock.MatchedBy(func(f domain.ReportFilter) bool {
		return f.OwnerID != nil && *f.OwnerID == 7
	})).Return([]domain.Report{{ID: 1}, {ID: 2}}, 2, nil)

	svc := NewUserService(new(TransactorMock), discardLogger(), users, query, nil, new(StorageMock))

	act, err := svc.GetUserActivity(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "Alice", act.User.Name)
	assert.Equal(t, 2, act.Stats.Total)
	assert.Len(t, act.RecentReports, 2)

	t.Run("Failure: unknown user", func(t *testing.T) {
		users := new(UserRepositoryMock)
		users.On("GetUserByID", mock.Anything, int64(9)).Return(nil, apperrors.ErrNotFound)

		svc := NewUserService(new(TransactorMock), discardLogger(), users, query, nil, new(StorageMock))
		_, err := svc.GetUserActivity(context.Background(), 9)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestUserServiceImpl_DeleteUser(t *testing.T) {
	ctx := context.Background()
	unpublished := []domain.ReportStatus{domain.StatusPending, domain.StatusRejected}

	testCases := []struct {
		name        string
		setupMocks  func(users *UserRepositoryMock, cmd *ReportCommandRepositoryMock, store *StorageMock)
		commit      bool
		expectedErr error
	}{
		{
			name:   "Success: account and unpublished reports removed",
			commit: true,
			setupMocks: func(users *UserRepositoryMock, cmd *ReportCommandRepositoryMock, store *StorageMock) {
				cmd.On("DeleteReportsByOwner", mock.Anything, mock.Anything, int64(7), unpublished).
					Return([]domain.Image{{Filename: "x.png"}}, nil).Once()
				users.On("DeleteUser", mock.Anything, mock.Anything, int64(7)).Return(nil).Once()
				store.On("Delete", mock.Anything, "x.png").Return(nil).Once()
			},
		},
		{
			name: "Failure: unknown user keeps reports",
			setupMocks: func(users *UserRepositoryMock, cmd *ReportCommandRepositoryMock, store *StorageMock) {
				cmd.On("DeleteReportsByOwner", mock.Anything, mock.Anything, int64(7), unpublished).
					Return([]domain.Image{{Filename: "x.png"}}, nil).Once()
				users.On("DeleteUser", mock.Anything, mock.Anything, int64(7)).Return(apperrors.ErrNotFound).Once()
			},
			expectedErr: apperrors.ErrNotFound,
		},
		{
			name: "Failure: report cleanup error",
			setupMocks: func(users *UserRepositoryMock, cmd *ReportCommandRepositoryMock, store *StorageMock) {
				cmd.On("DeleteReportsByOwner", mock.Anything, mock.Anything, int64(7), unpublished).
					Return(nil, errors.New("db down")).Once()
			},
			expectedErr: errors.New("db down"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			transactor := new(TransactorMock)
			users := new(UserRepositoryMock)
			cmd := new(ReportCommandRepositoryMock)
			store := new(StorageMock)

			_, tx, smock := newMockDBAndTx(t)
			if tc.commit {
				smock.ExpectCommit()
			} else {
				smock.ExpectRollback()
			}

			transactor.On("BeginTxx", mock.Anything, (*sql.TxOptions)(nil)).Return(tx, nil).Once()
			tc.setupMocks(users, cmd, store)

			svc := NewUserService(transactor, discardLogger(), users, nil, cmd, store)
			err := svc.DeleteUser(ctx, 7)

			if tc.expectedErr != nil {
				assert.Error(t, err)
				if errors.Is(tc.expectedErr, apperrors.ErrNotFound) {
					assert.ErrorIs(t, err, apperrors.ErrNotFound)
				}
			} else {
				assert.NoError(t, err)
			}

			users.AssertExpectations(t)
			cmd.AssertExpectations(t)
			store.AssertExpectations(t)
			assert.NoError(t, smock.ExpectationsWereMet())
		})
	}
}
