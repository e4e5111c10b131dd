package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilKumar1122/pr-pilot/internal/models"
)

func openTestStore(t *testing.T) *StatusStore {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndLatest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, models.JobStatus{
		TaskID: "t1", Repository: "org/repo", PRNumber: 42,
		Status: models.JobStatusRetrying, Attempt: 1, Error: "fetch failed",
	}))
	require.NoError(t, s.Record(ctx, models.JobStatus{
		TaskID: "t1", Repository: "org/repo", PRNumber: 42,
		Status: models.JobStatusSuccess, Attempt: 2,
	}))

	latest, err := s.Latest(ctx, "org/repo", 42)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusSuccess, latest.Status)
	assert.Equal(t, 2, latest.Attempt)
	assert.Empty(t, latest.Error)
}

func TestLatestNoRows(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Latest(context.Background(), "org/unknown", 1)

	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRecordAfterClose(t *testing.T) {
	s, err := Open("file::memory:?cache=shared")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Record(context.Background(), models.JobStatus{
		TaskID: "t1", Repository: "org/repo", PRNumber: 42,
		Status: models.JobStatusSuccess, Attempt: 1,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_ERROR")
}

func TestLatestScopedToPR(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, models.JobStatus{
		TaskID: "t1", Repository: "org/repo", PRNumber: 1, Status: models.JobStatusError, Attempt: 3,
	}))
	require.NoError(t, s.Record(ctx, models.JobStatus{
		TaskID: "t2", Repository: "org/repo", PRNumber: 2, Status: models.JobStatusSuccess, Attempt: 0,
	}))

	latest, err := s.Latest(ctx, "org/repo", 1)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusError, latest.Status)
}
