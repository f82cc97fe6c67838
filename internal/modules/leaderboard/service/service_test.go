package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	leaderboardRepo "scopri.app/eventilocali/internal/modules/leaderboard/repository"
)

type fakeLeaderboardRepo struct {
	stats []leaderboardRepo.ReporterStats
	limit int
}

func (r *fakeLeaderboardRepo) TopReporters(ctx context.Context, limit int) ([]leaderboardRepo.ReporterStats, error) {
	r.limit = limit
	if len(r.stats) > limit {
		return r.stats[:limit], nil
	}
	return r.stats, nil
}

func TestLeaderboardService_PositionsAreOneBased(t *testing.T) {
	repo := &fakeLeaderboardRepo{stats: []leaderboardRepo.ReporterStats{
		{ReporterID: uuid.New(), Username: "giulia", EventCount: 7, ApprovedCount: 5, PendingCount: 1},
		{ReporterID: uuid.New(), Username: "marco", EventCount: 3, ApprovedCount: 3},
	}}
	svc := NewLeaderboardService(repo, nil)

	entries, err := svc.GetLeaderboard(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "giulia", entries[0].Username)
	assert.Equal(t, int64(7), entries[0].EventCount)
	assert.Equal(t, int64(5), entries[0].ApprovedCount)
	assert.Equal(t, 2, entries[1].Position)
	assert.Equal(t, "marco", entries[1].Username)
}

func TestLeaderboardService_CapsAtTen(t *testing.T) {
	var stats []leaderboardRepo.ReporterStats
	for i := 0; i < 15; i++ {
		stats = append(stats, leaderboardRepo.ReporterStats{ReporterID: uuid.New(), EventCount: int64(20 - i)})
	}
	repo := &fakeLeaderboardRepo{stats: stats}
	svc := NewLeaderboardService(repo, nil)

	entries, err := svc.GetLeaderboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, repo.limit)
	assert.Len(t, entries, 10)
}

func TestLeaderboardService_EmptyBoard(t *testing.T) {
	svc := NewLeaderboardService(&fakeLeaderboardRepo{}, nil)

	entries, err := svc.GetLeaderboard(context.Background())

	require.NoError(t, err)
	assert.Empty(t, entries)
}
