package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	leaderboardDto "scopri.app/eventilocali/internal/modules/leaderboard/dto"
)

type fakeLeaderboardService struct {
	entries []leaderboardDto.LeaderboardEntry
}

func (s *fakeLeaderboardService) GetLeaderboard(ctx context.Context) ([]leaderboardDto.LeaderboardEntry, error) {
	return s.entries, nil
}

func TestLeaderboardHandler_ReturnsBareArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewLeaderboardHandler(&fakeLeaderboardService{
		entries: []leaderboardDto.LeaderboardEntry{
			{Position: 1, Username: "giulia", EventCount: 7},
			{Position: 2, Username: "marco", EventCount: 4},
		},
	})

	router := gin.New()
	router.GET("/api/events/leaderboard", h.GetLeaderboard)

	req := httptest.NewRequest(http.MethodGet, "/api/events/leaderboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []leaderboardDto.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, 1, body[0].Position)
	assert.Equal(t, "giulia", body[0].Username)
}
