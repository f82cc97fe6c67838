package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	leaderboardDto "scopri.app/eventilocali/internal/modules/leaderboard/dto"
	leaderboardRepo "scopri.app/eventilocali/internal/modules/leaderboard/repository"
)

const (
	leaderboardSize     = 10
	leaderboardCacheKey = "leaderboard:top_reporters"
	leaderboardCacheTTL = time.Minute
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context) ([]leaderboardDto.LeaderboardEntry, error)
}

type leaderboardService struct {
	repo        leaderboardRepo.LeaderboardRepository
	redisClient *redis.Client
}

func NewLeaderboardService(repo leaderboardRepo.LeaderboardRepository, redisClient *redis.Client) LeaderboardService {
	return &leaderboardService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// GetLeaderboard serves the ranking from a short-lived Redis cache when
// available; the cache is refreshed on miss and invalidated only by expiry.
func (s *leaderboardService) GetLeaderboard(ctx context.Context) ([]leaderboardDto.LeaderboardEntry, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, leaderboardCacheKey).Result()
		if err == nil && cached != "" {
			var entries []leaderboardDto.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		} else if err != nil && err != redis.Nil {
			log.Printf("Failed to read leaderboard cache: %v", err)
		}
	}

	stats, err := s.repo.TopReporters(ctx, leaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]leaderboardDto.LeaderboardEntry, 0, len(stats))
	for i, stat := range stats {
		entries = append(entries, leaderboardDto.LeaderboardEntry{
			Position:      i + 1,
			Username:      stat.Username,
			FirstName:     stat.FirstName,
			LastName:      stat.LastName,
			EventCount:    stat.EventCount,
			ApprovedCount: stat.ApprovedCount,
			PendingCount:  stat.PendingCount,
		})
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.redisClient.SetEx(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				log.Printf("Failed to write leaderboard cache: %v", err)
			}
		}
	}

	return entries, nil
}
