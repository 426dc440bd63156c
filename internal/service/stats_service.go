package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/repository"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/entity"
)

// Top entries shown on the global leaderboard
const leaderboardLimit = 50

type StatsService struct {
	habitsRepo repository.HabitsRepositoryI
	checksRepo repository.HabitChecksRepositoryI
}

func NewStatsService(habitsRepo repository.HabitsRepositoryI, checksRepo repository.HabitChecksRepositoryI) *StatsService {
	if habitsRepo == nil || checksRepo == nil {
		log.Fatal("on stats service provided nil repos")
	}
	return &StatsService{
		habitsRepo: habitsRepo,
		checksRepo: checksRepo,
	}
}

// Heatmap aggregates a user's completions per calendar day together with the
// habit count at read time, for completion-density rendering
func (ss *StatsService) Heatmap(ctx context.Context, uid uuid.UUID) ([]entity.HeatmapCell, error) {
	cells, err := ss.checksRepo.CountPerDay(ctx, uid)
	if err != nil {
		return nil, errors.New("checks repository error: " + err.Error())
	}
	total, err := ss.habitsRepo.CountByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	if total == 0 {
		total = 1
	}
	for i := range cells {
		cells[i].Total = total
	}
	return cells, nil
}

func (ss *StatsService) Leaderboard(ctx context.Context) ([]entity.LeaderboardEntry, error) {
	entries, err := ss.habitsRepo.TopStreaks(ctx, leaderboardLimit)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return entries, nil
}
