package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

type FrequencyType string

const (
	FrequencyDaily  FrequencyType = "daily"
	FrequencyWeekly FrequencyType = "weekly"
	FrequencyCustom FrequencyType = "custom"
)

type Habit struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"uid"`
	Title  string    `json:"title"`
	// For weekly: weekday indices 0-6 (0 = Sunday). For custom: [interval_days]. Unused for daily
	FrequencyType     FrequencyType `json:"frequency_type"`
	FrequencyData     []int         `json:"frequency_data"`
	Streak            int           `json:"streak"`
	LastCompletedDate *time.Time    `json:"last_completed_date,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// HabitWithStatus decorates a habit with presentation flags for list reads
type HabitWithStatus struct {
	*Habit
	CompletedToday bool `json:"completed_today"`
	IsDueToday     bool `json:"is_due_today"`
}

type CheckStatus string

const (
	CheckCompleted CheckStatus = "completed"
	// Reserved, never written by the engine
	CheckMissed CheckStatus = "missed"
)

type HabitCheck struct {
	ID        int
	HabitID   uuid.UUID
	UserID    uuid.UUID
	CheckDate time.Time
	Status    CheckStatus
	CreatedAt time.Time
}

type GoalType string

const (
	GoalStreak        GoalType = "streak"
	GoalTotalCount    GoalType = "total_count"
	GoalDeadlineCount GoalType = "deadline_count"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalFailed    GoalStatus = "failed"
	GoalPaused    GoalStatus = "paused"
)

type Goal struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"uid"`
	Title         string     `json:"title"`
	Description   string     `json:"desc"`
	Type          GoalType   `json:"type"`
	TargetValue   int        `json:"target_value"`
	CurrentValue  int        `json:"current_value"`
	LinkedHabitID uuid.UUID  `json:"linked_habit_id"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Status        GoalStatus `json:"status"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HeatmapCell is one day of aggregated completions across all of a user's habits
type HeatmapCell struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type LeaderboardEntry struct {
	Username  string `json:"username"`
	MaxStreak int    `json:"max_streak"`
}
