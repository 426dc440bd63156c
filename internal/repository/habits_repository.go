package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/error_values"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/cleanup"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/entity"
)

type HabitsRepository struct {
	conn PgConnection
}

func NewHabitsRepo(cfg DBConfig) *HabitsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for habitsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &HabitsRepository{
		conn: pool,
	}
}

func NewHabitsRepoWithConn(conn PgConnection) *HabitsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	return &HabitsRepository{
		conn: conn,
	}
}

func (hr *HabitsRepository) Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error) {
	var id uuid.UUID
	row := hr.conn.QueryRow(ctx,
		`INSERT INTO habits (user_id, title, frequency_type, frequency_data) VALUES ($1, $2, $3, $4) RETURNING id;`,
		habit.UserID,
		habit.Title,
		habit.FrequencyType,
		habit.FrequencyData,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return uuid.UUID{}, errorvalues.ErrUserHasHabit
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating habit db error: " + err.Error())
	}
	return id, nil
}

func (hr *HabitsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	var habit entity.Habit
	habit.ID = id
	row := hr.conn.QueryRow(ctx,
		`SELECT user_id, title, frequency_type, frequency_data, streak, last_completed_date, created_at, updated_at
		FROM habits WHERE id = $1;`, id)
	err := row.Scan(&habit.UserID, &habit.Title, &habit.FrequencyType, &habit.FrequencyData,
		&habit.Streak, &habit.LastCompletedDate, &habit.CreatedAt, &habit.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	return &habit, nil
}

func (hr *HabitsRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Habit, error) {
	habits := make([]*entity.Habit, 0)
	rows, err := hr.conn.Query(ctx,
		`SELECT id, user_id, title, frequency_type, frequency_data, streak, last_completed_date, created_at, updated_at
		FROM habits WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting habits by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		h := entity.Habit{}
		err = rows.Scan(&h.ID, &h.UserID, &h.Title, &h.FrequencyType, &h.FrequencyData,
			&h.Streak, &h.LastCompletedDate, &h.CreatedAt, &h.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		habits = append(habits, &h)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return habits, nil
}

func (hr *HabitsRepository) Update(ctx context.Context, habit *entity.Habit) error {
	ct, err := hr.conn.Exec(ctx,
		`UPDATE habits SET title = $1, frequency_type = $2, frequency_data = $3, updated_at = NOW() WHERE id = $4;`,
		habit.Title, habit.FrequencyType, habit.FrequencyData, habit.ID,
	)
	if err != nil {
		return errors.New("error updating habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (hr *HabitsRepository) UpdateStreak(ctx context.Context, id uuid.UUID, streak int, lastCompleted *time.Time) error {
	ct, err := hr.conn.Exec(ctx,
		`UPDATE habits SET streak = $1, last_completed_date = $2, updated_at = NOW() WHERE id = $3;`,
		streak, lastCompleted, id,
	)
	if err != nil {
		return errors.New("error updating habit streak: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (hr *HabitsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := hr.conn.Exec(ctx, `DELETE FROM habits WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (hr *HabitsRepository) CountByUserID(ctx context.Context, uid uuid.UUID) (int, error) {
	row := hr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM habits WHERE user_id = $1;`, uid)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting habits: " + err.Error())
	}
	return count, nil
}

func (hr *HabitsRepository) TopStreaks(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	rows, err := hr.conn.Query(ctx,
		`SELECT u.name, MAX(h.streak) AS max_streak FROM habits h
		JOIN users u ON u.id = h.user_id GROUP BY u.name ORDER BY max_streak DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, errors.New("getting top streaks error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.LeaderboardEntry, 0, limit)
	for rows.Next() {
		e := entity.LeaderboardEntry{}
		if err = rows.Scan(&e.Username, &e.MaxStreak); err != nil {
			return nil, errors.New("leaderboard row parsing error: " + err.Error())
		}
		result = append(result, e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected leaderboard rows error: " + rows.Err().Error())
	}
	return result, nil
}
