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

type GoalsRepository struct {
	conn PgConnection
}

func NewGoalsRepo(cfg DBConfig) *GoalsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for goalsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &GoalsRepository{
		conn: pool,
	}
}

func NewGoalsRepoWithConn(conn PgConnection) *GoalsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	return &GoalsRepository{
		conn: conn,
	}
}

func (gr *GoalsRepository) Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error) {
	var id uuid.UUID
	row := gr.conn.QueryRow(ctx,
		`INSERT INTO goals (user_id, title, description, type, target_value, linked_habit_id, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id;`,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Type,
		goal.TargetValue,
		goal.LinkedHabitID,
		goal.Deadline,
		entity.GoalActive,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// FK violation
			if pgErr.Code == "23503" {
				return uuid.UUID{}, errorvalues.ErrHabitNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating goal db error: " + err.Error())
	}
	return id, nil
}

func (gr *GoalsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goal entity.Goal
	goal.ID = id
	row := gr.conn.QueryRow(ctx,
		`SELECT user_id, title, description, type, target_value, current_value, linked_habit_id, deadline, status, completed_at, created_at, updated_at
		FROM goals WHERE id = $1;`, id)
	err := row.Scan(&goal.UserID, &goal.Title, &goal.Description, &goal.Type, &goal.TargetValue,
		&goal.CurrentValue, &goal.LinkedHabitID, &goal.Deadline, &goal.Status, &goal.CompletedAt,
		&goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrGoalNotFound
		}
		return nil, errors.New("getting goal by id error: " + err.Error())
	}
	return &goal, nil
}

func (gr *GoalsRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Goal, error) {
	rows, err := gr.conn.Query(ctx,
		`SELECT id, user_id, title, description, type, target_value, current_value, linked_habit_id, deadline, status, completed_at, created_at, updated_at
		FROM goals WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting goals by uid error: " + err.Error())
	}
	defer rows.Close()
	return scanGoals(rows)
}

func (gr *GoalsRepository) GetActiveByHabitID(ctx context.Context, habitID uuid.UUID) ([]*entity.Goal, error) {
	rows, err := gr.conn.Query(ctx,
		`SELECT id, user_id, title, description, type, target_value, current_value, linked_habit_id, deadline, status, completed_at, created_at, updated_at
		FROM goals WHERE linked_habit_id = $1 AND status = 'active';`, habitID)
	if err != nil {
		return nil, errors.New("getting active goals by habit error: " + err.Error())
	}
	defer rows.Close()
	return scanGoals(rows)
}

func scanGoals(rows pgx.Rows) ([]*entity.Goal, error) {
	goals := make([]*entity.Goal, 0)
	for rows.Next() {
		g := entity.Goal{}
		err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Type, &g.TargetValue,
			&g.CurrentValue, &g.LinkedHabitID, &g.Deadline, &g.Status, &g.CompletedAt,
			&g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling goal error: " + err.Error())
		}
		goals = append(goals, &g)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return goals, nil
}

func (gr *GoalsRepository) Update(ctx context.Context, goal *entity.Goal) error {
	ct, err := gr.conn.Exec(ctx,
		`UPDATE goals SET title = $1, description = $2, target_value = $3, updated_at = NOW() WHERE id = $4;`,
		goal.Title, goal.Description, goal.TargetValue, goal.ID,
	)
	if err != nil {
		return errors.New("error updating goal: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}

func (gr *GoalsRepository) UpdateProgress(ctx context.Context, id uuid.UUID, currentValue int, status entity.GoalStatus, completedAt *time.Time) error {
	ct, err := gr.conn.Exec(ctx,
		`UPDATE goals SET current_value = $1, status = $2, completed_at = $3, updated_at = NOW() WHERE id = $4;`,
		currentValue, status, completedAt, id,
	)
	if err != nil {
		return errors.New("error updating goal progress: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}

func (gr *GoalsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := gr.conn.Exec(ctx, `DELETE FROM goals WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting goal: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}
