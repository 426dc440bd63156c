package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/error_values"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/service"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/entity"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/httputil"
)

const dateLayout = "2006-01-02"

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type HabitRequest struct {
	Title         string `json:"title"`
	FrequencyType string `json:"frequency_type"`
	FrequencyData []int  `json:"frequency_data"`
}

type GoalRequest struct {
	Title         string `json:"title"`
	Description   string `json:"desc"`
	Type          string `json:"type"`
	TargetValue   int    `json:"target_value"`
	LinkedHabitID string `json:"linked_habit_id"`
	Deadline      string `json:"deadline,omitempty"`
}

type UpdateGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"desc"`
	TargetValue int    `json:"target_value"`
}

type GetHabitsResponse struct {
	UserID string                    `json:"uid"`
	Page   int                       `json:"page"`
	Limit  int                       `json:"limit"`
	Habits []*entity.HabitWithStatus `json:"habits"`
}

type ToggleHabitResponse struct {
	Checked bool          `json:"checked"`
	Habit   *entity.Habit `json:"habit"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such name already exists", nil)
			return
		}
		logger.Error("registering error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID.String(),
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("login error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user with such name doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid username or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID.String(),
		"token": token,
	})
	logger.Info("successful login")
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("account deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req DeleteAccountRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("account deletion error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.userService.DeleteAccount(ctx, uid, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("account deletion error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("account deletion error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid password", nil)
		default:
			logger.Error("account deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting account", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"message": "account removed"})
	logger.Info("account deleted")
}

func (s *Server) CreateHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create habit error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req HabitRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create habit error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	habit, err := s.habitService.CreateHabit(ctx, uid, &service.CreateHabitRequest{
		Title:         req.Title,
		FrequencyType: entity.FrequencyType(req.FrequencyType),
		FrequencyData: req.FrequencyData,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserHasHabit):
			logger.Error("create habit error: attempt to create existed habit")
			httputil.WriteErrorResponse(w, http.StatusConflict, "habit already exists", nil)
		case errors.Is(err, errorvalues.ErrInvalidFrequency):
			logger.Error("create habit error: invalid frequency settings")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid frequency settings", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("create habit error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create habit: user doesn't exists", nil)
		default:
			logger.Error("create habit error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, habit)
	logger.Info("habit created")
}

func (s *Server) GetHabits(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get habits error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	habits, err := s.habitService.GetUserHabits(ctx, uid, time.Now(), service.PaginationOpts{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error("getting habits list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting habits list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetHabitsResponse{
		UserID: uid.String(),
		Page:   page,
		Limit:  limit,
		Habits: habits,
	})
	logger.Info("habits provided")
}

func (s *Server) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("habit update error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("habit update error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	var req HabitRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("habit update error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	habit, err := s.habitService.UpdateHabit(ctx, id, uid, &service.CreateHabitRequest{
		Title:         req.Title,
		FrequencyType: entity.FrequencyType(req.FrequencyType),
		FrequencyData: req.FrequencyData,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("habit update error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrInvalidFrequency):
			logger.Error("habit update error: invalid frequency settings")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid frequency settings", nil)
		default:
			logger.Error("habit update error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, habit)
	logger.Info("habit updated")
}

func (s *Server) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("habit deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("habit deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.habitService.DeleteHabit(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("habit deletion error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("habit deletion error: habit has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("habit deletion error: service error")
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"message": "habit removed"})
	logger.Info("habit deleted")
}

func (s *Server) ToggleHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("habit toggle error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("habit toggle error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	checked, habit, err := s.checksService.ToggleHabit(ctx, id, uid, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("habit toggle error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("habit toggle error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while toggling habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ToggleHabitResponse{
		Checked: checked,
		Habit:   habit,
	})
	logger.Info("habit toggled")
}

func (s *Server) GetHabitChecks(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get checks error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get checks error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		logger.Error("get checks error: invalid from date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD", nil)
		return
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		logger.Error("get checks error: invalid to date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	checks, err := s.checksService.GetHabitChecks(ctx, id, uid, from, to)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get checks error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("get checks error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting checks", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"checks": checks})
	logger.Info("checks provided")
}

func (s *Server) CreateGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create goal error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req GoalRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create goal error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	linkedHabitID, err := uuid.Parse(req.LinkedHabitID)
	if err != nil {
		logger.Error("create goal error: goal without linked habit")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "goals must be linked to a habit", nil)
		return
	}
	var deadline *time.Time
	if req.Deadline != "" {
		d, err := time.Parse(dateLayout, req.Deadline)
		if err != nil {
			logger.Error("create goal error: invalid deadline")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid deadline, expected YYYY-MM-DD", nil)
			return
		}
		deadline = &d
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	goal, err := s.goalsService.CreateGoal(ctx, uid, &service.CreateGoalRequest{
		Title:         req.Title,
		Description:   req.Description,
		Type:          entity.GoalType(req.Type),
		TargetValue:   req.TargetValue,
		LinkedHabitID: linkedHabitID,
		Deadline:      deadline,
	}, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("create goal error: linked habit not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "linked habit not found", nil)
		default:
			logger.Error("create goal error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating goal", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, goal)
	logger.Info("goal created")
}

func (s *Server) GetGoals(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get goals error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	goals, err := s.goalsService.GetUserGoals(ctx, uid, service.PaginationOpts{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error("getting goals list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting goals list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   uid.String(),
		"page":  page,
		"limit": limit,
		"goals": goals,
	})
	logger.Info("goals provided")
}

func (s *Server) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("goal update error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("goal update error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id in path value", nil)
		return
	}
	var req UpdateGoalRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("goal update error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	goal, err := s.goalsService.UpdateGoal(ctx, id, uid, &service.UpdateGoalRequest{
		Title:       req.Title,
		Description: req.Description,
		TargetValue: req.TargetValue,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrGoalNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("goal update error: unexist goal")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "goal doesn't exist", nil)
		default:
			logger.Error("goal update error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating goal", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, goal)
	logger.Info("goal updated")
}

func (s *Server) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("goal deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("goal deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.goalsService.DeleteGoal(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrGoalNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("goal deletion error: unexist goal")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "goal doesn't exist", nil)
		default:
			logger.Error("goal deletion error: service error")
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting goal", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"message": "goal removed"})
	logger.Info("goal deleted")
}

func (s *Server) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("heatmap error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	cells, err := s.statsService.Heatmap(ctx, uid)
	if err != nil {
		logger.Error("heatmap error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while building heatmap", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, cells)
	logger.Info("heatmap provided")
}

func (s *Server) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	entries, err := s.statsService.Leaderboard(ctx)
	if err != nil {
		logger.Error("leaderboard error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while building leaderboard", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, entries)
	logger.Info("leaderboard provided")
}
