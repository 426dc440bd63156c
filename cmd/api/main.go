// @title Habit-tracker API
// @description API for habit-tracker app with streaks and goals
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/api"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/repository"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/service"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/cleanup"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/config"
	jwtservice "github.com/pamplonajp45-eng/jpdev-habit-tracker/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	if err := repository.Migrate(&dbCfg); err != nil {
		log.Fatal("migration error: " + err.Error())
	}
	habitsRepo := repository.NewHabitsRepo(&dbCfg)
	checksRepo := repository.NewHabitChecksRepo(&dbCfg)
	goalsRepo := repository.NewGoalsRepo(&dbCfg)

	userService := service.NewUserService(repository.NewUsersRepo(&dbCfg))
	habitService := service.NewHabitsService(habitsRepo, checksRepo)
	goalsService := service.NewGoalsService(goalsRepo, habitsRepo, checksRepo)
	checksService := service.NewHabitChecksService(habitsRepo, checksRepo, goalsService)
	statsService := service.NewStatsService(habitsRepo, checksRepo)

	serv := api.New(&api.ServicesList{
		UserService:   userService,
		HabitsService: habitService,
		ChecksService: checksService,
		GoalsService:  goalsService,
		StatsService:  statsService,
		JwtService:    jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
