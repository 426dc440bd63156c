package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pamplonajp45-eng/jpdev-habit-tracker/internal/service"
)

type Server struct {
	mx            *chi.Mux
	userService   service.UserServiceI
	habitService  service.HabitsServiceI
	checksService service.HabitChecksServiceI
	goalsService  service.GoalsServiceI
	statsService  service.StatsServiceI
	jwtService    JWTServiceI
}

type ServicesList struct {
	UserService   service.UserServiceI
	HabitsService service.HabitsServiceI
	ChecksService service.HabitChecksServiceI
	GoalsService  service.GoalsServiceI
	StatsService  service.StatsServiceI
	JwtService    JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:            chi.NewMux(),
		userService:   servicesOptions.UserService,
		habitService:  servicesOptions.HabitsService,
		checksService: servicesOptions.ChecksService,
		goalsService:  servicesOptions.GoalsService,
		statsService:  servicesOptions.StatsService,
		jwtService:    servicesOptions.JwtService,
	}
}

func (s *Server) Routes() http.Handler {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Delete("/auth/account", s.DeleteAccount)
			r.Get("/habits", s.GetHabits)
			r.Post("/habits", s.CreateHabit)
			r.Put("/habits/{id}", s.UpdateHabit)
			r.Delete("/habits/{id}", s.DeleteHabit)
			r.Post("/habits/{id}/toggle", s.ToggleHabit)
			r.Get("/habits/{id}/checks", s.GetHabitChecks)
			r.Get("/goals", s.GetGoals)
			r.Post("/goals", s.CreateGoal)
			r.Put("/goals/{id}", s.UpdateGoal)
			r.Delete("/goals/{id}", s.DeleteGoal)
			r.Get("/stats/heatmap", s.GetHeatmap)
			r.Get("/stats/leaderboard", s.GetLeaderboard)
		})
	})
	return s.mx
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.Routes())
}
