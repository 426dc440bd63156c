package repository

import (
	"database/sql"
	"embed"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema up to date before any repository is constructed
func Migrate(cfg DBConfig) error {
	db, err := sql.Open("pgx", cfg.ConnString())
	if err != nil {
		return errors.New("opening migration connection error: " + err.Error())
	}
	defer db.Close()
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.New("setting goose dialect error: " + err.Error())
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return errors.New("applying migrations error: " + err.Error())
	}
	return nil
}
