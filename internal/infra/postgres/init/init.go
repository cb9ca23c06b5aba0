package infra_pg_init

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/humanbelnik/planpoker/core/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("schema migration failed: ", err)
	}

	return db
}

// Migrate creates the rooms and participants tables when missing.
func Migrate(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}
