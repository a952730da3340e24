package main

import (
	"database/sql"
	"embed"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	dsn := os.Getenv("PG_URL")
	if dsn == "" {
		log.Fatal("PG_URL is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("sql.Open: %s", err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("goose.SetDialect: %s", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose.Up: %s", err)
	}

	log.Println("migrations applied")
}
