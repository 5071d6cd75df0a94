package main

import (
	"database/sql"
	"flag"
	"log"
	"nav-eval-service/internal/adapters/repositories"
	"nav-eval-service/internal/config"
	"nav-eval-service/internal/platform/db"
)

// dbtool initializes the schema and seeds reference routes.
// It targets Postgres when DATABASE_URL is set and the SQLite file at DB_PATH otherwise.
func main() {
	config.LoadDotEnv()

	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/samples.json"), "Path to the samples JSON file")
	schemaOnly := flag.Bool("schema-only", false, "Create tables without seeding")
	flag.Parse()

	var (
		conn    *sql.DB
		dialect repositories.Dialect
		err     error
	)
	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		conn, err = db.Open(databaseURL)
		dialect = repositories.Postgres
	} else {
		conn, err = db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
		dialect = repositories.SQLite
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *schemaOnly {
		return
	}

	log.Printf("Seeding database path=%s...", *seedPath)
	if err := repositories.SeedFromJSON(conn, dialect, *seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
