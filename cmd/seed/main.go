package main

import (
	"context"
	"flag"
	"log"

	"gettupp-server/internal/auth/processor"
	"gettupp-server/internal/config"
	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"
)

// Creates an admin account so staff can log in to a fresh deployment.
func main() {
	email := flag.String("email", "", "admin email address")
	name := flag.String("name", "", "admin display name")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		log.Fatal("usage: seed -email <email> -name <name> -password <password>")
	}

	logger := observability.NewLogger()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}

	dataStore, err := store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %s", err)
	}

	hashed, err := processor.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %s", err)
	}

	admin, err := dataStore.CreateAdmin(ctx, *email, *name, hashed)
	if err != nil {
		log.Fatalf("failed to create admin: %s", err)
	}

	log.Printf("admin created: %s (%s)", admin.Email, admin.ID)
}
