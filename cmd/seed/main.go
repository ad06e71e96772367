// Package main provides a tool to seed the database with the default
// accounts and catalog without starting the server.
//
// Usage:
//
//	DATA_PATH=~/LibraSys/data go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/librasys/librasys-server/internal/store"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/LibraSys/data")
	}

	dbPath := filepath.Join(dataPath, "db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if err := s.SeedDefaults(ctx); err != nil {
		log.Fatalf("Failed to seed defaults: %v", err)
	}

	accounts, err := s.CountAccounts(ctx)
	if err != nil {
		log.Fatalf("Failed to count accounts: %v", err)
	}
	media, err := s.CountMedia(ctx)
	if err != nil {
		log.Fatalf("Failed to count media: %v", err)
	}

	fmt.Printf("Done: %d accounts, %d catalog items\n", accounts, media)
}
