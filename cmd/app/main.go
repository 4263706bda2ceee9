package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"conversion-engine/internal/adapters/cli"
	"conversion-engine/internal/app"
	"conversion-engine/internal/db"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: app <convert|replay|packaging|schema> [flags]")
		os.Exit(2)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	svc := app.NewAppService(pool)
	cli.Run(ctx, svc, os.Args[1:])
}
