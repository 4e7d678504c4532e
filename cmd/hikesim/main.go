package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"hikesim/internal/app"
	"hikesim/internal/config"
)

func main() {
	godotenv.Load()

	ctx := context.Background()
	cfg := config.NewFromEnv()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	switch os.Args[1] {
	case "seed":
		seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
		file := seedCmd.String("file", cfg.SeedFile, "Path to the seed JSON file")
		reset := seedCmd.Bool("reset", false, "Delete existing trails first")
		seedCmd.Parse(os.Args[2:])

		if err := application.SeedTrails(ctx, *file, *reset); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	case "import-profiles":
		importCmd := flag.NewFlagSet("import-profiles", flag.ExitOnError)
		country := importCmd.String("country", "US", "Two-letter country code")
		limit := importCmd.Int("limit", 0, "Maximum trails to update (0 = no limit)")
		importCmd.Parse(os.Args[2:])

		if err := application.ImportProfiles(ctx, *country, *limit); err != nil {
			log.Fatalf("Profile import failed: %v", err)
		}
	case "clip":
		clipCmd := flag.NewFlagSet("clip", flag.ExitOnError)
		pageURL := clipCmd.String("url", "", "Trail page URL to scrape")
		country := clipCmd.String("country", "US", "Two-letter country code")
		state := clipCmd.String("state", "", "Optional state code")
		clipCmd.Parse(os.Args[2:])

		if *pageURL == "" {
			log.Fatal("clip requires -url")
		}
		if err := application.ClipTrail(ctx, *pageURL, *country, *state); err != nil {
			log.Fatalf("Clip failed: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: hikesim <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  seed             Load the bundled trail catalog into the database")
	fmt.Println("  import-profiles  Fetch elevation profiles for trails missing one")
	fmt.Println("  clip             Scrape a trail page and add it to the catalog")
}
