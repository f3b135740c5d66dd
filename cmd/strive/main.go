package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rowanvale/strive/internal/api"
	"github.com/rowanvale/strive/internal/cli"
	"github.com/rowanvale/strive/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	databaseURL := getEnv("DATABASE_URL", "")
	sqlitePath := getEnv("DB_PATH", filepath.Join("data", "strive.db"))

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			flags := flag.NewFlagSet("migrate", flag.ExitOnError)
			withDevUsers := flags.Bool("with-dev-users", false, "also seed an admin and a demo user")
			if err := flags.Parse(os.Args[2:]); err != nil {
				os.Exit(2)
			}
			if err := cli.RunMigrateCommand(databaseURL, sqlitePath, *withDevUsers); err != nil {
				log.Fatalf("migrate failed: %v", err)
			}
			return
		case "reset-password":
			flags := flag.NewFlagSet("reset-password", flag.ExitOnError)
			email := flags.String("email", "", "email of the account to reset")
			if err := flags.Parse(os.Args[2:]); err != nil {
				os.Exit(2)
			}
			if err := cli.RunResetPasswordCommand(databaseURL, sqlitePath, *email); err != nil {
				log.Fatalf("reset-password failed: %v", err)
			}
			return
		case "serve":
			// fall through to the server below
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q (expected serve, migrate or reset-password)\n", os.Args[1])
			os.Exit(2)
		}
	}

	runServer(databaseURL, sqlitePath)
}

func runServer(databaseURL string, sqlitePath string) {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	environment := getEnv("APP_ENV", api.EnvProduction)
	port := getEnv("PORT", "8080")
	secretKey := getEnv("SECRET_KEY", "")
	if secretKey == "" {
		if environment == api.EnvProduction {
			log.Fatal("SECRET_KEY is required in production")
		}
		secretKey = "dev_secret_key"
		log.Println("SECRET_KEY not set, using development fallback")
	}
	cronSecret := getEnv("CRON_SECRET", "")
	if cronSecret == "" {
		if environment == api.EnvProduction {
			log.Fatal("CRON_SECRET is required in production")
		}
		cronSecret = "dev_cron_secret"
		log.Println("CRON_SECRET not set, using development fallback")
	}

	database, err := db.Open(databaseURL, sqlitePath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("schema migration failed: %v", err)
	}
	if err := db.Seed(database); err != nil {
		log.Fatalf("catalog seed failed: %v", err)
	}

	handler := api.NewHandler(database, api.Config{
		SecretKey:    secretKey,
		CronSecret:   cronSecret,
		Environment:  environment,
		Location:     location,
		CookieSecure: environment == api.EnvProduction,
	})

	app := fiber.New(fiber.Config{
		AppName:               "Strive",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	var scheduler *cron.Cron
	if schedule := getEnv("CRON_SCHEDULE", ""); schedule != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			summary := handler.NotificationJob().RunAll(ctx, time.Now())
			log.Printf("notification job: late=%d start=%d ending=%d",
				summary.LateActivities.Created, summary.EventStart.Created, summary.EventEnding.Created)
		})
		if err != nil {
			log.Fatalf("invalid CRON_SCHEDULE: %v", err)
		}
		scheduler.Start()
		log.Printf("notification job scheduled: %s", schedule)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Strive listening on http://0.0.0.0:%s (env: %s, tz: %s)", port, environment, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
