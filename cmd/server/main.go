package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rishav-dahal/studyapp/internal/api"
	"github.com/rishav-dahal/studyapp/internal/config"
	"github.com/rishav-dahal/studyapp/internal/database"
	"github.com/rishav-dahal/studyapp/internal/stats"
)

const defaultSigningKey = "wT0phFUusHZIrDhL9bUKPUhwaxKhpi/SaI6PtgB+MgU="

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var (
	addr       string
	dsn        string
	signingKey string
	mediaDir   string
)

func main() {
	// .env is optional; explicit flags win over environment values
	_ = godotenv.Load()

	flag.StringVar(&addr, "addr", envOr("STUDYAPP_ADDR", "localhost:8000"), "server address")
	flag.StringVar(&dsn, "dsn", envOr("STUDYAPP_DSN", "host=localhost user=postgres password=postgres dbname=postgres sslmode=disable"), "database connection string")
	flag.StringVar(&signingKey, "signing-key", envOr("STUDYAPP_SIGNING_KEY", defaultSigningKey), "base64 encoded signing key")
	flag.StringVar(&mediaDir, "media-dir", envOr("STUDYAPP_MEDIA_DIR", "media"), "directory for uploaded files")
	flag.Parse()

	logger := log.New(os.Stderr, "[studyapp] ", log.LstdFlags)

	cfg, err := config.NewConfig(addr, dsn, signingKey, mediaDir)
	if err != nil {
		logger.Fatal("config:", err)
	}

	dbConn, err := database.NewPgStudyRepository(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db open:", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Fatal("db close:", err)
		}
	}()

	if err := dbConn.Migrate(); err != nil {
		logger.Fatal("migrate:", err)
	}

	mux := http.NewServeMux()

	statsUpdater := stats.NewStatsUpdater(mux)
	for _, name := range []string{
		stats.AccountsCreated,
		stats.Logins,
		stats.RoomsCreated,
		stats.MessagesPosted,
	} {
		statsUpdater.RegisterMetric(name)
	}

	srv, err := api.NewStudyApp(mux, logger, dbConn, statsUpdater, cfg)
	if err != nil {
		logger.Fatal("new app:", err)
	}

	statsUpdater.Run()
	defer statsUpdater.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("shutdown complete")
}
