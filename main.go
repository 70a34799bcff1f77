package main

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/payback-app/backend/internal/exchange"
	"github.com/payback-app/backend/internal/models"
	"github.com/payback-app/backend/internal/router"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create data directory
	dataDir := filepath.Join(".", "data")
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database
	err = models.Connect("data/payback.db")
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// The settings row identifies the current user; it is created on
	// first startup from the environment
	_, err = models.EnsureSettings(models.DB, os.Getenv("CURRENT_USER_NAME"), os.Getenv("ACCOUNT_EMAIL"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Without a bulk import URL, imports only update the local store
	var submitter exchange.Submitter = exchange.NoopSubmitter{}
	if url, ok := os.LookupEnv("BULK_IMPORT_URL"); ok {
		submitter = exchange.NewHTTPSubmitter(url)
	}

	chunkSize := 0
	if raw, ok := os.LookupEnv("BULK_IMPORT_CHUNK_SIZE"); ok {
		chunkSize, err = strconv.Atoi(raw)
		if err != nil {
			log.Fatal().Str("BULK_IMPORT_CHUNK_SIZE", raw).Msg("not a number")
		}
	}

	engine := exchange.New(models.DB, submitter, chunkSize)

	r, teardown, err := router.Config()
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(engine, r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
