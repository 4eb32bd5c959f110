package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/vodworks/episode2manifest/pkg/convert"
	"github.com/vodworks/episode2manifest/pkg/i18n"
)

const version = "0.2.0"

func main() {
	// Bootstrap logger for the config parsing, before we know the configured
	// level and encoding
	logger, err := newLogger("info", "console")
	if err != nil {
		panic(err)
	}

	config := parseConfig(logger)
	config.validate(logger)
	if logger, err = newLogger(config.LogLevel, config.LogEncoding); err != nil {
		panic(err)
	}
	configJSON, err := json.Marshal(config)
	if err != nil {
		logger.Fatal("Couldn't marshal config to JSON", zap.Error(err))
	}
	logger.Info("Parsed config", zap.ByteString("config", configJSON))

	// Create converter

	converter, err := convert.NewConverter(convert.Options{
		MainAudioContent:        config.MainAudioContent,
		VideoPreviewAttachments: config.VideoPreviewAttachments,
		PreviewAttachment:       config.PreviewAttachment,
	}, i18n.Default(), logger)
	if err != nil {
		logger.Fatal("Couldn't create converter", zap.Error(err))
	}

	// One-shot mode: convert a single file to stdout, no server

	if config.InputPath != "" {
		if err = convertFile(afero.NewOsFs(), config.InputPath, converter, os.Stdout); err != nil {
			logger.Fatal("Couldn't convert input file", zap.Error(err), zap.String("inputPath", config.InputPath))
		}
		return
	}

	// Endpoints

	logger.Info("Setting up server")
	app := fiber.New(fiber.Config{
		// Timeouts to avoid Slowloris attacks
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
	})
	app.Use(createLoggingMiddleware(logger))
	app.Get("/health", healthHandler)
	app.Post("/convert", createConvertHandler(converter, logger))
	app.Post("/preview", createPreviewHandler(config, logger))

	// Start server and handle graceful shutdown

	stopping := false
	stoppingPtr := &stopping

	addr := config.BindAddr + ":" + strconv.Itoa(config.Port)
	logger.Info("Starting server", zap.String("address", addr), zap.String("version", version))
	go func() {
		if err := app.Listen(addr); err != nil {
			if !*stoppingPtr {
				logger.Fatal("Couldn't start server", zap.Error(err))
			} else {
				logger.Fatal("Error in app.Listen() during server shutdown", zap.Error(err))
			}
		}
	}()

	c := make(chan os.Signal, 1)
	// Accept SIGINT (Ctrl+C) and SIGTERM (`docker stop`)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	logger.Info("Received signal, shutting down...", zap.String("signal", sig.String()))
	*stoppingPtr = true
	if err := app.Shutdown(); err != nil {
		logger.Fatal("Error shutting down server", zap.Error(err))
	}
	logger.Info("Server shut down")
}

// convertFile converts one search-results file and writes the manifest as
// indented JSON.
func convertFile(fs afero.Fs, path string, converter *convert.Converter, out io.Writer) error {
	doc, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("Couldn't read input file: %v", err)
	}
	manifest := converter.Convert(doc)
	if manifest == nil {
		return errors.New("document doesn't describe exactly one episode")
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err = encoder.Encode(manifest); err != nil {
		return fmt.Errorf("Couldn't encode manifest: %v", err)
	}
	return nil
}
