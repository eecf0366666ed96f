package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Ives-Natsume/botan-cw-decoder/internal/beacon"
	"github.com/Ives-Natsume/botan-cw-decoder/internal/config"
	"github.com/Ives-Natsume/botan-cw-decoder/internal/cw"
	"github.com/Ives-Natsume/botan-cw-decoder/internal/metrics"
	"github.com/Ives-Natsume/botan-cw-decoder/internal/report"
	"github.com/Ives-Natsume/botan-cw-decoder/internal/server"
	"github.com/Ives-Natsume/botan-cw-decoder/internal/session"
)

const (
	defaultConfigPath = "configs/config.yaml"
	serviceName       = "botan-cw-decoder"
	serviceVersion    = "1.0.0"
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Logging)

	logger.Info("Service starting",
		slog.String("service", serviceName),
		slog.String("version", serviceVersion),
		slog.String("config_path", *configPath),
	)

	// Legacy pattern decoder for non-beacon input.
	cwDecoder, err := buildCWDecoder(cfg.Decoder)
	if err != nil {
		logger.Error("Failed to load pattern mappings", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appMetrics := metrics.NewMetrics()
	tracker := session.NewTracker()

	var httpServer *server.HTTPServer
	if cfg.HTTP.Enabled {
		httpServer = server.NewHTTPServer(cfg.HTTP, logger, cfg, tracker, appMetrics)
		if err := httpServer.Start(); err != nil {
			logger.Error("Failed to start HTTP server", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	printBanner()

	// The REPL owns stdin; a signal or end of input both end the run.
	done := make(chan struct{})
	go func() {
		defer close(done)
		runLoop(cfg, logger, cwDecoder, appMetrics, tracker)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case <-done:
	}

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping HTTP server", slog.String("error", err.Error()))
		}
	}

	info := tracker.Snapshot()
	logger.Info("Final session statistics",
		slog.Uint64("lines_received", info.LinesReceived),
		slog.Uint64("frames_decoded", info.FramesDecoded),
		slog.Uint64("decode_errors", info.DecodeErrors),
		slog.Uint64("cw_decodes", info.CWDecodes),
		slog.String("uptime", info.Uptime),
	)

	logger.Info("Service stopped")
}

// loadConfig loads the given file, falling back to defaults when the
// default path simply does not exist. An explicit -config path must exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil && path == defaultConfigPath && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

// buildCWDecoder constructs the legacy pattern decoder, either from the
// built-in Morse table or from a configured mapping file.
func buildCWDecoder(cfg config.DecoderConfig) (*cw.Decoder, error) {
	if cfg.PatternsFile == "" {
		return cw.NewDecoder(), nil
	}
	return cw.FromFile(cfg.PatternsFile)
}

func printBanner() {
	fmt.Println("BOTAN Satellite Beacon Decoder")
	fmt.Println("==============================")
	fmt.Println("This decoder processes BOTAN satellite beacon messages.")
	fmt.Println("Expected format: BOTAN JS1YPT (Optional<RSSI>) <16-hex-digit-data>")
	fmt.Println("Example: BOTAN JS1YPT SI8640 A67C8D5E2AA13608")
	fmt.Println()
}

// runLoop reads lines from stdin until EOF or a quit command, dispatching
// each line to the beacon decoder or the legacy CW decoder.
func runLoop(cfg *config.Config, logger *slog.Logger, cwDecoder *cw.Decoder,
	m *metrics.Metrics, tracker *session.Tracker) {

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(cfg.Decoder.Prompt)

		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				logger.Error("Error reading input", slog.String("error", err.Error()))
			}
			return
		}

		input := strings.ToUpper(strings.TrimSpace(line))
		if input == "" {
			continue
		}
		if input == "QUIT" || input == "EXIT" {
			fmt.Println("Goodbye!")
			return
		}

		m.LinesReceived.Inc()
		tracker.RecordLine()

		if strings.HasPrefix(input, beacon.SatelliteName) {
			decodeBeacon(input, m, tracker)
		} else {
			decodeLegacy(input, cwDecoder, m, tracker)
		}
		fmt.Println()
	}
}

func decodeBeacon(input string, m *metrics.Metrics, tracker *session.Tracker) {
	frame, err := beacon.ParseFrame(input)
	if err != nil {
		fmt.Printf("BOTAN Parsing Error: %v\n", err)
		m.RecordDecodeError(err)
		tracker.RecordDecodeError(err)
		return
	}

	rec, err := beacon.DecodeTelemetry(frame.Payload)
	if err != nil {
		fmt.Printf("BOTAN Parsing Error: %v\n", err)
		m.RecordDecodeError(err)
		tracker.RecordDecodeError(err)
		return
	}

	m.RecordFrame(frame, rec)
	tracker.RecordFrame(frame, rec)
	fmt.Printf("\n%s", report.Render(frame, rec))
}

func decodeLegacy(input string, cwDecoder *cw.Decoder, m *metrics.Metrics, tracker *session.Tracker) {
	decoded, err := cwDecoder.Decode(input)
	if err != nil {
		fmt.Printf("Legacy Decoding Error: %v\n", err)
		m.CWDecodeErrors.Inc()
		tracker.RecordCWDecode(false)
		return
	}

	fmt.Printf("Legacy Morse Decoded: %s\n", decoded)
	m.CWDecodes.Inc()
	tracker.RecordCWDecode(true)
}

// initLogger creates and configures the structured logger based on configuration
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var output *os.File
	switch cfg.Output {
	case "stderr", "":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stderr\n", cfg.Output, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
