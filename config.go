package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/imjasonh/chessrules/chess"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything the front end needs to start.
type Config struct {
	SSHPort  int
	Local    bool
	Play     bool
	Depth    int
	Think    time.Duration
	Human    string // "white", "black", "both" or "none"
	LogLevel string
	LogFile  string

	// HostKeySecret names the Secret Manager version holding the SSH
	// host key when not running with -local.
	HostKeySecret string
	// HTTPPort, when set, serves the WebSocket to SSH bridge.
	HTTPPort string
}

func parseConfig(args []string) (Config, error) {
	port, err := envInt("CHESS_SSH_PORT", 2222)
	if err != nil {
		return Config{}, err
	}
	depth, err := envInt("CHESS_AI_DEPTH", 2)
	if err != nil {
		return Config{}, err
	}
	think, err := envDuration("CHESS_AI_TIMEOUT", 3*time.Second)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	fs := flag.NewFlagSet("chessh", flag.ContinueOnError)

	fs.IntVar(&cfg.SSHPort, "port", port, "SSH server port")
	fs.BoolVar(&cfg.Local, "local", false, "run in local mode (generates/uses local host key instead of Secret Manager)")
	fs.BoolVar(&cfg.Play, "play", false, "play in this terminal instead of serving SSH")
	fs.IntVar(&cfg.Depth, "depth", depth, "search depth of the computer player")
	fs.DurationVar(&cfg.Think, "think", think, "time limit for each computer move")
	fs.StringVar(&cfg.Human, "human", envString("CHESS_HUMAN", "both"), "human players: white, black, both or none")
	fs.StringVar(&cfg.LogLevel, "log-level", envString("CHESS_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFile, "log-file", envString("CHESS_LOG_FILE", ""), "write logs to this file instead of stderr")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.HostKeySecret = os.Getenv("SSH_HOST_KEY_SECRET")
	cfg.HTTPPort = os.Getenv("PORT")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SSHPort < 1 || c.SSHPort > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.SSHPort)
	}
	if c.Depth < 1 {
		return fmt.Errorf("%w: depth must be at least 1, got %d", ErrInvalidConfig, c.Depth)
	}
	if c.Think <= 0 {
		return fmt.Errorf("%w: think time must be positive, got %v", ErrInvalidConfig, c.Think)
	}
	switch c.Human {
	case "white", "black", "both", "none":
	default:
		return fmt.Errorf("%w: unknown -human value %q", ErrInvalidConfig, c.Human)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !c.Play && !c.Local && c.HostKeySecret == "" {
		return fmt.Errorf("%w: SSH_HOST_KEY_SECRET is required unless -local or -play is set", ErrInvalidConfig)
	}
	return nil
}

// humanPlays reports whether a person moves for c.
func (c Config) humanPlays(color chess.Color) bool {
	switch c.Human {
	case "both":
		return true
	case "white":
		return color == chess.White
	case "black":
		return color == chess.Black
	}
	return false
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, v)
	}
	return d, nil
}

// newLogger builds the root logger. In -play mode the terminal belongs to
// the board, so logs go to the log file or nowhere.
func newLogger(cfg Config) (*log.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	case cfg.Play:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "chessh",
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	logger.SetLevel(level)
	return logger, closer, nil
}
