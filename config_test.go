package main

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/imjasonh/chessrules/chess"
)

// clearEnv blanks every variable parseConfig reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CHESS_SSH_PORT", "CHESS_AI_DEPTH", "CHESS_AI_TIMEOUT", "CHESS_HUMAN",
		"CHESS_LOG_LEVEL", "CHESS_LOG_FILE", "SSH_HOST_KEY_SECRET", "PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want Config
	}{{
		name: "defaults",
		args: []string{"-local"},
		want: Config{SSHPort: 2222, Local: true, Depth: 2, Think: 3 * time.Second, Human: "both", LogLevel: "info"},
	}, {
		name: "flags",
		args: []string{"-play", "-port", "2022", "-depth", "4", "-think", "500ms", "-human", "white", "-log-level", "debug"},
		want: Config{SSHPort: 2022, Play: true, Depth: 4, Think: 500 * time.Millisecond, Human: "white", LogLevel: "debug"},
	}, {
		name: "environment",
		env: map[string]string{
			"CHESS_SSH_PORT":      "2200",
			"CHESS_AI_DEPTH":      "3",
			"CHESS_AI_TIMEOUT":    "10s",
			"CHESS_HUMAN":         "black",
			"SSH_HOST_KEY_SECRET": "projects/p/secrets/host-key/versions/latest",
			"PORT":                "8080",
		},
		want: Config{
			SSHPort:       2200,
			Depth:         3,
			Think:         10 * time.Second,
			Human:         "black",
			LogLevel:      "info",
			HostKeySecret: "projects/p/secrets/host-key/versions/latest",
			HTTPPort:      "8080",
		},
	}, {
		name: "flags beat environment",
		env:  map[string]string{"CHESS_AI_DEPTH": "3"},
		args: []string{"-local", "-depth", "1"},
		want: Config{SSHPort: 2222, Local: true, Depth: 1, Think: 3 * time.Second, Human: "both", LogLevel: "info"},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			got, err := parseConfig(tt.args)
			if err != nil {
				t.Fatalf("parseConfig() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"unknown flag", nil, []string{"-local", "-bogus"}},
		{"port", nil, []string{"-local", "-port", "0"}},
		{"depth", nil, []string{"-local", "-depth", "0"}},
		{"think", nil, []string{"-local", "-think", "0s"}},
		{"human", nil, []string{"-local", "-human", "red"}},
		{"log level", nil, []string{"-local", "-log-level", "loud"}},
		{"no host key", nil, nil},
		{"malformed port env", map[string]string{"CHESS_SSH_PORT": "abc"}, []string{"-local"}},
		{"malformed depth env", map[string]string{"CHESS_AI_DEPTH": "deep"}, []string{"-local"}},
		{"malformed timeout env", map[string]string{"CHESS_AI_TIMEOUT": "soon"}, []string{"-local"}},
		// A bad environment value is reported even when a flag overrides it.
		{"malformed env under flag", map[string]string{"CHESS_SSH_PORT": "abc"}, []string{"-local", "-port", "2022"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := parseConfig(tt.args); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("parseConfig(%q) error = %v, want %v", tt.args, err, ErrInvalidConfig)
			}
		})
	}
}

func TestHumanPlays(t *testing.T) {
	tests := []struct {
		human        string
		white, black bool
	}{
		{"both", true, true},
		{"white", true, false},
		{"black", false, true},
		{"none", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.human, func(t *testing.T) {
			cfg := Config{Human: tt.human}
			if got := cfg.humanPlays(chess.White); got != tt.white {
				t.Errorf("humanPlays(White) = %t, want %t", got, tt.white)
			}
			if got := cfg.humanPlays(chess.Black); got != tt.black {
				t.Errorf("humanPlays(Black) = %t, want %t", got, tt.black)
			}
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	logger, closer, err := newLogger(Config{Play: true, LogLevel: "warn"})
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer closer.Close()

	if got := logger.GetLevel().String(); got != "warn" {
		t.Errorf("GetLevel() = %q, want %q", got, "warn")
	}
}
