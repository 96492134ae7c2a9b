package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/charmbracelet/keygen"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

// hostKeyOption picks the server's host key: a local ed25519 key under the
// user's home directory with -local, or the PEM stored in Secret Manager.
func hostKeyOption(ctx context.Context, cfg Config, logger *log.Logger) (ssh.Option, error) {
	if cfg.Local {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		keyPath := filepath.Join(homeDir, ".chessh", "host_key")
		if err := ensureHostKey(keyPath, logger); err != nil {
			return nil, err
		}
		logger.Info("running in local mode", "host_key", keyPath)
		return wish.WithHostKeyPath(keyPath), nil
	}

	pem, err := fetchHostKey(ctx, cfg.HostKeySecret)
	if err != nil {
		return nil, err
	}
	logger.Info("running in cloud mode with Secret Manager")
	return wish.WithHostKeyPEM(pem), nil
}

// ensureHostKey generates an ed25519 key pair at keyPath unless one is
// already there.
func ensureHostKey(keyPath string, logger *log.Logger) error {
	if _, err := os.Stat(keyPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat host key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if _, err := keygen.New(keyPath, keygen.WithKeyType(keygen.Ed25519), keygen.WithWrite()); err != nil {
		return fmt.Errorf("failed to generate host key: %w", err)
	}
	logger.Info("generated new SSH host key", "path", keyPath)
	return nil
}

func fetchHostKey(ctx context.Context, name string) ([]byte, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to access secret version: %w", err)
	}
	return resp.GetPayload().GetData(), nil
}
