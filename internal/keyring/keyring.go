package keyring

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habit-tracker/internal/constants"
)

var (
	ErrNotFound           = errors.New("connection string not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Status summarizes what the keyring holds for habit-tracker
type Status struct {
	Available bool
	Stored    bool
	// Redacted is the stored connection string with the user info masked
	Redacted string
}

// GetConnectionString returns the PostgreSQL connection string stored in the OS keyring
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func SetConnectionString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// GetStatus checks the keyring without returning the secret itself
func GetStatus() Status {
	connStr, err := GetConnectionString()
	switch {
	case err == nil:
		return Status{Available: true, Stored: true, Redacted: Redact(connStr)}
	case errors.Is(err, ErrNotFound):
		return Status{Available: true}
	default:
		return Status{}
	}
}

// Redact masks the user info of a URL-style connection string. DSN-style
// strings are reduced to their host and dbname parameters.
func Redact(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		if u.User != nil {
			u.User = url.User("redacted")
		}
		return u.String()
	}

	var kept []string
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(kv[0]) {
		case "host", "port", "dbname", "sslmode":
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}
