// Package store manages the Firestore client used by all repositories.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// ErrPermissionDenied is returned by repositories when an administrative
// operation is attempted through a restricted client.
var ErrPermissionDenied = errors.New("store: operation not permitted in restricted mode")

// Access is the capability a Client carries. It is fixed at construction
// time; repositories built on a restricted client refuse administrative
// operations before ever reaching Firestore. Actual data-plane enforcement
// for restricted clients is delegated to Firestore security rules.
type Access int

const (
	// AccessPrivileged grants unrestricted store access. Only for trusted
	// server-side contexts.
	AccessPrivileged Access = iota

	// AccessRestricted is subject to Firestore security rules and excludes
	// administrative operations (delete, collection-wide listing of
	// protected collections).
	AccessRestricted
)

// String returns a readable name for logging.
func (a Access) String() string {
	if a == AccessRestricted {
		return "restricted"
	}
	return "privileged"
}

// Client wraps a Firestore client together with its access capability.
type Client struct {
	fs        *firestore.Client
	access    Access
	projectID string
	database  string
}

// Config holds configuration for the Firestore client.
type Config struct {
	ProjectID   string // GCP project ID (required)
	Database    string // database name (optional, defaults to "(default)")
	Credentials string // path to service account JSON (optional)
	Access      Access // capability of the resulting client
}

// NewClient creates a Firestore client. If FIRESTORE_EMULATOR_HOST is set,
// the client connects to the emulator and the credentials file is ignored.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("projectID is required")
	}

	emulatorHost := os.Getenv("FIRESTORE_EMULATOR_HOST")
	if emulatorHost != "" {
		log.Printf("Using Firestore emulator at %s", emulatorHost)
	}

	var opts []option.ClientOption
	if cfg.Credentials != "" && emulatorHost == "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Credentials))
	}

	database := cfg.Database
	if database == "" {
		database = "(default)"
	}

	fs, err := firestore.NewClientWithDatabase(ctx, cfg.ProjectID, database, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &Client{
		fs:        fs,
		access:    cfg.Access,
		projectID: cfg.ProjectID,
		database:  database,
	}, nil
}

// Wrap builds a Client around an externally owned firestore.Client.
// The caller remains responsible for closing the underlying client.
func Wrap(fs *firestore.Client, access Access) *Client {
	return &Client{fs: fs, access: access}
}

// Firestore exposes the underlying Firestore client.
func (c *Client) Firestore() *firestore.Client {
	return c.fs
}

// Access returns the capability this client was constructed with.
func (c *Client) Access() Access {
	return c.access
}

// Privileged reports whether administrative operations are permitted.
func (c *Client) Privileged() bool {
	return c.access == AccessPrivileged
}

// Close releases resources held by the Firestore client.
func (c *Client) Close() error {
	if c.fs == nil {
		return nil
	}
	return c.fs.Close()
}
