package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/nuttaponsrpn/Kiki-POS/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Client wraps the connection to the hosted query store. A Client built
// without store credentials is disabled: Enabled reports false, DB returns
// nil, and callers are expected to skip their remote calls entirely.
type Client struct {
	db *sql.DB
}

// New opens a connection to the store identified by cfg. When either the
// store URL or the API key is missing, it returns a disabled client and no
// error so the rest of the application can run with remote operations
// degraded to no-ops.
func New(cfg config.StoreConfig) (*Client, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		return &Client{}, nil
	}

	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid store URL: %w", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(time.Minute)

	return &Client{db: db}, nil
}

// NewWithDB wraps an existing database handle, used by tests
func NewWithDB(db *sql.DB) *Client {
	return &Client{db: db}
}

// buildDSN injects the API key as the connection credential
func buildDSN(cfg config.StoreConfig) (string, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return "", err
	}

	user := "postgres"
	if u.User != nil {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, cfg.APIKey)

	return u.String(), nil
}

// Enabled reports whether the client has a live store connection
func (c *Client) Enabled() bool {
	return c != nil && c.db != nil
}

// DB exposes the underlying handle; nil when the client is disabled
func (c *Client) DB() *sql.DB {
	if c == nil {
		return nil
	}
	return c.db
}

// Health pings the store and reports connection statistics
func (c *Client) Health(ctx context.Context) map[string]string {
	health := make(map[string]string)

	if !c.Enabled() {
		health["status"] = "disabled"
		health["message"] = "store credentials not configured, remote operations are no-ops"
		return health
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		health["status"] = "down"
		health["error"] = err.Error()
		return health
	}

	stats := c.db.Stats()
	health["status"] = "up"
	health["open_connections"] = fmt.Sprintf("%d", stats.OpenConnections)
	health["in_use"] = fmt.Sprintf("%d", stats.InUse)
	return health
}

// Close releases the store connection
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.db.Close()
}
