// Package warehouse provides read-only connectivity to the MS SQL Server
// pipeline warehouse. The warehouse is the system of record for deals; the
// sync job mirrors its rows into the local pipeline store.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb" // MS SQL Server driver
	"github.com/meridian-crm/monitor-api/internal/config"
	"go.uber.org/zap"
)

const (
	// Default retry configuration for connection attempts
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 10 * time.Second
	defaultBackoffFactor  = 2.0

	// Default health check timeout
	defaultHealthCheckTimeout = 5 * time.Second
)

// dealQuery reads the full deal set from the warehouse view. The view is
// maintained by the BI team; owner_email is the cross-system identity key.
const dealQuery = `
SELECT deal_id, title, stage, outcome, value, owner_email, stage_entered_at, closed_at
FROM dbo.v_pipeline_deals
ORDER BY deal_id`

// DealRow is one deal as the warehouse reports it. Owners are identified by
// email; the sync job resolves them against the local user store.
type DealRow struct {
	DealID         string
	Title          string
	Stage          string
	Outcome        string
	Value          float64
	OwnerEmail     string
	StageEnteredAt time.Time
	ClosedAt       *time.Time
}

// Client provides read-only access to the MS SQL Server pipeline warehouse.
// It manages connection pooling and typed deal queries.
type Client struct {
	db           *sql.DB
	config       *config.WarehouseConfig
	logger       *zap.Logger
	queryTimeout time.Duration
}

// HealthStatus represents the health check result for the warehouse connection
type HealthStatus struct {
	Status     string        `json:"status"`
	Latency    time.Duration `json:"latency_ms"`
	Error      string        `json:"error,omitempty"`
	MaxOpen    int           `json:"max_open_connections"`
	Open       int           `json:"open_connections"`
	InUse      int           `json:"in_use"`
	Idle       int           `json:"idle"`
	WaitCount  int64         `json:"wait_count"`
	WaitTimeMs int64         `json:"wait_time_ms"`
}

// NewClient creates a new pipeline warehouse client with the given
// configuration. Returns nil if the warehouse is not enabled or not
// configured; callers treat a nil client as "no warehouse".
// The client establishes a connection pool with retry logic for transient
// failures.
func NewClient(cfg *config.WarehouseConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("pipeline warehouse connection disabled")
		return nil, nil
	}

	if cfg.URL == "" || cfg.User == "" || cfg.Password == "" {
		logger.Warn("pipeline warehouse enabled but missing credentials, skipping connection",
			zap.Bool("url_present", cfg.URL != ""),
			zap.Bool("user_present", cfg.User != ""),
			zap.Bool("password_present", cfg.Password != ""),
		)
		return nil, nil
	}

	logger.Info("initializing pipeline warehouse connection",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
		zap.Int("conn_max_lifetime_seconds", cfg.ConnMaxLifetime),
		zap.Int("query_timeout_seconds", cfg.QueryTimeout),
	)

	connStr, err := buildConnectionString(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	// Attempt connection with retry logic
	var db *sql.DB
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxRetries; attempt++ {
		logger.Info("attempting pipeline warehouse connection",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultMaxRetries),
		)

		db, err = sql.Open("sqlserver", connStr)
		if err != nil {
			logger.Warn("failed to open pipeline warehouse connection",
				zap.Error(err),
				zap.Int("attempt", attempt),
			)
			if attempt < defaultMaxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

		ctx, cancel := context.WithTimeout(context.Background(), defaultHealthCheckTimeout)
		err = db.PingContext(ctx)
		cancel()

		if err != nil {
			logger.Warn("pipeline warehouse ping failed",
				zap.Error(err),
				zap.Int("attempt", attempt),
			)
			_ = db.Close()
			if attempt < defaultMaxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		logger.Info("pipeline warehouse connection established",
			zap.Int("attempts_taken", attempt),
		)

		return &Client{
			db:           db,
			config:       cfg,
			logger:       logger,
			queryTimeout: cfg.QueryTimeoutDuration(),
		}, nil
	}

	return nil, fmt.Errorf("failed to connect to pipeline warehouse after %d attempts: %w", defaultMaxRetries, err)
}

// buildConnectionString constructs a SQL Server connection string from the
// config. URL format expected: host:port/database or host:port (uses default
// database).
func buildConnectionString(cfg *config.WarehouseConfig) (string, error) {
	urlParts := strings.SplitN(cfg.URL, "/", 2)
	hostPort := urlParts[0]
	database := ""
	if len(urlParts) > 1 {
		database = urlParts[1]
	}

	hostParts := strings.SplitN(hostPort, ":", 2)
	host := hostParts[0]
	port := "1433" // Default SQL Server port
	if len(hostParts) > 1 {
		port = hostParts[1]
	}

	query := url.Values{}
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	query.Add("connection timeout", "30")
	if database != "" {
		query.Add("database", database)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		RawQuery: query.Encode(),
	}

	return u.String(), nil
}

// Close gracefully closes the warehouse connection.
// Should be called during application shutdown.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}

	c.logger.Info("closing pipeline warehouse connection")

	if err := c.db.Close(); err != nil {
		c.logger.Error("failed to close pipeline warehouse connection", zap.Error(err))
		return fmt.Errorf("failed to close pipeline warehouse connection: %w", err)
	}

	return nil
}

// HealthCheck performs a health check on the warehouse connection.
// Returns detailed status including connection pool statistics.
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if c == nil || c.db == nil {
		return &HealthStatus{
			Status: "disabled",
		}
	}

	start := time.Now()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	err := c.db.PingContext(ctx)
	latency := time.Since(start)

	stats := c.db.Stats()
	status := &HealthStatus{
		Latency:    latency,
		MaxOpen:    stats.MaxOpenConnections,
		Open:       stats.OpenConnections,
		InUse:      stats.InUse,
		Idle:       stats.Idle,
		WaitCount:  stats.WaitCount,
		WaitTimeMs: stats.WaitDuration.Milliseconds(),
	}

	if err != nil {
		c.logger.Warn("pipeline warehouse health check failed",
			zap.Error(err),
			zap.Duration("latency", latency),
		)
		status.Status = "unhealthy"
		status.Error = err.Error()
	} else {
		status.Status = "healthy"
	}

	return status
}

// FetchDeals reads the full deal set from the warehouse. The mirror upserts
// every returned row, so the result is the complete pipeline truth at read
// time.
func (c *Client) FetchDeals(ctx context.Context) ([]DealRow, error) {
	if c == nil || c.db == nil {
		return nil, fmt.Errorf("pipeline warehouse client not initialized")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	start := time.Now()

	rows, err := c.db.QueryContext(ctx, dealQuery)
	if err != nil {
		c.logger.Error("pipeline warehouse query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, fmt.Errorf("deal query failed: %w", err)
	}
	defer rows.Close()

	var deals []DealRow
	for rows.Next() {
		var (
			row      DealRow
			title    sql.NullString
			closedAt sql.NullTime
		)
		if err := rows.Scan(&row.DealID, &title, &row.Stage, &row.Outcome, &row.Value, &row.OwnerEmail, &row.StageEnteredAt, &closedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deal row: %w", err)
		}
		row.Title = title.String
		if closedAt.Valid {
			t := closedAt.Time
			row.ClosedAt = &t
		}
		deals = append(deals, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deal rows: %w", err)
	}

	c.logger.Debug("pipeline warehouse deals fetched",
		zap.Int("rows_returned", len(deals)),
		zap.Duration("duration", time.Since(start)),
	)

	return deals, nil
}

// IsEnabled returns true if the client is initialized and ready for queries.
func (c *Client) IsEnabled() bool {
	return c != nil && c.db != nil
}
