package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sethvargo/go-retry"
)

// Connect opens a single connection and pings it, retrying with a constant
// backoff on failure.
func Connect(ctx context.Context, cfg Config) (*pgx.Conn, error) {
	if cfg.ConnectionString == "" {
		return nil, ErrEmptyConnectionString
	}

	connCfg, err := pgx.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}

	var conn *pgx.Conn
	err = retry.Do(ctx, backoff(cfg), func(ctx context.Context) error {
		c, err := pgx.ConnectConfig(ctx, connCfg)
		if err != nil {
			return retry.RetryableError(err)
		}
		if err := c.Ping(ctx); err != nil {
			_ = c.Close(ctx)
			return retry.RetryableError(err)
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}
	return conn, nil
}

// Open connects and wraps the connection in a DB.
func Open(ctx context.Context, cfg Config, opts ...Option) (*DB, error) {
	conn, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(conn, opts...), nil
}

// Healthcheck returns a readiness check for anything that can be pinged.
func Healthcheck(p interface{ Ping(context.Context) error }) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

func backoff(cfg Config) retry.Backoff {
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = time.Second
	}
	attempts := max(cfg.RetryAttempts, 1)
	return retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(interval))
}
