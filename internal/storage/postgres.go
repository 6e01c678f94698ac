package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/crosslock/fusion-gateway/pkg/types"
	json "github.com/goccy/go-json"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// NewPostgresStorageFromDB wraps an existing database handle. Used by tests
// with sqlmock.
func NewPostgresStorageFromDB(db *sql.DB, logger *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:     db,
		logger: logger,
	}
}

// SaveSwap stores a newly submitted swap.
func (p *PostgresStorage) SaveSwap(ctx context.Context, record *SwapRecord) error {
	params, err := json.Marshal(record.OrderParams)
	if err != nil {
		return fmt.Errorf("marshal order params: %w", err)
	}

	query := `
		INSERT INTO swaps (
			id, order_hash, preparation_hash, wallet, quote_id,
			order_params, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err = p.db.ExecContext(ctx, query,
		record.ID,
		record.OrderHash,
		record.PreparationHash,
		record.Wallet,
		record.QuoteID,
		params,
		string(record.Status),
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert swap: %w", err)
	}

	p.logger.Debug("swap-stored",
		zap.String("swap-id", record.ID),
		zap.String("order-hash", record.OrderHash))

	return nil
}

// UpdateSwapStatus records a status transition for an order.
func (p *PostgresStorage) UpdateSwapStatus(ctx context.Context, orderHash string, status types.OrderPhase) error {
	query := `UPDATE swaps SET status = $1, updated_at = $2 WHERE order_hash = $3`

	_, err := p.db.ExecContext(ctx, query, string(status), time.Now().UTC(), orderHash)
	if err != nil {
		return fmt.Errorf("update swap status: %w", err)
	}

	p.logger.Debug("swap-status-updated",
		zap.String("order-hash", orderHash),
		zap.String("status", string(status)))

	return nil
}

// SaveMonitorState upserts the monitor state for an order.
func (p *PostgresStorage) SaveMonitorState(ctx context.Context, state *MonitorState) error {
	secrets, err := json.Marshal(state.Secrets)
	if err != nil {
		return fmt.Errorf("marshal secrets: %w", err)
	}
	hashes, err := json.Marshal(state.SecretHashes)
	if err != nil {
		return fmt.Errorf("marshal secret hashes: %w", err)
	}
	revealed, err := json.Marshal(state.RevealedIdxs)
	if err != nil {
		return fmt.Errorf("marshal revealed indices: %w", err)
	}

	query := `
		INSERT INTO monitor_states (order_hash, secrets, secret_hashes, revealed_idxs, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_hash) DO UPDATE SET
			secrets = EXCLUDED.secrets,
			secret_hashes = EXCLUDED.secret_hashes,
			revealed_idxs = EXCLUDED.revealed_idxs,
			updated_at = EXCLUDED.updated_at
	`

	_, err = p.db.ExecContext(ctx, query,
		state.OrderHash, secrets, hashes, revealed, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert monitor state: %w", err)
	}

	return nil
}

// LoadMonitorStates returns all in-flight monitor states.
func (p *PostgresStorage) LoadMonitorStates(ctx context.Context) ([]MonitorState, error) {
	query := `SELECT order_hash, secrets, secret_hashes, revealed_idxs, updated_at FROM monitor_states`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query monitor states: %w", err)
	}
	defer rows.Close()

	var states []MonitorState
	for rows.Next() {
		var (
			state    MonitorState
			secrets  []byte
			hashes   []byte
			revealed []byte
		)
		err = rows.Scan(&state.OrderHash, &secrets, &hashes, &revealed, &state.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan monitor state: %w", err)
		}

		if err := json.Unmarshal(secrets, &state.Secrets); err != nil {
			return nil, fmt.Errorf("unmarshal secrets: %w", err)
		}
		if err := json.Unmarshal(hashes, &state.SecretHashes); err != nil {
			return nil, fmt.Errorf("unmarshal secret hashes: %w", err)
		}
		if err := json.Unmarshal(revealed, &state.RevealedIdxs); err != nil {
			return nil, fmt.Errorf("unmarshal revealed indices: %w", err)
		}

		states = append(states, state)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monitor states: %w", err)
	}

	return states, nil
}

// DeleteMonitorState erases the monitor state for a finished order.
func (p *PostgresStorage) DeleteMonitorState(ctx context.Context, orderHash string) error {
	query := `DELETE FROM monitor_states WHERE order_hash = $1`

	_, err := p.db.ExecContext(ctx, query, orderHash)
	if err != nil {
		return fmt.Errorf("delete monitor state: %w", err)
	}

	p.logger.Debug("monitor-state-erased",
		zap.String("order-hash", orderHash))

	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}
