package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crosslock/fusion-gateway/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSwapRecord() *SwapRecord {
	now := time.Now().UTC()
	return &SwapRecord{
		ID:              "swap-1",
		OrderHash:       "0xorderhash",
		PreparationHash: "prep-1",
		Wallet:          "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		QuoteID:         "quote-1",
		OrderParams: types.OrderParams{
			Amount:     "100000000",
			SrcChainID: 1,
			DstChainID: 137,
		},
		Status:    types.PhasePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgresStorage_SaveSwap(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStorageFromDB(db, logger)
	record := testSwapRecord()

	mock.ExpectExec("INSERT INTO swaps").
		WithArgs(
			record.ID,
			record.OrderHash,
			record.PreparationHash,
			record.Wallet,
			record.QuoteID,
			sqlmock.AnyArg(), // order_params JSON
			string(record.Status),
			record.CreatedAt,
			record.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.SaveSwap(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_UpdateSwapStatus(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStorageFromDB(db, logger)

	mock.ExpectExec("UPDATE swaps SET status").
		WithArgs("executed", sqlmock.AnyArg(), "0xorderhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.UpdateSwapStatus(context.Background(), "0xorderhash", types.PhaseExecuted))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_SaveMonitorState(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStorageFromDB(db, logger)

	mock.ExpectExec("INSERT INTO monitor_states").
		WithArgs("0xorderhash", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.SaveMonitorState(context.Background(), &MonitorState{
		OrderHash:    "0xorderhash",
		Secrets:      []string{"0xsecret0"},
		SecretHashes: []string{"0xhash0"},
		RevealedIdxs: []int{0},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_LoadMonitorStates(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStorageFromDB(db, logger)

	updatedAt := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"order_hash", "secrets", "secret_hashes", "revealed_idxs", "updated_at"}).
		AddRow("0xorderhash", []byte(`["0xsecret0","0xsecret1"]`), []byte(`["0xhash0","0xhash1"]`), []byte(`[1]`), updatedAt)

	mock.ExpectQuery("SELECT order_hash, secrets, secret_hashes, revealed_idxs, updated_at FROM monitor_states").
		WillReturnRows(rows)

	states, err := store.LoadMonitorStates(context.Background())
	require.NoError(t, err)

	require.Len(t, states, 1)
	assert.Equal(t, "0xorderhash", states[0].OrderHash)
	assert.Equal(t, []string{"0xsecret0", "0xsecret1"}, states[0].Secrets)
	assert.Equal(t, []int{1}, states[0].RevealedIdxs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_DeleteMonitorState(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStorageFromDB(db, logger)

	mock.ExpectExec("DELETE FROM monitor_states").
		WithArgs("0xorderhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.DeleteMonitorState(context.Background(), "0xorderhash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsoleStorage_MonitorStateRoundTrip(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store := NewConsoleStorage(logger)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.SaveMonitorState(ctx, &MonitorState{
		OrderHash:    "0xorderhash",
		Secrets:      []string{"0xsecret0"},
		SecretHashes: []string{"0xhash0"},
	}))

	states, err := store.LoadMonitorStates(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "0xorderhash", states[0].OrderHash)

	require.NoError(t, store.DeleteMonitorState(ctx, "0xorderhash"))

	states, err = store.LoadMonitorStates(ctx)
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestConsoleStorage_SaveSwap(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store := NewConsoleStorage(logger)
	defer store.Close()

	assert.NoError(t, store.SaveSwap(context.Background(), testSwapRecord()))
	assert.NoError(t, store.UpdateSwapStatus(context.Background(), "0xorderhash", types.PhaseExecuted))
}
