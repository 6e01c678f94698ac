package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/crosslock/fusion-gateway/internal/relayer"
	"github.com/crosslock/fusion-gateway/internal/storage"
	"github.com/crosslock/fusion-gateway/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T, fake *fakeRelayer) (*Manager, storage.Storage, context.CancelFunc) {
	t.Helper()

	logger, _ := zap.NewDevelopment()
	store := storage.NewConsoleStorage(logger)

	ctx, cancel := context.WithCancel(context.Background())
	mgr := NewManager(ctx, &ManagerConfig{
		Relayer:      fake,
		Storage:      store,
		Logger:       logger,
		PollInterval: 5 * time.Millisecond,
	})

	return mgr, store, cancel
}

func TestManager_WatchRunsToCompletion(t *testing.T) {
	fake := &fakeRelayer{
		steps: []fakeStep{
			{fills: []relayer.ReadyFill{{Idx: 0}}, status: &types.OrderStatus{Status: types.PhaseExecuted, OrderHash: "0xorderhash"}},
		},
	}
	mgr, _, cancel := newTestManager(t, fake)
	defer cancel()

	require.NoError(t, mgr.Watch("0xorderhash", []string{"0xsecret0"}, []string{"0xhash0"}))
	require.NoError(t, mgr.Wait())

	assert.Equal(t, 0, mgr.ActiveCount())
	assert.Equal(t, []string{"0xsecret0"}, fake.revealedSecrets())
}

func TestManager_RejectsDuplicateWatch(t *testing.T) {
	fake := &fakeRelayer{} // forever pending
	mgr, _, cancel := newTestManager(t, fake)

	require.NoError(t, mgr.Watch("0xorderhash", []string{"0xsecret0"}, []string{"0xhash0"}))

	err := mgr.Watch("0xorderhash", []string{"0xsecret0"}, []string{"0xhash0"})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindValidation))
	assert.Equal(t, 1, mgr.ActiveCount())

	cancel()
	require.NoError(t, mgr.Wait())
}

func TestManager_ResumePicksUpPersistedState(t *testing.T) {
	fake := &fakeRelayer{
		steps: []fakeStep{
			{status: &types.OrderStatus{Status: types.PhaseExecuted, OrderHash: "0xorderhash"}},
		},
	}
	mgr, store, cancel := newTestManager(t, fake)
	defer cancel()

	ctx := context.Background()
	require.NoError(t, store.SaveMonitorState(ctx, &storage.MonitorState{
		OrderHash:    "0xorderhash",
		Secrets:      []string{"0xsecret0", "0xsecret1"},
		SecretHashes: []string{"0xhash0", "0xhash1"},
		RevealedIdxs: []int{1},
	}))

	require.NoError(t, mgr.Resume(ctx))
	require.NoError(t, mgr.Wait())

	// The terminal order erased its persisted state.
	states, err := store.LoadMonitorStates(ctx)
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestManager_MonitorErrorDoesNotFailWait(t *testing.T) {
	// A permanently failing monitor is logged and dropped; Wait stays nil so
	// sibling monitors are never cancelled.
	failing := &fakeRelayer{
		steps: []fakeStep{
			{fillsErr: assert.AnError},
		},
	}

	logger, _ := zap.NewDevelopment()
	store := storage.NewConsoleStorage(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mgr := NewManager(ctx, &ManagerConfig{
		Relayer:      failing,
		Storage:      store,
		Logger:       logger,
		PollInterval: time.Millisecond,
	})

	require.NoError(t, mgr.Watch("0xfailing", []string{"0xsecret0"}, []string{"0xhash0"}))
	require.NoError(t, mgr.Wait())
	assert.Equal(t, 0, mgr.ActiveCount())
}
