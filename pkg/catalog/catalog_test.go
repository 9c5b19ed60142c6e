package catalog_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/wrench/pkg/backend"
	"github.com/arthur-debert/wrench/pkg/catalog"
	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/notify"
	"github.com/arthur-debert/wrench/pkg/prefs"
	"github.com/arthur-debert/wrench/pkg/testutil"
	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() *types.AppData {
	u1 := testutil.UserEntry("/eve/tq/settings_Default/core_user_1.dat", "1")
	return testutil.AppData(
		[]types.BackupEntry{testutil.Backup("main", u1, 100)},
		testutil.Profile("Default", u1),
	)
}

func newCache(t *testing.T) (*catalog.Cache, *testutil.MockGateway, *testutil.MemoryStore, *notify.Recorder) {
	t.Helper()
	gw := testutil.NewMockGateway()
	gw.GetAppDataFunc = func(context.Context, string) (*types.AppData, error) { return sampleData(), nil }
	store := testutil.NewMemoryStore()
	rec := notify.NewRecorder()
	c := catalog.New(gw, store, rec)
	t.Cleanup(c.Close)
	return c, gw, store, rec
}

func TestLoadData_ReplacesSnapshot(t *testing.T) {
	c, _, _, rec := newCache(t)
	assert.Nil(t, c.Data())
	assert.False(t, c.HasData())
	assert.Nil(t, c.Backups())

	require.NoError(t, c.LoadData(context.Background(), false))
	assert.True(t, c.HasData())
	assert.Len(t, c.Backups(), 1)
	assert.False(t, c.Loading())
	assert.Empty(t, rec.All(), "silent load does not notify")
}

func TestRefresh_NotifiesSummary(t *testing.T) {
	c, _, _, rec := newCache(t)

	require.NoError(t, c.Refresh(context.Background()))
	all := rec.All()
	require.Len(t, all, 1)
	assert.Equal(t, catalog.MsgDataRefreshed, all[0].Title)
	assert.Equal(t, "Found 1 server(s) and 1 backup(s)", all[0].Description)
}

func TestRefresh_EmptyDataIsNotAnnounced(t *testing.T) {
	c, gw, _, rec := newCache(t)
	gw.GetAppDataFunc = func(context.Context, string) (*types.AppData, error) { return &types.AppData{}, nil }

	require.NoError(t, c.Refresh(context.Background()))
	assert.Empty(t, rec.All())
}

func TestLoadData_FailureKeepsStaleData(t *testing.T) {
	c, gw, _, rec := newCache(t)
	require.NoError(t, c.LoadData(context.Background(), false))
	before := c.Data()

	gw.GetAppDataFunc = func(context.Context, string) (*types.AppData, error) {
		return nil, stderrors.New("disk unplugged")
	}
	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBackend))

	assert.Same(t, before, c.Data())
	assert.False(t, c.Loading())
	failures := rec.Filter(notify.LevelError)
	require.Len(t, failures, 1)
	assert.Equal(t, catalog.MsgLoadFailed, failures[0].Title)
	assert.Equal(t, "disk unplugged", failures[0].Description)
}

func TestDataChanged_ReloadsSilently(t *testing.T) {
	c, gw, _, rec := newCache(t)

	gw.Emit(backend.EventDataChanged)
	assert.Len(t, gw.CallsTo("GetAppData"), 1)
	assert.True(t, c.HasData())
	assert.Empty(t, rec.All())
}

func TestSubscriptionLifecycle(t *testing.T) {
	gw := testutil.NewMockGateway()
	c1 := catalog.New(gw, testutil.NewMemoryStore(), nil)
	assert.Equal(t, 1, gw.Subscribers(backend.EventDataChanged))

	c1.Close()
	c1.Close()
	assert.Equal(t, 0, gw.Subscribers(backend.EventDataChanged))

	gw.Emit(backend.EventDataChanged)
	assert.Empty(t, gw.CallsTo("GetAppData"), "closed cache does not reload")

	// a second session subscribes independently
	c2 := catalog.New(gw, testutil.NewMemoryStore(), nil)
	defer c2.Close()
	assert.Equal(t, 1, gw.Subscribers(backend.EventDataChanged))
}

func TestInit_UsesStoredRoot(t *testing.T) {
	c, gw, store, _ := newCache(t)
	require.NoError(t, store.Set(prefs.KeyCustomRoot, "/games/eve"))

	require.NoError(t, c.Init(context.Background()))
	assert.Equal(t, "/games/eve", c.CustomRoot())
	calls := gw.CallsTo("GetAppData")
	require.Len(t, calls, 1)
	assert.Equal(t, "/games/eve", calls[0].Args[0])
}

func TestInit_StoreFailureFallsBackToDefault(t *testing.T) {
	c, gw, store, _ := newCache(t)
	store.Err = stderrors.New("locked")

	require.NoError(t, c.Init(context.Background()))
	assert.Empty(t, c.CustomRoot())
	assert.Equal(t, "", gw.CallsTo("GetAppData")[0].Args[0])
}

func TestCustomRoot_SetAndClear(t *testing.T) {
	c, gw, store, rec := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetCustomRoot(ctx, "/mnt/eve"))
	assert.Equal(t, "/mnt/eve", c.CustomRoot())
	v, ok, _ := store.Get(prefs.KeyCustomRoot)
	assert.True(t, ok)
	assert.Equal(t, "/mnt/eve", v)
	assert.Equal(t, "/mnt/eve", gw.CallsTo("GetAppData")[0].Args[0])

	require.NoError(t, c.ClearCustomRoot(ctx))
	assert.Empty(t, c.CustomRoot())
	_, ok, _ = store.Get(prefs.KeyCustomRoot)
	assert.False(t, ok)
	assert.Equal(t, "", gw.CallsTo("GetAppData")[1].Args[0])

	titles := []string{}
	for _, n := range rec.All() {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{catalog.MsgPathSet, catalog.MsgPathReset}, titles)
}

func TestCustomRoot_StoreFailure(t *testing.T) {
	c, gw, store, rec := newCache(t)
	store.Err = stderrors.New("read-only")

	err := c.SetCustomRoot(context.Background(), "/mnt/eve")
	assert.True(t, errors.IsErrorCode(err, errors.ErrBackend))
	assert.Empty(t, c.CustomRoot())
	assert.Empty(t, gw.CallsTo("GetAppData"))
	assert.Len(t, rec.Filter(notify.LevelError), 1)
}

func TestLoadData_DropsSupersededResult(t *testing.T) {
	c, gw, _, rec := newCache(t)

	oldRoot := testutil.AppData(nil, testutil.Profile("Old",
		testutil.UserEntry("/old/tq/settings_Old/core_user_7.dat", "7")))
	started := make(chan struct{})
	release := make(chan struct{})
	gw.GetAppDataFunc = func(_ context.Context, root string) (*types.AppData, error) {
		if root == "" {
			close(started)
			<-release
			return oldRoot, nil
		}
		return sampleData(), nil
	}

	// a watcher-triggered load against the default root is slow
	done := make(chan error, 1)
	go func() { done <- c.LoadData(context.Background(), false) }()
	<-started

	require.NoError(t, c.SetCustomRoot(context.Background(), "/mnt/eve"))
	require.Len(t, c.Backups(), 1)

	close(release)
	require.NoError(t, <-done)

	assert.Len(t, c.Backups(), 1, "new-root snapshot survives the late load")
	_, stale := c.Data().FindEntry("/old/tq/settings_Old/core_user_7.dat")
	assert.False(t, stale)
	assert.Empty(t, rec.Filter(notify.LevelError))
}
