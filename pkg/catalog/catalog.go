// Package catalog caches the last snapshot of servers, profiles, entries and
// backups fetched from the backend, and keeps it fresh when the backend
// reports changes.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/arthur-debert/wrench/pkg/backend"
	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/arthur-debert/wrench/pkg/notify"
	"github.com/arthur-debert/wrench/pkg/prefs"
	"github.com/arthur-debert/wrench/pkg/types"
)

const (
	MsgDataRefreshed     = "Data refreshed"
	MsgDataRefreshedDesc = "Found %d server(s) and %d backup(s)"
	MsgLoadFailed        = "Failed to load data"
	MsgPathSet           = "Custom path set"
	MsgSetPathFailed     = "Failed to set path"
	MsgPathReset         = "Path reset"
	MsgPathResetDesc     = "Using default settings location"
	MsgResetPathFailed   = "Failed to reset path"
)

// Cache holds the catalog snapshot. The snapshot is replaced wholesale on
// each successful load and never mutated in place.
type Cache struct {
	gateway  backend.Gateway
	store    prefs.Store
	notifier notify.Notifier

	mu         sync.RWMutex
	data       *types.AppData
	loading    int
	customRoot string

	// started counts loads; applied is the load that produced data
	started uint64
	applied uint64

	unsubscribe func()
}

// New returns a cache subscribed to the gateway's data-changed event.
// Call Close to remove the subscription.
func New(gateway backend.Gateway, store prefs.Store, notifier notify.Notifier) *Cache {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	c := &Cache{gateway: gateway, store: store, notifier: notifier}
	c.unsubscribe = gateway.Subscribe(backend.EventDataChanged, c.onDataChanged)
	return c
}

func (c *Cache) onDataChanged() {
	_ = c.LoadData(context.Background(), false)
}

// Close removes the data-changed subscription. It is safe to call twice.
func (c *Cache) Close() {
	c.mu.Lock()
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Init reads the stored custom root, then loads the catalog
func (c *Cache) Init(ctx context.Context) error {
	logger := logging.GetLogger("catalog")

	if c.store != nil {
		root, ok, err := c.store.Get(prefs.KeyCustomRoot)
		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("Could not read custom root, using default")
		case ok:
			c.mu.Lock()
			c.customRoot = root
			c.mu.Unlock()
		}
	}
	return c.LoadData(ctx, false)
}

// LoadData fetches a fresh snapshot. On failure the previous snapshot is
// kept, the failure is notified, and an ErrBackend error is returned.
// Loads may overlap; a load that finishes after a later-started one has
// already been applied is dropped.
func (c *Cache) LoadData(ctx context.Context, notifyResult bool) error {
	logger := logging.GetLogger("catalog")

	c.mu.Lock()
	c.loading++
	c.started++
	gen := c.started
	root := c.customRoot
	c.mu.Unlock()

	data, err := c.gateway.GetAppData(ctx, root)

	c.mu.Lock()
	c.loading--
	superseded := gen < c.applied
	if err == nil && !superseded {
		c.data = data
		c.applied = gen
	}
	c.mu.Unlock()

	if superseded {
		logger.Debug().Str("root", root).Uint64("load", gen).Msg("Dropping superseded catalog load")
		return nil
	}

	if err != nil {
		logger.Error().Err(err).Str("root", root).Msg("Catalog load failed")
		c.notifier.Error(MsgLoadFailed, err)
		return errors.Wrap(err, errors.ErrBackend, MsgLoadFailed)
	}

	servers, backups := 0, 0
	if data != nil {
		servers, backups = len(data.Servers), len(data.Backups)
	}
	logger.Debug().Int("servers", servers).Int("backups", backups).Msg("Catalog loaded")

	if notifyResult && (servers > 0 || backups > 0) {
		c.notifier.Success(MsgDataRefreshed, fmt.Sprintf(MsgDataRefreshedDesc, servers, backups))
	}
	return nil
}

// Refresh is a user-initiated load with a summary notification
func (c *Cache) Refresh(ctx context.Context) error {
	return c.LoadData(ctx, true)
}

// Data returns the current snapshot, or nil before the first successful load
func (c *Cache) Data() *types.AppData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

// HasData reports whether the snapshot holds any server or backup
func (c *Cache) HasData() bool {
	return c.Data().HasData()
}

// Loading reports whether a load is in flight
func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading > 0
}

// Backups returns the cached backups
func (c *Cache) Backups() []types.BackupEntry {
	data := c.Data()
	if data == nil {
		return nil
	}
	return data.Backups
}

// CustomRoot returns the user-selected settings root, empty for the default
func (c *Cache) CustomRoot() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.customRoot
}

// SetCustomRoot persists a custom settings root and reloads
func (c *Cache) SetCustomRoot(ctx context.Context, path string) error {
	if err := c.store.Set(prefs.KeyCustomRoot, path); err != nil {
		c.notifier.Error(MsgSetPathFailed, err)
		return errors.Wrap(err, errors.ErrBackend, MsgSetPathFailed)
	}
	c.mu.Lock()
	c.customRoot = path
	c.mu.Unlock()

	c.notifier.Success(MsgPathSet, path)
	return c.LoadData(ctx, false)
}

// ClearCustomRoot forgets the custom root and reloads from the default location
func (c *Cache) ClearCustomRoot(ctx context.Context) error {
	if err := c.store.Delete(prefs.KeyCustomRoot); err != nil {
		c.notifier.Error(MsgResetPathFailed, err)
		return errors.Wrap(err, errors.ErrBackend, MsgResetPathFailed)
	}
	c.mu.Lock()
	c.customRoot = ""
	c.mu.Unlock()

	c.notifier.Success(MsgPathReset, MsgPathResetDesc)
	return c.LoadData(ctx, false)
}
