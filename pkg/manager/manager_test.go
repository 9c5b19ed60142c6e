package manager_test

import (
	"context"
	"sync"
	"testing"

	"github.com/arthur-debert/wrench/pkg/manager"
	"github.com/arthur-debert/wrench/pkg/notify"
	"github.com/arthur-debert/wrench/pkg/testutil"
	"github.com/arthur-debert/wrench/pkg/types"
)

// stubCatalog serves fixed data and records root changes
type stubCatalog struct {
	mu      sync.Mutex
	data    *types.AppData
	root    string
	setErr  error
	setRoot []string
}

func (c *stubCatalog) Data() *types.AppData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

func (c *stubCatalog) CustomRoot() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.root
}

func (c *stubCatalog) SetCustomRoot(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setRoot = append(c.setRoot, path)
	if c.setErr != nil {
		return c.setErr
	}
	c.root = path
	return nil
}

type fixture struct {
	mgr      *manager.Manager
	gateway  *testutil.MockGateway
	decider  *testutil.ScriptedDecider
	picker   *testutil.StaticPicker
	catalog  *stubCatalog
	recorder *notify.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		gateway:  testutil.NewMockGateway(),
		decider:  testutil.NewScriptedDecider(),
		picker:   &testutil.StaticPicker{},
		catalog:  &stubCatalog{},
		recorder: notify.NewRecorder(),
	}
	f.mgr = manager.New(manager.Options{
		Gateway:  f.gateway,
		Catalog:  f.catalog,
		Decider:  f.decider,
		Picker:   f.picker,
		Notifier: f.recorder,
	})
	return f
}

var (
	user1 = testutil.UserEntry("/a/user1.dat", "1")
	user2 = testutil.UserEntry("/a/user2.dat", "2")
	user3 = testutil.UserEntry("/a/user3.dat", "3")
	user4 = testutil.UserEntry("/a/user4.dat", "4")
	char1 = testutil.CharEntry("/a/char1.dat", "91000001")
	char2 = testutil.CharEntry("/a/char2.dat", "91000002")
)
