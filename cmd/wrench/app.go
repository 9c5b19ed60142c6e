package wrench

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/arthur-debert/wrench/pkg/backend/local"
	"github.com/arthur-debert/wrench/pkg/catalog"
	"github.com/arthur-debert/wrench/pkg/config"
	"github.com/arthur-debert/wrench/pkg/decision"
	"github.com/arthur-debert/wrench/pkg/esi"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/arthur-debert/wrench/pkg/manager"
	"github.com/arthur-debert/wrench/pkg/notify"
	"github.com/arthur-debert/wrench/pkg/paths"
	"github.com/arthur-debert/wrench/pkg/prefs"
	"github.com/arthur-debert/wrench/pkg/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app wires the backend, catalog, decision service and coordinator for one
// command invocation
type app struct {
	cfg      *config.Config
	paths    paths.Paths
	fs       afero.Fs
	backend  *local.Backend
	catalog  *catalog.Cache
	manager  *manager.Manager
	renderer ui.Renderer

	decisions *decision.Service
	decider   *presetDecider
	picker    *argPicker
	input     *bufio.Reader
	out       io.Writer

	loadErr error

	ctx    context.Context
	cancel context.CancelFunc
	served sync.WaitGroup
}

// loadConfig reads the configuration honouring --config
func loadConfig(opts *rootOptions) (*config.Config, paths.Paths, error) {
	p, err := paths.New()
	if err != nil {
		return nil, nil, err
	}
	configFile := opts.configFile
	if configFile == "" {
		configFile = p.ConfigFilePath()
	}
	cfg, err := config.Load(config.LoadOptions{ConfigFile: configFile})
	if err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}

// newRenderer picks the output format from --format, then output.format
func newRenderer(opts *rootOptions, cfg *config.Config, w io.Writer) (ui.Renderer, error) {
	name := opts.format
	if name == "" && cfg != nil {
		name = cfg.Output.Format
	}
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w)
}

// newApp builds the application and loads the catalog. A failed load does
// not fail newApp so the settings root can still be changed. Callers must
// Close the app.
func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	logger := logging.GetLogger("cmd.app")

	cfg, p, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	renderer, err := newRenderer(opts, cfg, out)
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()

	settingsRoot := cfg.Settings.Root
	if settingsRoot == "" {
		settingsRoot = paths.DefaultSettingsRoot()
	} else {
		settingsRoot = paths.ExpandHome(settingsRoot)
	}

	backendOpts := local.Options{
		FS:               fs,
		DefaultRoot:      settingsRoot,
		AliasesPath:      p.AliasesPath(),
		ImportBackupName: cfg.Backups.ImportName,
	}
	if cfg.ESI.Enabled {
		backendOpts.Characters = esi.NewClient(esi.Config{
			BaseURL:   cfg.ESI.BaseURL,
			UserAgent: cfg.ESI.UserAgent,
			Timeout:   cfg.ESI.Timeout,
		})
	}
	gateway := local.New(backendOpts)

	notifier := notify.NewConsole(cmd.ErrOrStderr())
	cache := catalog.New(gateway, prefs.NewFileStore(fs, p.PrefsPath()), notifier)

	input := bufio.NewReader(cmd.InOrStdin())
	responder := decision.NewConsoleResponder(input, cmd.ErrOrStderr())
	responder.AssumeYes = opts.yes

	ctx, cancel := context.WithCancel(cmd.Context())
	a := &app{
		cfg:       cfg,
		paths:     p,
		fs:        fs,
		backend:   gateway,
		catalog:   cache,
		renderer:  renderer,
		decisions: decision.NewService(),
		picker:    &argPicker{},
		input:     input,
		out:       out,
		ctx:       ctx,
		cancel:    cancel,
	}
	a.decider = &presetDecider{next: a.decisions}

	a.served.Add(1)
	go func() {
		defer a.served.Done()
		_ = decision.Serve(ctx, a.decisions, responder)
	}()

	a.manager = manager.New(manager.Options{
		Gateway:  gateway,
		Catalog:  cache,
		Decider:  a.decider,
		Picker:   a.picker,
		Notifier: notifier,
	})

	// a failed load is already notified; commands that need data report it
	a.loadErr = cache.Init(ctx)
	logger.Debug().
		Str("root", settingsRoot).
		Str("custom_root", cache.CustomRoot()).
		Bool("esi", cfg.ESI.Enabled).
		Msg("Application ready")
	return a, nil
}

// requireData returns the catalog load failure, if any
func (a *app) requireData() error {
	return a.loadErr
}

// Close stops the decision responder and drops the catalog subscription
func (a *app) Close() {
	a.cancel()
	a.catalog.Close()
	a.served.Wait()
}

// presetDecider answers the next prompt with a value given on the command
// line and forwards everything else to the decision service
type presetDecider struct {
	next manager.Decider

	mu     sync.Mutex
	preset string
}

func (d *presetDecider) presetPrompt(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preset = value
}

func (d *presetDecider) Confirm(ctx context.Context, opts decision.ConfirmOptions) (bool, error) {
	return d.next.Confirm(ctx, opts)
}

func (d *presetDecider) Prompt(ctx context.Context, opts decision.PromptOptions) (string, bool, error) {
	d.mu.Lock()
	value := d.preset
	d.preset = ""
	d.mu.Unlock()
	if value != "" {
		return value, true, nil
	}
	return d.next.Prompt(ctx, opts)
}

// argPicker hands out paths given as command arguments; an empty path
// reads as a cancelled pick
type argPicker struct {
	mu           sync.Mutex
	export       string
	archive      string
	settingsRoot string
}

func (p *argPicker) setExport(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.export = path
}

func (p *argPicker) setArchive(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.archive = path
}

func (p *argPicker) setSettingsRoot(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settingsRoot = path
}

func (p *argPicker) PickExportDestination(context.Context) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.export, p.export != "", nil
}

func (p *argPicker) PickImportArchive(context.Context) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.archive, p.archive != "", nil
}

func (p *argPicker) PickSettingsRoot(context.Context) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settingsRoot, p.settingsRoot != "", nil
}

// runWithApp builds the app, runs fn and closes the app
func runWithApp(cmd *cobra.Command, opts *rootOptions, fn func(a *app) error) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
