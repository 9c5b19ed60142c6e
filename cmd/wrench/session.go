package wrench

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/arthur-debert/wrench/pkg/ui/display"
	"github.com/spf13/cobra"
)

const sessionPrompt = "wrench> "

// sessionVerb is one command understood inside a session
type sessionVerb struct {
	usage   string
	help    string
	minArgs int
	// maxArgs < 0 means unbounded
	maxArgs int
	run     func(s *session, args []string) error
}

// session is a read-eval loop over one app, so the selection and a pending
// import survive between commands
type session struct {
	app   *app
	out   io.Writer
	verbs map[string]sessionVerb

	stopWatch context.CancelFunc
	watchDone chan struct{}
}

func newSessionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "session",
		Aliases: []string{"shell"},
		Short:   MsgSessionShort,
		Long:    MsgSessionLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				s := newSession(a, cmd.OutOrStdout())
				s.startWatch()
				defer s.shutdownWatch()
				return s.run()
			})
		},
	}
}

func newSession(a *app, out io.Writer) *session {
	return &session{app: a, out: out, verbs: sessionVerbs()}
}

func sessionVerbs() map[string]sessionVerb {
	verbs := map[string]sessionVerb{
		"list": {usage: "list [servers]", help: "show the catalog with the selection marked", maxArgs: 1,
			run: func(s *session, args []string) error {
				return s.app.list(len(args) == 1 && args[0] == "servers")
			}},
		"refresh": {usage: "refresh", help: "reload the catalog",
			run: func(s *session, args []string) error {
				return s.app.catalog.Refresh(s.app.ctx)
			}},
		"source": {usage: "source REF", help: "use an entry or backup as copy source", minArgs: 1, maxArgs: 1,
			run: func(s *session, args []string) error {
				if err := s.app.selectSource(args[0]); err != nil {
					return err
				}
				return s.showSelection()
			}},
		"unsource": {usage: "unsource", help: "clear the source, keeping targets",
			run: func(s *session, args []string) error {
				s.app.manager.ClearSource()
				return s.showSelection()
			}},
		"target": {usage: "target ENTRY...", help: "add copy targets", minArgs: 1, maxArgs: -1,
			run: func(s *session, args []string) error {
				if err := s.app.addTargets(args, "", ""); err != nil {
					return err
				}
				return s.showSelection()
			}},
		"profile": {usage: "profile NAME [SERVER]", help: "add every matching entry of a profile as target", minArgs: 1, maxArgs: 2,
			run: func(s *session, args []string) error {
				server := ""
				if len(args) == 2 {
					server = args[1]
				}
				if err := s.app.addTargets(nil, args[0], server); err != nil {
					return err
				}
				return s.showSelection()
			}},
		"untarget": {usage: "untarget ENTRY...", help: "remove copy targets", minArgs: 1, maxArgs: -1,
			run: func(s *session, args []string) error {
				data, err := s.app.data()
				if err != nil {
					return err
				}
				entries, err := resolveEntries(data, args)
				if err != nil {
					return err
				}
				for _, e := range entries {
					s.app.manager.RemoveTarget(e)
				}
				return s.showSelection()
			}},
		"clear": {usage: "clear", help: "remove every target",
			run: func(s *session, args []string) error {
				s.app.manager.ClearTargets()
				return s.showSelection()
			}},
		"selection": {usage: "selection", help: "show the source and targets",
			run: func(s *session, args []string) error {
				return s.showSelection()
			}},
		"copy": {usage: "copy", help: "copy the source over every target",
			run: func(s *session, args []string) error {
				return s.app.copySelection()
			}},
		"backup": {usage: "backup ENTRY [NAME]", help: "snapshot an entry", minArgs: 1, maxArgs: 2,
			run: func(s *session, args []string) error {
				name := ""
				if len(args) == 2 {
					name = args[1]
				}
				return s.app.createBackup(args[0], name)
			}},
		"backups": {usage: "backups [ENTRY]", help: "list backups", maxArgs: 1,
			run: func(s *session, args []string) error {
				ref := ""
				if len(args) == 1 {
					ref = args[0]
				}
				return s.app.listBackups(ref)
			}},
		"delete": {usage: "delete BACKUP", help: "delete a backup", minArgs: 1, maxArgs: 1,
			run: func(s *session, args []string) error {
				return s.app.deleteBackup(args[0])
			}},
		"restore": {usage: "restore BACKUP [ENTRY]", help: "restore a backup onto its entry", minArgs: 1, maxArgs: 2,
			run: func(s *session, args []string) error {
				entry := ""
				if len(args) == 2 {
					entry = args[1]
				}
				return s.app.restoreBackup(args[0], entry)
			}},
		"apply": {usage: "apply BACKUP ENTRY...", help: "apply a backup onto entries of the same kind", minArgs: 2, maxArgs: -1,
			run: func(s *session, args []string) error {
				return s.app.applyBackup(args[0], args[1:])
			}},
		"export": {usage: "export DEST", help: "export every settings file to a zip archive", minArgs: 1, maxArgs: 1,
			run: func(s *session, args []string) error {
				return s.app.export(args[0])
			}},
		"import": {usage: "import ARCHIVE", help: "analyze an archive; then commit or cancel", minArgs: 1, maxArgs: 1,
			run: func(s *session, args []string) error {
				_, err := s.app.analyzeImport(args[0])
				return err
			}},
		"commit": {usage: "commit [all|none|PATH...]", help: "import the analyzed archive", maxArgs: -1,
			run: func(s *session, args []string) error {
				return s.app.commitImport(parseCommitArgs(args))
			}},
		"cancel": {usage: "cancel", help: "discard the analyzed archive",
			run: func(s *session, args []string) error {
				return s.app.cancelImport()
			}},
		"root": {usage: "root [set PATH|clear]", help: "show or change the settings root", maxArgs: 2,
			run: func(s *session, args []string) error {
				return s.root(args)
			}},
		"brackets": {usage: "brackets SERVER on|off", help: "toggle always-shown brackets", minArgs: 2, maxArgs: 2,
			run: func(s *session, args []string) error {
				return s.app.setBrackets(args[0], args[1])
			}},
		"alias": {usage: "alias ENTRY [ALIAS]", help: "set an alias, or remove it when none is given", minArgs: 1, maxArgs: 2,
			run: func(s *session, args []string) error {
				alias := ""
				if len(args) == 2 {
					alias = args[1]
				}
				return s.app.setAlias(args[0], alias)
			}},
		"reset": {usage: "reset", help: "drop the selection and any analyzed archive",
			run: func(s *session, args []string) error {
				s.app.manager.Reset()
				return s.showSelection()
			}},
	}
	verbs["ls"] = verbs["list"]
	verbs["sel"] = verbs["selection"]
	return verbs
}

// run reads commands until quit or end of input
func (s *session) run() error {
	logger := logging.GetLogger("cmd.session")
	logger.Info().Msg("Session started")

	for {
		if err := s.app.ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(s.out, sessionPrompt)
		line, err := s.app.input.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				fmt.Fprintln(s.out)
				return nil
			}
			return errors.Wrap(err, errors.ErrInternal, "failed to read session input")
		}
		quit, execErr := s.exec(line)
		if execErr != nil {
			s.report(execErr)
		}
		if quit {
			logger.Info().Msg("Session ended")
			return nil
		}
	}
}

// exec runs one command line; quit is true for quit and exit
func (s *session) exec(line string) (quit bool, err error) {
	args, err := splitArgs(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(args[0]), args[1:]
	switch name {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		s.help()
		return false, nil
	}

	verb, ok := s.verbs[name]
	if !ok {
		return false, errors.Newf(errors.ErrInvalidInput, "unknown command %q, type help", name)
	}
	if len(args) < verb.minArgs || (verb.maxArgs >= 0 && len(args) > verb.maxArgs) {
		return false, errors.Newf(errors.ErrInvalidInput, "usage: %s", verb.usage)
	}
	return false, verb.run(s, args)
}

// report shows an error unless a notification already did
func (s *session) report(err error) {
	if errors.IsErrorCode(err, errors.ErrBackend) {
		return
	}
	_ = s.app.renderer.RenderError(err)
}

func (s *session) help() {
	seen := map[string]bool{}
	usages := []string{}
	for _, v := range s.verbs {
		if seen[v.usage] {
			continue
		}
		seen[v.usage] = true
		usages = append(usages, v.usage)
	}
	sort.Strings(usages)

	rows := make([]display.Row, 0, len(usages)+1)
	for _, u := range usages {
		name := strings.Fields(u)[0]
		rows = append(rows, display.Row{Cells: []string{u, s.verbs[name].help}})
	}
	rows = append(rows, display.Row{Cells: []string{"quit", "leave the session"}})
	_ = s.app.renderer.RenderResult(display.Table{
		Title:  "Session commands",
		Header: []string{"Command", "Description"},
		Rows:   rows,
	})
}

func (s *session) showSelection() error {
	source, _ := s.app.manager.Source()
	return s.app.renderer.RenderResult(display.Selection(source, s.app.manager.Targets()))
}

func (s *session) root(args []string) error {
	if len(args) == 0 || args[0] == "show" {
		return s.app.showRoot()
	}
	var err error
	switch {
	case args[0] == "set" && len(args) == 2:
		err = s.app.setRoot(args[1])
	case args[0] == "clear" && len(args) == 1:
		err = s.app.clearRoot()
	default:
		return errors.New(errors.ErrInvalidInput, "usage: root [set PATH|clear]")
	}
	if err != nil {
		return err
	}
	// the watcher follows the root
	s.startWatch()
	return nil
}

// startWatch (re)starts watching the settings root when enabled
func (s *session) startWatch() {
	logger := logging.GetLogger("cmd.session")
	if !s.app.cfg.Watch.Enabled {
		return
	}
	s.shutdownWatch()

	ctx, cancel := context.WithCancel(s.app.ctx)
	done := make(chan struct{})
	root := s.app.catalog.CustomRoot()
	go func() {
		defer close(done)
		if err := s.app.backend.Watch(ctx, root, s.app.cfg.Watch.Debounce); err != nil {
			logger.Warn().Err(err).Msg("Not watching settings for changes")
		}
	}()
	s.stopWatch, s.watchDone = cancel, done
}

func (s *session) shutdownWatch() {
	if s.stopWatch == nil {
		return
	}
	s.stopWatch()
	<-s.watchDone
	s.stopWatch, s.watchDone = nil, nil
}

// parseCommitArgs maps commit arguments to an import choice
func parseCommitArgs(args []string) importChoice {
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "all":
			return importChoice{overwriteAll: true}
		case "none":
			return importChoice{keepAll: true}
		}
	}
	return importChoice{overwrite: args}
}

// splitArgs splits a command line on whitespace, honouring single and
// double quotes so paths with spaces can be given
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, errors.New(errors.ErrInvalidInput, "unterminated quote")
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
