package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/command"
	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/field"
	"github.com/smileynet/addressbook/internal/logging"
	"github.com/smileynet/addressbook/internal/store"
	"github.com/smileynet/addressbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Chat      ChatCmd          `cmd:"" default:"1" help:"Start the interactive assistant (default)."`
	Birthdays BirthdaysCmd     `cmd:"" help:"Print upcoming birthdays and exit."`
	List      ListCmd          `cmd:"" help:"Print every contact and exit."`
}

// StoreFlags select the config file and override the configured store.
type StoreFlags struct {
	Config  string `help:"Read only this config file instead of the user and project layers." placeholder:"FILE"`
	Store   string `help:"Path to the address book file (overrides config)." placeholder:"PATH"`
	Backend string `help:"Store backend: json, yaml or sqlite (overrides config)."`
}

// apply copies non-empty flags onto cfg.
func (f StoreFlags) apply(cfg *config.Config) {
	if f.Store != "" {
		cfg.Store.Path = f.Store
	}
	if f.Backend != "" {
		cfg.Store.Backend = f.Backend
	}
}

// ChatCmd runs the interactive assistant until the user exits.
type ChatCmd struct {
	StoreFlags `embed:""`
	NoTUI      bool `help:"Force line mode even if stdin and stdout are a TTY." default:"false"`
}

// BirthdaysCmd prints the upcoming-birthday report.
type BirthdaysCmd struct {
	StoreFlags `embed:""`
	Today      string `help:"Reference date as DD.MM.YYYY (default: today)." placeholder:"DATE"`
	Days       int    `help:"Window length in days (overrides config)."`
}

// ListCmd prints every contact.
type ListCmd struct {
	StoreFlags `embed:""`
}

// RuntimeError reports a failure after configuration and the store were set up.
type RuntimeError struct {
	Op  string
	Err error
}

func (e *RuntimeError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *RuntimeError) Unwrap() error { return e.Err }

// loadConfig loads the explicit config file, or layered config from user and
// project paths, then applies env overrides.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		// Load treats a missing file as defaults; an explicit one must exist.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadLayered(
			os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
			".addressbook/config.yaml",
		)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// env holds the collaborators every command needs.
type env struct {
	cfg   *config.Config
	log   *logging.Logger
	store store.Store
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("closing store", "error", err)
	}
	e.log.Sync()
}

// setup loads and validates config, then opens the logger and store.
func setup(flags StoreFlags) (*env, error) {
	cfg, err := loadConfig(flags.Config)
	if err != nil {
		return nil, err
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var outputs []string
	if cfg.Log.Output != "" {
		outputs = append(outputs, cfg.Log.Output)
	}
	log, err := logging.New(cfg.Log.Mode, cfg.Log.Level, outputs...)
	if err != nil {
		return nil, err
	}
	log = log.With("backend", cfg.Store.Backend, "path", cfg.Store.Path)
	st, err := store.Open(cfg.Store)
	if err != nil {
		log.Sync()
		return nil, err
	}
	log.Debug("store opened")
	return &env{cfg: cfg, log: log, store: st}, nil
}

// upcomingOptions builds birthday query options from config.
func upcomingOptions(cfg *config.Config) []book.UpcomingOption {
	opts := []book.UpcomingOption{book.WithWindow(cfg.Birthdays.WindowDays)}
	if cfg.Birthdays.LegacyYearBoundary {
		opts = append(opts, book.WithLegacyYearBoundary())
	}
	return opts
}

// loadBook loads the address book. When the store was corrupt and its data
// moved aside, it prints a notice to notices and returns an empty book
// together with the load error; callers that can carry on may ignore it.
func loadBook(st store.Store, log *logging.Logger, notices io.Writer) (*book.AddressBook, error) {
	b, err := st.Load()
	if err == nil {
		return b, nil
	}

	var ce *store.CorruptError
	if b != nil && errors.As(err, &ce) {
		log.Warn("store is unreadable, moved aside", "backup", ce.Backup, "error", ce.Err)
		_, _ = fmt.Fprintf(notices, "Warning: %s could not be read and was moved to %s. Starting with an empty address book.\n",
			ce.Source, ce.Backup)
		return b, &RuntimeError{Op: "load", Err: err}
	}
	return nil, &RuntimeError{Op: "load", Err: err}
}

// Run executes the chat command.
func (c *ChatCmd) Run() error {
	e, err := setup(c.StoreFlags)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	defer e.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := tui.NewSession(tui.SessionOptions{
		In:         os.Stdin,
		Out:        os.Stdout,
		ForcePlain: c.NoTUI,
	})
	return c.run(ctx, os.Stderr, e.store, session, e.log, upcomingOptions(e.cfg))
}

// run loads the book, drives the session and saves the book on the way out,
// enabling testable wiring. A corrupt store does not stop the session.
func (c *ChatCmd) run(ctx context.Context, notices io.Writer, st store.Store, session tui.Session, log *logging.Logger, opts []book.UpcomingOption) error {
	b, err := loadBook(st, log, notices)
	if b == nil {
		return err
	}

	h := command.NewHandler(b, command.WithUpcomingOptions(opts...), command.WithLogger(log))
	sessionErr := session.Run(ctx, func(line string) tui.Reply {
		r := h.Handle(line)
		return tui.Reply{Text: r.Text, Failed: r.Failed, Exit: r.Exit}
	})
	if errors.Is(sessionErr, context.Canceled) {
		log.Debug("session interrupted")
		sessionErr = nil
	}

	// Save even after a session error so no edits are lost.
	if err := st.Save(h.Book()); err != nil {
		return &RuntimeError{Op: "save", Err: errors.Join(err, sessionErr)}
	}
	log.Info("address book saved", "contacts", h.Book().Len())

	if sessionErr != nil {
		return &RuntimeError{Op: "session", Err: sessionErr}
	}
	return nil
}

// Run executes the birthdays command.
func (c *BirthdaysCmd) Run() error {
	e, err := setup(c.StoreFlags)
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}
	defer e.close()

	opts, err := c.options(e.cfg)
	if err != nil {
		return fmt.Errorf("birthdays: %w", err)
	}
	return c.run(os.Stdout, os.Stderr, e.store, e.log, opts)
}

// options adds the --today and --days overrides to the configured options.
func (c *BirthdaysCmd) options(cfg *config.Config) ([]book.UpcomingOption, error) {
	opts := upcomingOptions(cfg)
	if c.Days < 0 {
		return nil, fmt.Errorf("--days must not be negative, got %d", c.Days)
	}
	if c.Days > 0 {
		opts = append(opts, book.WithWindow(c.Days))
	}
	if c.Today != "" {
		today, err := time.Parse(field.DateLayout, c.Today)
		if err != nil {
			return nil, fmt.Errorf("--today %q: expected DD.MM.YYYY", c.Today)
		}
		opts = append(opts, book.WithToday(today))
	}
	return opts, nil
}

// run prints the birthday report, enabling testable wiring.
func (c *BirthdaysCmd) run(w, notices io.Writer, st store.Store, log *logging.Logger, opts []book.UpcomingOption) error {
	b, err := loadBook(st, log, notices)
	if err != nil {
		return err
	}
	h := command.NewHandler(b, command.WithUpcomingOptions(opts...), command.WithLogger(log))
	_, _ = fmt.Fprintln(w, h.Handle("birthdays").Text)
	return nil
}

// Run executes the list command.
func (l *ListCmd) Run() error {
	e, err := setup(l.StoreFlags)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer e.close()

	return l.run(os.Stdout, os.Stderr, e.store, e.log)
}

// run prints every contact, enabling testable wiring.
func (l *ListCmd) run(w, notices io.Writer, st store.Store, log *logging.Logger) error {
	b, err := loadBook(st, log, notices)
	if err != nil {
		return err
	}
	h := command.NewHandler(b, command.WithLogger(log))
	_, _ = fmt.Fprintln(w, h.Handle("all").Text)
	return nil
}

const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var re *RuntimeError
	if errors.As(err, &re) {
		return exitRuntime
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("addressbook"),
		kong.Description("A command-line assistant for contacts, phones and birthdays."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
