// Package command turns a line of user input into an address book operation
// and renders the outcome, including failures, as user-facing text.
package command

import (
	"strings"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/failure"
	"github.com/smileynet/addressbook/internal/logging"
)

// Response is the result of handling one line of input.
type Response struct {
	Text   string
	Failed bool // Text describes a failure.
	Exit   bool // The session should end.
}

// Parse splits line on whitespace. The command is lower-cased; arguments keep
// their case. Blank input yields an empty command.
func Parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// definition describes one command.
type definition struct {
	name  string
	args  []string // argument names, also the exact arity
	help  string
	run   func(h *Handler, args []string) (string, error)
	exits bool
}

func (s definition) usage() string {
	if len(s.args) == 0 {
		return s.name
	}
	return s.name + " <" + strings.Join(s.args, "> <") + ">"
}

// Handler dispatches commands against an AddressBook.
type Handler struct {
	book     *book.AddressBook
	upcoming []book.UpcomingOption
	log      *logging.Logger
	defs     []definition
	byName   map[string]definition
}

// Option configures a Handler.
type Option func(*Handler)

// WithUpcomingOptions sets the options passed to UpcomingBirthdays.
func WithUpcomingOptions(opts ...book.UpcomingOption) Option {
	return func(h *Handler) { h.upcoming = append(h.upcoming, opts...) }
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// NewHandler creates a Handler operating on b.
func NewHandler(b *book.AddressBook, opts ...Option) *Handler {
	h := &Handler{book: b, log: logging.NewNop(), defs: definitions()}
	for _, opt := range opts {
		opt(h)
	}
	h.byName = make(map[string]definition, len(h.defs)+1)
	for _, s := range h.defs {
		h.byName[s.name] = s
	}
	h.byName["close"] = h.byName["exit"]
	return h
}

// Book returns the address book the handler mutates.
func (h *Handler) Book() *book.AddressBook {
	return h.book
}

// Handle runs one line of input. Blank lines produce an empty Response.
func (h *Handler) Handle(line string) Response {
	name, args := Parse(line)
	if name == "" {
		return Response{}
	}

	s, ok := h.byName[name]
	if !ok {
		h.log.Debug("unknown command", "command", name)
		return Response{Text: "Invalid command.", Failed: true}
	}

	var (
		text string
		err  error
	)
	switch {
	case len(args) < len(s.args):
		err = failure.MissingArgument(name, s.usage())
	case len(args) > len(s.args):
		err = failure.InvalidValue(name, strings.Join(args[len(s.args):], " "), "unexpected arguments")
	default:
		text, err = s.run(h, args)
	}

	if err != nil {
		h.log.Debug("command failed", "command", name, "kind", failure.KindOf(err).String(), "error", err)
		return Response{Text: Message(err), Failed: true}
	}
	h.log.Debug("command handled", "command", name)
	return Response{Text: text, Exit: s.exits}
}
