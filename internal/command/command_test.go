package command

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/failure"
)

// wednesday is 08.03.2023.
var wednesday = time.Date(2023, time.March, 8, 12, 0, 0, 0, time.UTC)

func newHandler() *Handler {
	return NewHandler(book.New(), WithUpcomingOptions(book.WithToday(wednesday)))
}

// run feeds lines to h and returns the last response.
func run(t *testing.T, h *Handler, lines ...string) Response {
	t.Helper()
	var resp Response
	for _, line := range lines {
		resp = h.Handle(line)
	}
	return resp
}

func TestParse(t *testing.T) {
	tests := []struct {
		line     string
		wantCmd  string
		wantArgs []string
	}{
		{"", "", nil},
		{"   ", "", nil},
		{"hello", "hello", []string{}},
		{"ADD Anna 0123456789", "add", []string{"Anna", "0123456789"}},
		{"  change\tAnna  1  2 ", "change", []string{"Anna", "1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, args := Parse(tt.line)
			if cmd != tt.wantCmd {
				t.Errorf("cmd = %q, want %q", cmd, tt.wantCmd)
			}
			if strings.Join(args, ",") != strings.Join(tt.wantArgs, ",") {
				t.Errorf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestHandle_Session(t *testing.T) {
	h := newHandler()

	steps := []struct {
		line       string
		wantText   string
		wantFailed bool
	}{
		{"hello", "How can I help you?", false},
		{"all", "Contacts list is empty.", false},
		{"birthdays", "Contacts list is empty.", false},
		{"add Anna 0123456789", "Contact added.", false},
		{"add Anna 1111111111", "Contact added.", false},
		{"phone Anna", "0123456789; 1111111111", false},
		{"change Anna 0123456789 2222222222", "Contact updated.", false},
		{"phone Anna", "2222222222; 1111111111", false},
		{"show-birthday Anna", "Anna doesn't have birthday.", false},
		{"birthdays", "No upcoming birthdays.", false},
		{"add-birthday Anna 10.03.2000", "Birthday added.", false},
		{"show-birthday Anna", "10.03.2000", false},
		{"add-birthday Bob 11.03.1990", "Birthday added.", false},
		{"birthdays", "Anna: 10.03.2023\nBob: 13.03.2023", false},
		{"remove-phone Anna 1111111111", "Phone removed.", false},
		{"all", "Contact name: Anna, phones: 2222222222, birthday: 10.03.2000\n" +
			"Contact name: Bob, phones: , birthday: 11.03.1990", false},
		{"phone Bob", "Bob has no phones.", false},
		{"delete Bob", "Contact deleted.", false},
		{"phone Bob", "Bob doesn't exist.", true},
	}

	for _, step := range steps {
		resp := h.Handle(step.line)
		if resp.Text != step.wantText {
			t.Errorf("Handle(%q).Text = %q, want %q", step.line, resp.Text, step.wantText)
		}
		if resp.Failed != step.wantFailed {
			t.Errorf("Handle(%q).Failed = %v, want %v", step.line, resp.Failed, step.wantFailed)
		}
		if resp.Exit {
			t.Errorf("Handle(%q).Exit = true, want false", step.line)
		}
	}
}

func TestHandle_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		line  string
		want  string
	}{
		{"unknown command", nil, "fly", "Invalid command."},
		{"invalid phone", nil, "add Anna 123", "Invalid arguments."},
		{"missing phone", nil, "add Anna", "Not enough arguments. Usage: add <name> <phone>"},
		{"missing everything", nil, "change", "Not enough arguments. Usage: change <name> <old-phone> <new-phone>"},
		{"extra arguments", nil, "phone Anna Bob", "Invalid arguments."},
		{"change unknown contact", nil, "change Anna 0123456789 1111111111", "Anna doesn't exist."},
		{"change unknown phone", []string{"add Anna 0123456789"}, "change Anna 9999999999 1111111111", "Phone 9999999999 not found."},
		{"change to invalid phone", []string{"add Anna 0123456789"}, "change Anna 0123456789 abc", "Invalid arguments."},
		{"remove unknown phone", []string{"add Anna 0123456789"}, "remove-phone Anna 1111111111", "Phone 1111111111 not found."},
		{"bad birthday", nil, "add-birthday Anna 2000-03-10", "Invalid date format. Use DD.MM.YYYY."},
		{"impossible birthday", []string{"add Anna 0123456789"}, "add-birthday Anna 30.02.2000", "Invalid date format. Use DD.MM.YYYY."},
		{"show birthday of unknown", nil, "show-birthday Anna", "Anna doesn't exist."},
		{"delete unknown", nil, "delete Anna", "Anna doesn't exist."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler()
			run(t, h, tt.setup...)

			resp := h.Handle(tt.line)
			if resp.Text != tt.want {
				t.Errorf("Handle(%q).Text = %q, want %q", tt.line, resp.Text, tt.want)
			}
			if !resp.Failed {
				t.Errorf("Handle(%q).Failed = false, want true", tt.line)
			}
		})
	}
}

func TestHandle_NoPartialMutation(t *testing.T) {
	h := newHandler()

	// A new contact with an invalid phone or date is not created.
	run(t, h, "add Anna 123", "add-birthday Bob 99.99.2000")

	if h.Book().Len() != 0 {
		t.Errorf("book has %d records after failed adds, want 0:\n%s", h.Book().Len(), h.Book())
	}
}

func TestHandle_AddToExistingKeepsPhones(t *testing.T) {
	h := newHandler()
	run(t, h, "add Anna 0123456789", "add-birthday Anna 10.03.2000", "add Anna 1111111111")

	r, ok := h.Book().Find("Anna")
	if !ok {
		t.Fatal("Anna missing")
	}
	if got := len(r.Phones()); got != 2 {
		t.Errorf("phones = %d, want 2", got)
	}
	if _, ok := r.Birthday(); !ok {
		t.Error("birthday lost after adding a phone")
	}
}

func TestHandle_ExitAndClose(t *testing.T) {
	for _, line := range []string{"exit", "close", "EXIT"} {
		t.Run(line, func(t *testing.T) {
			resp := newHandler().Handle(line)
			if resp.Text != "Good bye!" {
				t.Errorf("Text = %q, want %q", resp.Text, "Good bye!")
			}
			if !resp.Exit {
				t.Error("Exit = false, want true")
			}
		})
	}
}

func TestHandle_BlankLine(t *testing.T) {
	resp := newHandler().Handle("   ")
	if resp != (Response{}) {
		t.Errorf("Handle(blank) = %+v, want zero Response", resp)
	}
}

func TestHandle_Help(t *testing.T) {
	resp := newHandler().Handle("help")
	if resp.Failed {
		t.Fatalf("help failed: %s", resp.Text)
	}
	for _, want := range []string{"add <name> <phone>", "add-birthday <name> <DD.MM.YYYY>", "birthdays", "exit"} {
		if !strings.Contains(resp.Text, want) {
			t.Errorf("help = %q, want to contain %q", resp.Text, want)
		}
	}
}

func TestHandle_LegacyYearBoundary(t *testing.T) {
	monday := time.Date(2025, time.December, 29, 9, 0, 0, 0, time.UTC)

	fixed := NewHandler(book.New(), WithUpcomingOptions(book.WithToday(monday)))
	legacy := NewHandler(book.New(), WithUpcomingOptions(book.WithToday(monday), book.WithLegacyYearBoundary()))

	for _, h := range []*Handler{fixed, legacy} {
		run(t, h, "add-birthday Jan 02.01.1990")
	}

	if got := fixed.Handle("birthdays").Text; got != "Jan: 02.01.2026" {
		t.Errorf("fixed birthdays = %q, want %q", got, "Jan: 02.01.2026")
	}
	if got := legacy.Handle("birthdays").Text; got != "No upcoming birthdays." {
		t.Errorf("legacy birthdays = %q, want %q", got, "No upcoming birthdays.")
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"phone invalid", failure.InvalidValue("phone", "1", ""), "Invalid arguments."},
		{"birthday invalid", failure.InvalidValue("birthday", "x", "expected DD.MM.YYYY"), "Invalid date format. Use DD.MM.YYYY."},
		{"contact missing", failure.NotFound("contact", "Zed"), "Zed doesn't exist."},
		{"phone missing", failure.NotFound("phone", "0123456789"), "Phone 0123456789 not found."},
		{"missing argument", failure.MissingArgument("phone", "phone <name>"), "Not enough arguments. Usage: phone <name>"},
		{"foreign error", errors.New("disk full"), "Something went wrong: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatUpcoming(t *testing.T) {
	ups := []book.Upcoming{
		{Name: "Anna", Date: time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC)},
		{Name: "Bob", Date: time.Date(2023, time.March, 13, 0, 0, 0, 0, time.UTC)},
	}
	want := "Anna: 10.03.2023\nBob: 13.03.2023"
	if got := FormatUpcoming(ups); got != want {
		t.Errorf("FormatUpcoming() = %q, want %q", got, want)
	}
}
