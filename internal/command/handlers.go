package command

import (
	"fmt"
	"strings"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/failure"
)

const emptyBook = "Contacts list is empty."

// definitions returns every command in help order.
func definitions() []definition {
	return []definition{
		{name: "hello", help: "greet the assistant", run: (*Handler).hello},
		{name: "add", args: []string{"name", "phone"}, help: "add a contact or a phone to it", run: (*Handler).add},
		{name: "change", args: []string{"name", "old-phone", "new-phone"}, help: "replace a phone", run: (*Handler).change},
		{name: "phone", args: []string{"name"}, help: "show a contact's phones", run: (*Handler).phone},
		{name: "remove-phone", args: []string{"name", "phone"}, help: "remove a phone", run: (*Handler).removePhone},
		{name: "delete", args: []string{"name"}, help: "delete a contact", run: (*Handler).delete},
		{name: "add-birthday", args: []string{"name", "DD.MM.YYYY"}, help: "set a contact's birthday", run: (*Handler).addBirthday},
		{name: "show-birthday", args: []string{"name"}, help: "show a contact's birthday", run: (*Handler).showBirthday},
		{name: "birthdays", help: "list birthdays in the coming week", run: (*Handler).birthdays},
		{name: "all", help: "list every contact", run: (*Handler).all},
		{name: "help", help: "show this help", run: (*Handler).help},
		{name: "exit", help: "save and quit (also: close)", run: (*Handler).exit, exits: true},
	}
}

func (h *Handler) find(name string) (*book.Record, error) {
	r, ok := h.book.Find(name)
	if !ok {
		return nil, failure.NotFound("contact", name)
	}
	return r, nil
}

func (h *Handler) hello([]string) (string, error) {
	return "How can I help you?", nil
}

func (h *Handler) add(args []string) (string, error) {
	name, phone := args[0], args[1]
	if r, ok := h.book.Find(name); ok {
		if err := r.AddPhone(phone); err != nil {
			return "", err
		}
		return "Contact added.", nil
	}

	r, err := book.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}
	h.book.AddRecord(r)
	return "Contact added.", nil
}

func (h *Handler) change(args []string) (string, error) {
	r, err := h.find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return "Contact updated.", nil
}

func (h *Handler) phone(args []string) (string, error) {
	r, err := h.find(args[0])
	if err != nil {
		return "", err
	}
	phones := r.Phones()
	if len(phones) == 0 {
		return fmt.Sprintf("%s has no phones.", args[0]), nil
	}
	out := make([]string, len(phones))
	for i, p := range phones {
		out[i] = p.String()
	}
	return strings.Join(out, "; "), nil
}

func (h *Handler) removePhone(args []string) (string, error) {
	r, err := h.find(args[0])
	if err != nil {
		return "", err
	}
	if err := r.RemovePhone(args[1]); err != nil {
		return "", err
	}
	return "Phone removed.", nil
}

func (h *Handler) delete(args []string) (string, error) {
	if _, err := h.find(args[0]); err != nil {
		return "", err
	}
	h.book.Delete(args[0])
	return "Contact deleted.", nil
}

func (h *Handler) addBirthday(args []string) (string, error) {
	name, date := args[0], args[1]
	if r, ok := h.book.Find(name); ok {
		if err := r.AddBirthday(date); err != nil {
			return "", err
		}
		return "Birthday added.", nil
	}

	r, err := book.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := r.AddBirthday(date); err != nil {
		return "", err
	}
	h.book.AddRecord(r)
	return "Birthday added.", nil
}

func (h *Handler) showBirthday(args []string) (string, error) {
	r, err := h.find(args[0])
	if err != nil {
		return "", err
	}
	bd, ok := r.Birthday()
	if !ok {
		return fmt.Sprintf("%s doesn't have birthday.", args[0]), nil
	}
	return bd.String(), nil
}

func (h *Handler) birthdays([]string) (string, error) {
	if h.book.Len() == 0 {
		return emptyBook, nil
	}
	upcoming := h.book.UpcomingBirthdays(h.upcoming...)
	if len(upcoming) == 0 {
		return "No upcoming birthdays.", nil
	}
	return FormatUpcoming(upcoming), nil
}

func (h *Handler) all([]string) (string, error) {
	if h.book.Len() == 0 {
		return emptyBook, nil
	}
	return h.book.String(), nil
}

func (h *Handler) help([]string) (string, error) {
	width := 0
	for _, s := range h.defs {
		width = max(width, len(s.usage()))
	}
	lines := make([]string, len(h.defs))
	for i, s := range h.defs {
		lines[i] = fmt.Sprintf("%-*s  %s", width, s.usage(), s.help)
	}
	return strings.Join(lines, "\n"), nil
}

func (h *Handler) exit([]string) (string, error) {
	return "Good bye!", nil
}

// FormatUpcoming renders one "<name>: DD.MM.YYYY" line per entry.
func FormatUpcoming(upcoming []book.Upcoming) string {
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = u.Name + ": " + u.FormattedDate()
	}
	return strings.Join(lines, "\n")
}
