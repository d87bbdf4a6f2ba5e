// Package book holds the contact data model: a Record per contact and the
// insertion-ordered AddressBook that owns them.
package book

import (
	"fmt"
	"strings"

	"github.com/smileynet/addressbook/internal/failure"
	"github.com/smileynet/addressbook/internal/field"
)

// Record is one contact. The name is fixed at creation; phones keep insertion
// order and may repeat.
type Record struct {
	name     field.Name
	phones   []field.Phone
	birthday *field.Birthday
}

// NewRecord creates an empty record for name.
func NewRecord(name string) (*Record, error) {
	n, err := field.NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record's identity.
func (r *Record) Name() field.Name {
	return r.name
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []field.Phone {
	out := make([]field.Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (field.Birthday, bool) {
	if r.birthday == nil {
		return field.Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates raw and appends it. Duplicates are kept.
func (r *Record) AddPhone(raw string) error {
	p, err := field.NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// FindPhone returns the stored phone equal to raw.
func (r *Record) FindPhone(raw string) (field.Phone, error) {
	i, err := r.phoneIndex(raw)
	if err != nil {
		return field.Phone{}, err
	}
	return r.phones[i], nil
}

// RemovePhone deletes the stored phone equal to raw.
func (r *Record) RemovePhone(raw string) error {
	i, err := r.phoneIndex(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return nil
}

// EditPhone replaces the stored phone equal to oldRaw with newRaw. The record
// is left untouched if oldRaw is missing or newRaw is invalid.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	i, err := r.phoneIndex(oldRaw)
	if err != nil {
		return err
	}
	p, err := field.NewPhone(newRaw)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// AddBirthday validates raw and sets it, replacing any previous birthday.
func (r *Record) AddBirthday(raw string) error {
	b, err := field.NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// phoneIndex scans the whole list and keeps the last match, so with
// duplicates the latest entry is the one edited or removed.
func (r *Record) phoneIndex(raw string) (int, error) {
	idx := -1
	for i, p := range r.phones {
		if p.Value() == raw {
			idx = i
		}
	}
	if idx < 0 {
		return 0, failure.NotFound("phone", raw)
	}
	return idx, nil
}

// String renders the record as a single line.
func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}
	birthday := ""
	if r.birthday != nil {
		birthday = r.birthday.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s, birthday: %s",
		r.name, strings.Join(phones, "; "), birthday)
}
