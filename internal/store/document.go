package store

import (
	"fmt"

	"github.com/smileynet/addressbook/internal/book"
)

// documentVersion is bumped when the on-disk layout changes incompatibly.
const documentVersion = 1

// document is the serialized form shared by every backend.
type document struct {
	Version  int       `json:"version" yaml:"version"`
	Contacts []contact `json:"contacts" yaml:"contacts"`
}

type contact struct {
	Name     string   `json:"name" yaml:"name"`
	Phones   []string `json:"phones" yaml:"phones"`
	Birthday string   `json:"birthday,omitempty" yaml:"birthday,omitempty"`
}

// encode flattens b into a document, preserving iteration and phone order.
func encode(b *book.AddressBook) document {
	records := b.Records()
	doc := document{Version: documentVersion, Contacts: make([]contact, 0, len(records))}
	for _, r := range records {
		phones := r.Phones()
		c := contact{Name: r.Name().Value(), Phones: make([]string, len(phones))}
		for i, p := range phones {
			c.Phones[i] = p.Value()
		}
		if bd, ok := r.Birthday(); ok {
			c.Birthday = bd.String()
		}
		doc.Contacts = append(doc.Contacts, c)
	}
	return doc
}

// decode rebuilds a book from doc, validating every value again.
func decode(doc document) (*book.AddressBook, error) {
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("unsupported version %d", doc.Version)
	}

	b := book.New()
	for i, c := range doc.Contacts {
		r, err := book.NewRecord(c.Name)
		if err != nil {
			return nil, fmt.Errorf("contact %d: %w", i, err)
		}
		for _, p := range c.Phones {
			if err := r.AddPhone(p); err != nil {
				return nil, fmt.Errorf("contact %q: %w", c.Name, err)
			}
		}
		if c.Birthday != "" {
			if err := r.AddBirthday(c.Birthday); err != nil {
				return nil, fmt.Errorf("contact %q: %w", c.Name, err)
			}
		}
		b.AddRecord(r)
	}
	return b, nil
}
