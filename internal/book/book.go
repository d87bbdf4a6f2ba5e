package book

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// AddressBook maps contact names to records and iterates in insertion order.
// It is not safe for concurrent use.
type AddressBook struct {
	records *orderedmap.OrderedMap[string, *Record]
}

// New creates an empty AddressBook.
func New() *AddressBook {
	return &AddressBook{records: orderedmap.New[string, *Record]()}
}

// AddRecord stores r under its name. An existing record with the same name is
// replaced wholesale and keeps its position in iteration order.
func (b *AddressBook) AddRecord(r *Record) {
	b.records.Set(r.Name().Value(), r)
}

// Find returns the record for name and whether it exists.
func (b *AddressBook) Find(name string) (*Record, bool) {
	return b.records.Get(name)
}

// Delete removes the record for name. Deleting a missing name is a no-op.
func (b *AddressBook) Delete(name string) {
	b.records.Delete(name)
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return b.records.Len()
}

// Records returns the records in iteration order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, b.records.Len())
	for pair := b.records.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// String renders every record on its own line.
func (b *AddressBook) String() string {
	lines := make([]string, 0, b.records.Len())
	for pair := b.records.Oldest(); pair != nil; pair = pair.Next() {
		lines = append(lines, pair.Value.String())
	}
	return strings.Join(lines, "\n")
}
