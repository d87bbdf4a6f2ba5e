// Package field implements the self-validating scalar values stored on a
// contact: Name, Phone and Birthday.
//
// Each value is immutable and can only be obtained through its checked
// constructor, so a zero-value field never appears in a Record.
package field

import (
	"strings"
	"time"

	"github.com/smileynet/addressbook/internal/failure"
)

// DateLayout is the DD.MM.YYYY layout used for parsing and rendering dates.
const DateLayout = "02.01.2006"

// Field is the capability every contact attribute provides: a canonical value
// and its text rendering.
type Field[T any] interface {
	Value() T
	String() string
}

var (
	_ Field[string]    = Name{}
	_ Field[string]    = Phone{}
	_ Field[time.Time] = Birthday{}
)

// Name is a contact's identity.
type Name struct {
	value string
}

// NewName accepts any text that is not blank.
func NewName(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" {
		return Name{}, failure.InvalidValue("name", raw, "must not be empty")
	}
	return Name{value: raw}, nil
}

func (n Name) Value() string  { return n.value }
func (n Name) String() string { return n.value }

// phoneLength is the exact number of digits in a valid phone.
const phoneLength = 10

// Phone is a 10-digit phone number.
type Phone struct {
	value string
}

// NewPhone accepts exactly ten ASCII decimal digits.
func NewPhone(raw string) (Phone, error) {
	if len(raw) != phoneLength {
		return Phone{}, failure.InvalidValue("phone", raw, "")
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return Phone{}, failure.InvalidValue("phone", raw, "")
		}
	}
	return Phone{value: raw}, nil
}

func (p Phone) Value() string  { return p.value }
func (p Phone) String() string { return p.value }

// Birthday is a calendar date. The time of day is always midnight UTC.
type Birthday struct {
	date time.Time
}

// NewBirthday parses raw as DD.MM.YYYY. Impossible dates such as 31.02.2000
// are rejected.
func NewBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Birthday{}, failure.InvalidValue("birthday", raw, "expected DD.MM.YYYY")
	}
	return Birthday{date: t}, nil
}

func (b Birthday) Value() time.Time { return b.date }

// Month and Day expose the recurring part of the date.
func (b Birthday) Month() time.Month { return b.date.Month() }
func (b Birthday) Day() int          { return b.date.Day() }

func (b Birthday) String() string { return b.date.Format(DateLayout) }
