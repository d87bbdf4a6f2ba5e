package command

import (
	"errors"
	"fmt"

	"github.com/smileynet/addressbook/internal/failure"
)

// Message maps an error to the fixed text shown to the user.
func Message(err error) string {
	var fe *failure.Error
	if !errors.As(err, &fe) {
		return fmt.Sprintf("Something went wrong: %v", err)
	}

	switch fe.Kind {
	case failure.KindInvalidValue:
		if fe.Field == "birthday" {
			return "Invalid date format. Use DD.MM.YYYY."
		}
		return "Invalid arguments."
	case failure.KindNotFound:
		if fe.Field == "phone" {
			return fmt.Sprintf("Phone %s not found.", fe.Value)
		}
		return fmt.Sprintf("%s doesn't exist.", fe.Value)
	case failure.KindMissingArgument:
		return "Not enough arguments. Usage: " + fe.Detail
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}
