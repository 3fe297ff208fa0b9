// Package trigger defines the execution trigger kinds a VM session can
// run under: Verification is a read-only signature check, Application is
// full state mutation, and OnPersist/PostPersist bracket block
// processing itself.
package trigger

import "fmt"

// Type is the trigger kind under which a session executes.
type Type byte

const (
	// OnPersist runs system-level state changes before block transactions
	// execute.
	OnPersist Type = 0x01
	// PostPersist runs system-level state changes after block transactions
	// execute.
	PostPersist Type = 0x02
	// Verification is a read-only signature check; storage mutation is
	// rejected under this trigger.
	Verification Type = 0x20
	// Application is a full contract invocation permitting state mutation.
	Application Type = 0x40
	// All is the bitwise union of every defined trigger, used only to
	// express "any trigger" filters; it is never the trigger of an actual
	// session.
	All = OnPersist | PostPersist | Verification | Application
)

// String returns the trigger's canonical name.
func (t Type) String() string {
	switch t {
	case OnPersist:
		return "OnPersist"
	case PostPersist:
		return "PostPersist"
	case Verification:
		return "Verification"
	case Application:
		return "Application"
	case All:
		return "All"
	default:
		return fmt.Sprintf("Unknown(%x)", byte(t))
	}
}

// FromString parses a trigger's canonical name, returning an error for
// anything else, including the empty string.
func FromString(s string) (Type, error) {
	switch s {
	case "OnPersist":
		return OnPersist, nil
	case "PostPersist":
		return PostPersist, nil
	case "Verification":
		return Verification, nil
	case "Application":
		return Application, nil
	case "All":
		return All, nil
	default:
		return 0, fmt.Errorf("unknown trigger type: %q", s)
	}
}

// IsApplication reports whether t permits state mutation: Application
// triggers, and no others, are eligible for storage writes and contract
// destruction per the storage namespace's invariants.
func (t Type) IsApplication() bool {
	return t == Application
}
