package globals

import "errors"

// Sentinel errors for globals construction and binding.
var (
	// ErrInvalidName indicates a global name that templates cannot reference.
	ErrInvalidName = errors.New("invalid global name")

	// ErrDuplicateName indicates a name registered more than once.
	ErrDuplicateName = errors.New("duplicate global name")

	// ErrInvalidFunc indicates a callable with an unsupported signature.
	// Callables take zero or one argument and return a value, optionally
	// followed by an error.
	ErrInvalidFunc = errors.New("invalid global function")

	// ErrInvalidSource indicates an object that cannot be registered.
	ErrInvalidSource = errors.New("invalid globals source")

	// ErrNameConflict indicates two globals that map to the same exposed
	// name under the naming policy.
	ErrNameConflict = errors.New("global name conflict")
)
