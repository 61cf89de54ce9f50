package inkwell

import "errors"

// Store operations report failures through these sentinels so callers can
// branch with errors.Is instead of matching driver error strings.
var (
	// ErrNotFound is returned when a requested article or category does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a category name is already taken.
	ErrDuplicateName = errors.New("category name already taken")

	// ErrCategoryNotFound is returned when an article write names a category
	// that does not exist. Categories are never auto-created on article save.
	ErrCategoryNotFound = errors.New("category does not exist")

	// ErrEmptyName is returned when a category operation is given a blank or
	// whitespace-only name.
	ErrEmptyName = errors.New("category name is empty")

	// ErrNotAuthorized is returned when a mutating operation is invoked
	// without a capability issued by the Verifier.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrPersistence is returned when the database failed to confirm a write.
	// It is fatal for the triggering request; callers must not retry blindly.
	ErrPersistence = errors.New("storage failed to confirm write")
)
