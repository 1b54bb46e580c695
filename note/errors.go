package note

import "errors"

var (
	// ErrNotFound indicates the target path does not exist
	ErrNotFound = errors.New("no such file or directory")

	// ErrUnsupportedKind indicates the target exists but is neither a
	// regular file nor a directory
	ErrUnsupportedKind = errors.New("path should be a file or a directory")

	// ErrNotText indicates the stored attribute value is not valid UTF-8
	ErrNotText = errors.New("stored comment is not valid UTF-8 text")

	// ErrEmptyComment indicates a write was attempted with an empty
	// comment; callers are expected to route empty comments to Remove
	ErrEmptyComment = errors.New("comment may not be empty")

	// ErrConflictingOptions indicates a remove request combined with a
	// non-empty comment value
	ErrConflictingOptions = errors.New("cannot both set and remove a comment")

	// ErrEmptySelector indicates a selector excluding both files and
	// directories, which would make every operation a no-op
	ErrEmptySelector = errors.New("selector excludes both files and directories")
)
