// Package note reads, writes and removes file comments stored as extended
// attributes. The engine never terminates the process; every operation
// returns an error and the caller decides what is fatal.
package note

import (
	"fmt"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/kseistrup/filenote/attr"
)

// Selector describes which filesystem entry kinds an operation affects
type Selector struct {
	Files bool
	Dirs  bool
}

// DefaultSelector includes both files and directories
func DefaultSelector() Selector {
	return Selector{Files: true, Dirs: true}
}

// Validate rejects the selector that excludes everything
func (s Selector) Validate() error {
	if !s.Files && !s.Dirs {
		return ErrEmptySelector
	}
	return nil
}

// Mode is the operation implied by the command line
type Mode int

const (
	// ModeRead shows the stored comment
	ModeRead Mode = iota
	// ModeWrite stores a new comment
	ModeWrite
	// ModeRemove deletes the stored comment
	ModeRemove
)

// ResolveMode maps the user's flag combination onto an operation mode.
// An explicit remove combined with a non-empty comment value is rejected;
// an empty comment value is a deletion synonym.
func ResolveMode(removeRequested, commentGiven bool, comment string) (Mode, error) {
	if removeRequested && commentGiven && comment != "" {
		return 0, ErrConflictingOptions
	}
	switch {
	case removeRequested:
		return ModeRemove, nil
	case !commentGiven:
		return ModeRead, nil
	case comment == "":
		return ModeRemove, nil
	default:
		return ModeWrite, nil
	}
}

// Engine performs comment operations on one path at a time
type Engine struct {
	store Store
	name  attr.Name
	sel   Selector
	log   zerolog.Logger
}

// NewEngine creates an engine operating on the given attribute name with
// the given kind selector. The logger is only used for debug traces.
func NewEngine(store Store, name attr.Name, sel Selector, log zerolog.Logger) *Engine {
	return &Engine{
		store: store,
		name:  name,
		sel:   sel,
		log:   log,
	}
}

// resolve checks that path exists and is a kind the selector includes.
// It returns false with a nil error when the path's kind is filtered out,
// which callers treat as a silent skip.
func (e *Engine) resolve(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return false, fmt.Errorf("cannot access %s: %w", path, err)
	}

	switch {
	case stat.Mode().IsRegular():
		if !e.sel.Files {
			e.log.Debug().Str("path", path).Msg("Skipping file")
			return false, nil
		}
	case stat.IsDir():
		if !e.sel.Dirs {
			e.log.Debug().Str("path", path).Msg("Skipping directory")
			return false, nil
		}
	default:
		return false, fmt.Errorf("%s: %w", path, ErrUnsupportedKind)
	}

	return true, nil
}

// hasNote reports whether the engine's attribute is present on path
func (e *Engine) hasNote(path string) (bool, error) {
	names, err := e.store.List(path)
	if err != nil {
		return false, fmt.Errorf("failed to list attributes of %s: %w", path, err)
	}
	return slices.Contains(names, e.name.String()), nil
}

// Read returns the comment stored on path, or the empty string if the
// path carries no comment or is filtered out by the selector. An absent
// comment is a normal state, not an error.
func (e *Engine) Read(path string) (string, error) {
	ok, err := e.resolve(path)
	if err != nil || !ok {
		return "", err
	}

	present, err := e.hasNote(path)
	if err != nil {
		return "", err
	}
	if !present {
		return "", nil
	}

	data, err := e.store.Get(path, e.name.String())
	if err != nil {
		return "", fmt.Errorf("failed to read attribute %s of %s: %w", e.name, path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrNotText)
	}

	return string(data), nil
}

// Write stores comment on path, overwriting any existing comment. The
// comment must be non-empty valid UTF-8; callers route empty comments
// to Remove.
func (e *Engine) Write(path, comment string) error {
	if comment == "" {
		return ErrEmptyComment
	}
	if !utf8.ValidString(comment) {
		return fmt.Errorf("comment: %w", ErrNotText)
	}

	ok, err := e.resolve(path)
	if err != nil || !ok {
		return err
	}

	if err := e.store.Set(path, e.name.String(), []byte(comment)); err != nil {
		return fmt.Errorf("failed to set attribute %s on %s: %w", e.name, path, err)
	}

	e.log.Debug().Str("path", path).Stringer("attribute", e.name).Msg("Comment set")
	return nil
}

// Remove deletes the comment stored on path. Removing an absent comment
// is a successful no-op.
func (e *Engine) Remove(path string) error {
	ok, err := e.resolve(path)
	if err != nil || !ok {
		return err
	}

	present, err := e.hasNote(path)
	if err != nil {
		return err
	}
	if !present {
		return nil
	}

	if err := e.store.Remove(path, e.name.String()); err != nil {
		return fmt.Errorf("failed to remove attribute %s from %s: %w", e.name, path, err)
	}

	e.log.Debug().Str("path", path).Stringer("attribute", e.name).Msg("Comment removed")
	return nil
}

// Format renders a comment for read-mode output, prefixing the path in
// long format
func Format(path, comment string, long bool) string {
	if long {
		return fmt.Sprintf("%s: %s", path, comment)
	}
	return comment
}
