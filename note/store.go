package note

import (
	"github.com/pkg/xattr"
)

// Store is the extended attribute surface the engine runs against. The
// production implementation is SysStore; tests substitute an in-memory one.
type Store interface {
	// List returns the attribute names present on path
	List(path string) ([]string, error)

	// Get returns the value of the named attribute
	Get(path string, name string) ([]byte, error)

	// Set stores the value under the named attribute, overwriting any
	// existing value
	Set(path string, name string, data []byte) error

	// Remove deletes the named attribute; it fails if the attribute
	// is absent
	Remove(path string, name string) error
}

// SysStore accesses the extended attributes of the real filesystem
type SysStore struct{}

func (SysStore) List(path string) ([]string, error) {
	return xattr.List(path)
}

func (SysStore) Get(path string, name string) ([]byte, error) {
	return xattr.Get(path, name)
}

func (SysStore) Set(path string, name string, data []byte) error {
	return xattr.Set(path, name, data)
}

func (SysStore) Remove(path string, name string) error {
	return xattr.Remove(path, name)
}
