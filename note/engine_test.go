package note

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kseistrup/filenote/attr"
)

const testAttr = "user.xdg.comment"

// fakeStore keeps attributes in memory, keyed by path
type fakeStore struct {
	attrs map[string]map[string][]byte

	listErr   error
	getErr    error
	setErr    error
	removeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{attrs: make(map[string]map[string][]byte)}
}

func (f *fakeStore) List(path string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var names []string
	for name := range f.attrs[path] {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeStore) Get(path, name string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.attrs[path][name]
	if !ok {
		return nil, errors.New("attribute not found")
	}
	return data, nil
}

func (f *fakeStore) Set(path, name string, data []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.attrs[path] == nil {
		f.attrs[path] = make(map[string][]byte)
	}
	f.attrs[path][name] = data
	return nil
}

func (f *fakeStore) Remove(path, name string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	if _, ok := f.attrs[path][name]; !ok {
		return errors.New("attribute not found")
	}
	delete(f.attrs[path], name)
	return nil
}

func newTestEngine(t *testing.T, store Store, sel Selector) *Engine {
	t.Helper()
	name, err := attr.Parse(testAttr)
	require.NoError(t, err)
	return NewEngine(store, name, sel, zerolog.Nop())
}

func tempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	return path
}

func TestRoundTrip(t *testing.T) {
	engine := newTestEngine(t, newFakeStore(), DefaultSelector())
	path := tempFile(t)

	for _, comment := range []string{"hello", "multi word note", "blåbærgrød — π"} {
		require.NoError(t, engine.Write(path, comment))

		got, err := engine.Read(path)
		require.NoError(t, err)
		assert.Equal(t, comment, got)
	}
}

func TestWriteOverwrites(t *testing.T) {
	engine := newTestEngine(t, newFakeStore(), DefaultSelector())
	path := tempFile(t)

	require.NoError(t, engine.Write(path, "first"))
	require.NoError(t, engine.Write(path, "second"))

	got, err := engine.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestReadAbsentComment(t *testing.T) {
	engine := newTestEngine(t, newFakeStore(), DefaultSelector())

	got, err := engine.Read(tempFile(t))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(t, store, DefaultSelector())
	path := tempFile(t)

	// Removing an absent comment must not even reach the store's
	// removal primitive.
	store.removeErr = errors.New("removal primitive called")
	require.NoError(t, engine.Remove(path))
	store.removeErr = nil

	require.NoError(t, engine.Write(path, "doomed"))
	require.NoError(t, engine.Remove(path))
	require.NoError(t, engine.Remove(path))

	got, err := engine.Read(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteRejectsEmptyComment(t *testing.T) {
	engine := newTestEngine(t, newFakeStore(), DefaultSelector())

	err := engine.Write(tempFile(t), "")
	assert.ErrorIs(t, err, ErrEmptyComment)
}

func TestWriteRejectsInvalidUTF8(t *testing.T) {
	engine := newTestEngine(t, newFakeStore(), DefaultSelector())

	err := engine.Write(tempFile(t), "bad \xff\xfe bytes")
	assert.ErrorIs(t, err, ErrNotText)
}

func TestReadRejectsInvalidUTF8(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(t, store, DefaultSelector())
	path := tempFile(t)

	// Another tool wrote binary data under our attribute name.
	require.NoError(t, store.Set(path, testAttr, []byte{0xff, 0xfe, 0x00}))

	_, err := engine.Read(path)
	assert.ErrorIs(t, err, ErrNotText)
}

func TestMissingPath(t *testing.T) {
	engine := newTestEngine(t, newFakeStore(), DefaultSelector())
	path := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := engine.Read(path)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, engine.Write(path, "note"), ErrNotFound)
	assert.ErrorIs(t, engine.Remove(path), ErrNotFound)
}

func TestDanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))

	engine := newTestEngine(t, newFakeStore(), DefaultSelector())

	// Symlinks are followed, so a link to a missing target reads as a
	// missing path rather than an unsupported kind.
	_, err := engine.Read(link)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnsupportedKind(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "s")
	listener, err := net.Listen("unix", sock)
	if err != nil {
		t.Skipf("cannot create unix socket: %v", err)
	}
	defer listener.Close()

	engine := newTestEngine(t, newFakeStore(), DefaultSelector())

	_, err = engine.Read(sock)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
	assert.ErrorIs(t, engine.Write(sock, "note"), ErrUnsupportedKind)
}

func TestSelectorFiltersDirectories(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(t, store, Selector{Files: true})
	dir := t.TempDir()

	require.NoError(t, store.Set(dir, testAttr, []byte("keep me")))

	// All operations on a filtered-out directory are silent no-ops
	// and the existing comment stays untouched.
	require.NoError(t, engine.Write(dir, "new note"))
	require.NoError(t, engine.Remove(dir))

	got, err := engine.Read(dir)
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.Equal(t, []byte("keep me"), store.attrs[dir][testAttr])
}

func TestSelectorFiltersFiles(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(t, store, Selector{Dirs: true})
	path := tempFile(t)

	require.NoError(t, engine.Write(path, "ignored"))
	assert.Empty(t, store.attrs[path])
}

func TestSelectorValidate(t *testing.T) {
	assert.NoError(t, DefaultSelector().Validate())
	assert.NoError(t, Selector{Files: true}.Validate())
	assert.NoError(t, Selector{Dirs: true}.Validate())
	assert.ErrorIs(t, Selector{}.Validate(), ErrEmptySelector)
}

func TestListFailureIsReported(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("operation not permitted")
	engine := newTestEngine(t, store, DefaultSelector())
	path := tempFile(t)

	_, err := engine.Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation not permitted")
	assert.Contains(t, err.Error(), path)
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name         string
		remove       bool
		commentGiven bool
		comment      string
		want         Mode
		wantErr      error
	}{
		{"plain read", false, false, "", ModeRead, nil},
		{"write", false, true, "a note", ModeWrite, nil},
		{"remove flag", true, false, "", ModeRemove, nil},
		{"empty comment is remove", false, true, "", ModeRemove, nil},
		{"remove with empty comment", true, true, "", ModeRemove, nil},
		{"remove with comment conflicts", true, true, "a note", 0, ErrConflictingOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveMode(tt.remove, tt.commentGiven, tt.comment)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "hello", Format("/tmp/f", "hello", false))
	assert.Equal(t, "/tmp/f: hello", Format("/tmp/f", "hello", true))
}
