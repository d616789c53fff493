package gen

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"epigen/internal/common"
	"epigen/internal/errors"
)

// ArtifactStore reads prior artifacts and accepts merged ones.
type ArtifactStore interface {
	// Read returns the prior content of rel, or found=false when absent.
	Read(kind ArtifactKind, rel string) (content string, found bool, err error)
	// Write stores the final text of rel.
	Write(kind ArtifactKind, rel string, content []byte) error
	// Remove deletes rel. Removing an absent artifact is not an error.
	Remove(kind ArtifactKind, rel string) error
}

// DirStore keeps declarations under OutputDir and bundles and definitions
// under BuildDir.
type DirStore struct {
	OutputDir string
	BuildDir  string
}

// Locate returns the file system path of an artifact.
func (s DirStore) Locate(kind ArtifactKind, rel string) string {
	root := s.BuildDir
	if kind == ArtifactDeclaration {
		root = s.OutputDir
	}

	return filepath.Join(root, filepath.FromSlash(rel))
}

// Read implements ArtifactStore.
func (s DirStore) Read(kind ArtifactKind, rel string) (string, bool, error) {
	data, err := os.ReadFile(s.Locate(kind, rel))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}

	if err != nil {
		return "", false, errors.Wrapf(err, "reading %s", rel)
	}

	return string(data), true, nil
}

// Write implements ArtifactStore with an atomic replace.
func (s DirStore) Write(kind ArtifactKind, rel string, content []byte) error {
	return common.WriteFileAtomic(s.Locate(kind, rel), content)
}

// Remove implements ArtifactStore.
func (s DirStore) Remove(kind ArtifactKind, rel string) error {
	if err := os.Remove(s.Locate(kind, rel)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "removing %s", rel)
	}

	return nil
}

// MemStore is an in-memory ArtifactStore.
type MemStore struct {
	mu    sync.Mutex
	files map[string]string
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string]string)}
}

func memKey(kind ArtifactKind, rel string) string {
	return kind.String() + ":" + rel
}

// Read implements ArtifactStore.
func (s *MemStore) Read(kind ArtifactKind, rel string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.files[memKey(kind, rel)]

	return content, ok, nil
}

// Write implements ArtifactStore.
func (s *MemStore) Write(kind ArtifactKind, rel string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[memKey(kind, rel)] = string(content)

	return nil
}

// Remove implements ArtifactStore.
func (s *MemStore) Remove(kind ArtifactKind, rel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.files, memKey(kind, rel))

	return nil
}

// Put seeds a prior artifact.
func (s *MemStore) Put(kind ArtifactKind, rel, content string) {
	_ = s.Write(kind, rel, []byte(content))
}

// Get returns a stored artifact.
func (s *MemStore) Get(kind ArtifactKind, rel string) (string, bool) {
	content, ok, _ := s.Read(kind, rel)
	return content, ok
}

// Keys lists stored artifacts as "Kind:rel", sorted.
func (s *MemStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.files))
	for k := range s.files {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
