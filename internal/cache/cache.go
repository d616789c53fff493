// Package cache remembers what every unit looked like when it was last
// generated so unchanged units can be skipped.
//
// A unit is fresh when the digest of its inputs matches the recorded one
// and each of its artifacts on disk still hashes to what was written.
// Hand edits to an artifact therefore make the unit dirty again.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"epigen/internal/common"
	"epigen/internal/errors"
	"epigen/internal/logger"
)

// DefaultName is the cache file name inside the build directory.
const DefaultName = "epigen-cache.bin"

const formatVersion = 1

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic("cache: failed to create CBOR enc mode: " + err.Error())
	}

	encMode = em
}

// Entry is the recorded state of one unit.
type Entry struct {
	// Input digests the unit's spec and the specs it depends on.
	Input string `cbor:"1,keyasint"`
	// Outputs maps each artifact path to the digest of its content.
	Outputs map[string]string `cbor:"2,keyasint"`
}

type snapshot struct {
	Version     int              `cbor:"1,keyasint"`
	Fingerprint string           `cbor:"2,keyasint"`
	Units       map[string]Entry `cbor:"3,keyasint"`
}

// Cache is safe for concurrent use. A nil *Cache is a disabled cache:
// nothing is fresh and nothing is saved.
type Cache struct {
	path        string
	fingerprint string

	mu    sync.Mutex
	units map[string]Entry
}

// Open loads the cache at path. A missing, unreadable or outdated cache,
// or one written under a different configuration fingerprint, starts empty.
func Open(path, fingerprint string) (*Cache, error) {
	c := &Cache{path: path, fingerprint: fingerprint, units: make(map[string]Entry)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}

	if err != nil {
		return nil, errors.Wrapf(err, "reading cache %s", path)
	}

	var snap snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		logger.Logger.Warnw("ignoring unreadable build cache", "file", path, "error", err)
		return c, nil
	}

	if snap.Version != formatVersion || snap.Fingerprint != fingerprint {
		logger.Logger.Debugw("build cache invalidated", "file", path)
		return c, nil
	}

	if snap.Units != nil {
		c.units = snap.Units
	}

	return c, nil
}

// Sum digests parts. Each part is length-prefixed so concatenations differ.
func Sum(parts ...[]byte) string {
	h := sha256.New()

	var n [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint digests the canonical CBOR encoding of v. Use it for the
// settings that change generated text.
func Fingerprint(v any) (string, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "encoding cache fingerprint")
	}

	return Sum(data), nil
}

// Fresh reports whether unit can be skipped. outputs maps every artifact
// path to its current content, nil when the file is missing.
func (c *Cache) Fresh(unit, input string, outputs map[string][]byte) bool {
	if c == nil {
		return false
	}

	c.mu.Lock()
	e, ok := c.units[unit]
	c.mu.Unlock()

	if !ok || e.Input != input || len(e.Outputs) != len(outputs) {
		return false
	}

	for rel, content := range outputs {
		want, ok := e.Outputs[rel]
		if !ok || content == nil || Sum(content) != want {
			return false
		}
	}

	return true
}

// Record stores the state of unit after its artifacts were generated.
func (c *Cache) Record(unit, input string, outputs map[string][]byte) {
	if c == nil {
		return
	}

	e := Entry{Input: input, Outputs: make(map[string]string, len(outputs))}
	for rel, content := range outputs {
		e.Outputs[rel] = Sum(content)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.units[unit] = e
}

// Retain drops every unit not listed.
func (c *Cache) Retain(units []string) {
	if c == nil {
		return
	}

	keep := make(map[string]struct{}, len(units))
	for _, u := range units {
		keep[u] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for u := range c.units {
		if _, ok := keep[u]; !ok {
			delete(c.units, u)
		}
	}
}

// Units lists the recorded units, sorted.
func (c *Cache) Units() []string {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.units))
	for u := range c.units {
		out = append(out, u)
	}

	sort.Strings(out)

	return out
}

// Save writes the cache atomically.
func (c *Cache) Save() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	data, err := encMode.Marshal(snapshot{
		Version:     formatVersion,
		Fingerprint: c.fingerprint,
		Units:       c.units,
	})
	c.mu.Unlock()

	if err != nil {
		return errors.Wrap(err, "encoding build cache")
	}

	return common.WriteFileAtomic(c.path, data)
}
