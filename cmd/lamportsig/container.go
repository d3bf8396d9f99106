package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash"
	mmap "github.com/edsrzf/mmap-go"
	"github.com/hashicorp/go-multierror"
	"github.com/nightlyone/lockfile"

	"github.com/hashsig/lamportsig"
)

// keyContainer owns the on-disk many-time private key file: N
// 16384-byte Lamport secret records followed by an 8-byte big-endian
// counter. A sibling lockfile serializes concurrent CLI invocations
// against the same key, since lamportsig.PrivateKey provides no interior
// locking itself — this is the external serialization the core asks its
// caller to provide. Adapted from container.go, which uses the same
// lockfile+mmap combination to guard a PrivateKeyContainer against
// concurrent XMSS[MT] signers.
type keyContainer struct {
	path string
	lock lockfile.Lockfile
}

// openKeyContainer acquires an exclusive lock on path's key file. The
// caller must call Close when done.
func openKeyContainer(path string) (*keyContainer, error) {
	lock, err := lockfile.New(absPathForLock(path))
	if err != nil {
		return nil, fmt.Errorf("preparing lockfile for %s: %w", path, err)
	}
	if err := lock.TryLock(); err != nil {
		return nil, fmt.Errorf("%s is locked by another process: %w", path, err)
	}
	return &keyContainer{path: path, lock: lock}, nil
}

func absPathForLock(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path + ".lock"
	}
	return abs + ".lock"
}

// Close releases the lock, aggregating any failure with go-multierror the
// way container.go's Close does.
func (c *keyContainer) Close() error {
	var result *multierror.Error
	if err := c.lock.Unlock(); err != nil {
		result = multierror.Append(result, fmt.Errorf("releasing lock on %s: %w", c.path, err))
	}
	return result.ErrorOrNil()
}

// load mmaps the key file read-only, checks it against the sniff-checksum
// sidecar if one exists, and decodes every secret plus the trailing
// counter.
func (c *keyContainer) load() ([]*lamportsig.LamportPrivateKey, uint64, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", c.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat %s: %w", c.path, err)
	}
	size := info.Size()
	if size < 8 || (size-8)%int64(lamportsig.LamportPrivateKeySize) != 0 {
		return nil, 0, fmt.Errorf("%s is not a valid many-time private key file (size %d)", c.path, size)
	}
	n := (size - 8) / int64(lamportsig.LamportPrivateKeySize)

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("mmap %s: %w", c.path, err)
	}
	defer m.Unmap()

	if err := c.checkSum(m); err != nil {
		return nil, 0, err
	}

	secrets := make([]*lamportsig.LamportPrivateKey, n)
	for i := int64(0); i < n; i++ {
		off := i * int64(lamportsig.LamportPrivateKeySize)
		sk, err := lamportsig.DecodeLamportPrivateKey(m[off : off+int64(lamportsig.LamportPrivateKeySize)])
		if err != nil {
			return nil, 0, fmt.Errorf("decoding secret %d in %s: %w", i, c.path, err)
		}
		secrets[i] = sk
	}
	counter := binary.BigEndian.Uint64(m[size-8:])
	return secrets, counter, nil
}

// save writes the full legacy framing: every secret in order, then the
// big-endian counter. Used by keygen; sign only patches the counter via
// bumpCounter.
func (c *keyContainer) save(secrets []*lamportsig.LamportPrivateKey, counter uint64) error {
	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", c.path, err)
	}
	defer f.Close()

	for i, sk := range secrets {
		if _, err := f.Write(lamportsig.EncodeLamportPrivateKey(sk)); err != nil {
			return fmt.Errorf("writing secret %d to %s: %w", i, c.path, err)
		}
	}
	var trailer [8]byte
	binary.BigEndian.PutUint64(trailer[:], counter)
	if _, err := f.Write(trailer[:]); err != nil {
		return fmt.Errorf("writing counter to %s: %w", c.path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", c.path, err)
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("rereading %s to checksum it: %w", c.path, err)
	}
	return c.writeSum(data)
}

// bumpCounter patches just the trailing 8-byte counter in place via mmap,
// so sign doesn't have to rewrite the entire (potentially many-gigabyte)
// secrets file on every call.
func (c *keyContainer) bumpCounter(newCounter uint64) error {
	f, err := os.OpenFile(c.path, os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("opening %s for update: %w", c.path, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		return fmt.Errorf("mmap %s for update: %w", c.path, err)
	}
	defer m.Unmap()

	binary.BigEndian.PutUint64(m[len(m)-8:], newCounter)
	if err := m.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", c.path, err)
	}
	return c.writeSum(m)
}

func (c *keyContainer) sumPath() string { return c.path + ".sum" }

func (c *keyContainer) writeSum(data []byte) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], xxhash.Sum64(data))
	if err := os.WriteFile(c.sumPath(), buf[:], 0o600); err != nil {
		return fmt.Errorf("writing checksum sidecar for %s: %w", c.path, err)
	}
	return nil
}

// checkSum compares data's xxhash against the sidecar written by writeSum.
// This is a fast corruption sniff-check, run before the (comparatively
// expensive) BLAKE3 decode of every secret; it carries no cryptographic
// guarantee and is skipped entirely if no sidecar is present yet.
func (c *keyContainer) checkSum(data []byte) error {
	want, err := os.ReadFile(c.sumPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading checksum sidecar for %s: %w", c.path, err)
	}
	if len(want) != 8 {
		return fmt.Errorf("checksum sidecar for %s is malformed", c.path)
	}
	if binary.BigEndian.Uint64(want) != xxhash.Sum64(data) {
		return fmt.Errorf("%s failed its corruption sniff-check (xxhash mismatch)", c.path)
	}
	return nil
}
