// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/cespare/xxhash/v2"
	"github.com/dchest/safefile"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/staranto/primegen/internal/sieve"
)

// sieveSubdir holds persisted sieve results beneath the base directory.
const sieveSubdir = "sieve"

// entry is the on-disk form of a sieve result. Count and Digest let a
// truncated or altered prime list be detected on read.
type entry struct {
	Limit  int    `msgpack:"limit"`
	Count  int    `msgpack:"count"`
	Digest uint64 `msgpack:"digest"`
	Primes []int  `msgpack:"primes"`
}

// digest hashes the primes as little-endian 64-bit words.
func digest(primes []int) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, p := range primes {
		binary.LittleEndian.PutUint64(buf[:], uint64(p))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Dir resolves the base cache directory.
// Precedence:
//  1. PRIMEGEN_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/primegen
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("PRIMEGEN_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "primegen"), true
	}
	return "", false
}

// Enabled returns true unless PRIMEGEN_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("PRIMEGEN_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}
	base, ok := Dir()
	if !ok {
		return "", false, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// EntryPath returns the path where the sieve result for limit would live and
// whether a file currently exists there.
func EntryPath(limit int) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(base, sieveSubdir, encodeKey(strconv.Itoa(limit)))
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// ReadSieve returns the cached sieve result for limit. A missing, unreadable
// or corrupt entry is reported as a miss.
func ReadSieve(limit int) (*sieve.Result, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(limit)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}

	var e entry
	if err := msgpack.Unmarshal(b, &e); err != nil {
		log.WithError(err).Warnf("discarding corrupt cache entry %s", p)
		return nil, false
	}
	if e.Limit != limit {
		log.Warnf("cache entry %s holds limit %d, want %d", p, e.Limit, limit)
		return nil, false
	}
	if e.Count != len(e.Primes) || e.Digest != digest(e.Primes) {
		log.Warnf("discarding cache entry %s with mismatched checksum", p)
		return nil, false
	}

	r, err := sieve.FromSlice(e.Limit, e.Primes)
	if err != nil {
		log.WithError(err).Warnf("discarding invalid cache entry %s", p)
		return nil, false
	}
	log.Debugf("sieve cache hit for %d at %s", limit, p)
	return r, true
}

// WriteSieve stores r keyed by its limit. The file is replaced atomically so
// a concurrent reader never sees a partial entry.
func WriteSieve(r *sieve.Result) error {
	if !Enabled() {
		return nil // treat as disabled.
	}
	base, ok := Dir()
	if !ok {
		return nil // treat as disabled.
	}

	dir := filepath.Join(base, sieveSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	primes := r.Slice()
	data, err := msgpack.Marshal(entry{
		Limit:  r.Limit(),
		Count:  len(primes),
		Digest: digest(primes),
		Primes: primes,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sieve result: %w", err)
	}

	p := filepath.Join(dir, encodeKey(strconv.Itoa(r.Limit())))
	if err := safefile.WriteFile(p, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// LoadOrSieve returns the cached result for limit, running the sieve and
// caching its output on a miss. opts apply to cache hits too, so a limit the
// sieve would refuse is refused here as well. Cache write failures are
// logged, not returned.
func LoadOrSieve(limit int, opts ...sieve.Option) (*sieve.Result, bool, error) {
	if err := sieve.CheckLimit(limit, opts...); err != nil {
		return nil, false, err
	}

	if r, ok := ReadSieve(limit); ok {
		return r, true, nil
	}

	r, err := sieve.Sieve(limit, opts...)
	if err != nil {
		return nil, false, err
	}

	if err := WriteSieve(r); err != nil {
		log.WithError(err).Warn("failed to cache sieve result")
	}
	return r, false, nil
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) (int, error) {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return 0, nil
	}
	base, ok := Dir()
	if !ok {
		return 0, nil
	}

	removed := 0
	maxAge := time.Duration(hours) * time.Hour
	err := filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				removed++
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to purge cache: %w", err)
	}
	return removed, nil
}

// Clear removes every cached sieve result and returns how many were removed.
func Clear() (int, error) {
	base, ok := Dir()
	if !ok {
		return 0, nil
	}

	dir := filepath.Join(base, sieveSubdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove cache file: %w", err)
		}
		removed++
	}
	return removed, nil
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
