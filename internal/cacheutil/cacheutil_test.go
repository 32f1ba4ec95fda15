// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/staranto/primegen/internal/sieve"
)

func setupCacheDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PRIMEGEN_CACHE_DIR", dir)
	t.Setenv("PRIMEGEN_CACHE", "")
	return dir
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
	}
	for _, tt := range tests {
		t.Setenv("PRIMEGEN_CACHE", tt.value)
		assert.Equal(t, tt.want, Enabled(), "PRIMEGEN_CACHE=%q", tt.value)
	}
}

func TestEnsureBaseDir(t *testing.T) {
	dir := filepath.Join(setupCacheDir(t), "nested")
	t.Setenv("PRIMEGEN_CACHE_DIR", dir)

	got, ok, err := EnsureBaseDir()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dir, got)
	assert.DirExists(t, dir)

	t.Setenv("PRIMEGEN_CACHE", "0")
	_, ok, err = EnsureBaseDir()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteAndReadSieve(t *testing.T) {
	setupCacheDir(t)

	_, ok := ReadSieve(30)
	assert.False(t, ok)

	r, err := sieve.Sieve(30)
	require.NoError(t, err)
	require.NoError(t, WriteSieve(r))

	p, exists := EntryPath(30)
	assert.True(t, exists)
	assert.FileExists(t, p)

	got, ok := ReadSieve(30)
	require.True(t, ok)
	assert.Equal(t, r.Slice(), got.Slice())
	assert.Equal(t, 30, got.Limit())

	_, ok = ReadSieve(31)
	assert.False(t, ok)
}

func TestReadSieveCorrupt(t *testing.T) {
	setupCacheDir(t)

	p, _ := EntryPath(10)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("not msgpack"), 0o600))

	_, ok := ReadSieve(10)
	assert.False(t, ok)
}

func TestDisabledCacheIsNoop(t *testing.T) {
	dir := setupCacheDir(t)
	t.Setenv("PRIMEGEN_CACHE", "false")

	r, err := sieve.Sieve(10)
	require.NoError(t, err)
	require.NoError(t, WriteSieve(r))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, ok := ReadSieve(10)
	assert.False(t, ok)
}

func TestLoadOrSieve(t *testing.T) {
	setupCacheDir(t)

	r, hit, err := LoadOrSieve(100)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 25, r.Len())

	r, hit, err = LoadOrSieve(100)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 25, r.Len())

	_, _, err = LoadOrSieve(-1)
	assert.ErrorIs(t, err, sieve.ErrInvalidArgument)
}

func TestLoadOrSieveHonorsMaxLimitOnHit(t *testing.T) {
	setupCacheDir(t)

	_, hit, err := LoadOrSieve(1000)
	require.NoError(t, err)
	require.False(t, hit)

	r, hit, err := LoadOrSieve(1000, sieve.WithMaxLimit(100))
	assert.ErrorIs(t, err, sieve.ErrResourceExhausted)
	assert.False(t, hit)
	assert.Nil(t, r)
}

func TestReadSieveRejectsTamperedEntry(t *testing.T) {
	setupCacheDir(t)

	write := func(e entry) {
		t.Helper()
		data, err := msgpack.Marshal(e)
		require.NoError(t, err)
		p, _ := EntryPath(100)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, data, 0o600))
	}

	r, err := sieve.Sieve(100)
	require.NoError(t, err)
	full := r.Slice()

	// 89 dropped, digest of the full list.
	dropped := append(append([]int{}, full[:23]...), full[24:]...)
	write(entry{Limit: 100, Count: len(full), Digest: digest(full), Primes: dropped})
	_, ok := ReadSieve(100)
	assert.False(t, ok)

	// Consistent checksum but a gap below sqrt(100).
	gap := []int{2, 5, 7, 11}
	write(entry{Limit: 100, Count: len(gap), Digest: digest(gap), Primes: gap})
	_, ok = ReadSieve(100)
	assert.False(t, ok)

	write(entry{Limit: 100, Count: len(full), Digest: digest(full), Primes: full})
	got, ok := ReadSieve(100)
	require.True(t, ok)
	assert.Equal(t, full, got.Slice())
}

func TestPurge(t *testing.T) {
	setupCacheDir(t)

	r, err := sieve.Sieve(10)
	require.NoError(t, err)
	require.NoError(t, WriteSieve(r))
	p, _ := EntryPath(10)

	removed, err := Purge(0)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	// Fresh files survive.
	removed, err = Purge(1)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.FileExists(t, p)

	old := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(p, old, old))

	removed, err = Purge(1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, p)
}

func TestPurgeMissingDir(t *testing.T) {
	t.Setenv("PRIMEGEN_CACHE_DIR", filepath.Join(t.TempDir(), "missing"))

	removed, err := Purge(1)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestClear(t *testing.T) {
	setupCacheDir(t)

	removed, err := Clear()
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	for _, limit := range []int{10, 100} {
		r, err := sieve.Sieve(limit)
		require.NoError(t, err)
		require.NoError(t, WriteSieve(r))
	}

	removed, err = Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, ok := ReadSieve(10)
	assert.False(t, ok)
}
