// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = "# primegen demo\n\nDo a demo thing\nacross two lines.\n\n## Examples\n\n```sh\n# First one\nprimegen demo  --a\nprimegen demo --b\n```\n"

func TestSummary(t *testing.T) {
	assert.Equal(t, "Do a demo thing across two lines.", summary(page))
	assert.Equal(t, "only title", summary("# only title\n\n## Flags\n"))
	assert.Empty(t, summary("no heading"))
}

func TestExamples(t *testing.T) {
	got := examples(page)
	assert.Equal(t, []example{
		{Desc: "First one", Cmd: "primegen demo --a"},
		{Desc: "Example", Cmd: "primegen demo --b"},
	}, got)

	assert.Nil(t, examples("# nothing here"))
}

func TestBuildTLDRFallback(t *testing.T) {
	out := buildTLDR("demo", "", nil)
	assert.Contains(t, out, "# primegen-demo")
	assert.Contains(t, out, "`primegen demo --help`")
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "docs", "commands")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.md"), []byte(page), 0o644))

	n, err := generate(root, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.FileExists(t, filepath.Join(root, "docs", "man", "share", "man1", "primegen-demo.1"))
	tldr, err := os.ReadFile(filepath.Join(root, "docs", "tldr", "primegen-demo.md"))
	require.NoError(t, err)
	assert.Contains(t, string(tldr), "- First one:")

	_, err = generate(t.TempDir(), true)
	assert.Error(t, err)
}
