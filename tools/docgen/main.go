// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

// docgen reads docs/commands/<cmd>.md and renders
//   - docs/man/share/man1/primegen-<cmd>.1 via md2man
//   - docs/tldr/primegen-<cmd>.md from the summary and Examples block

func main() {
	var (
		repoRoot      string
		onlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&onlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	n, err := generate(repoRoot, onlyIfChanged)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("rendered %d commands\n", n)
}

// generate renders every command page under root and returns how many were
// processed.
func generate(root string, onlyIfChanged bool) (int, error) {
	commandsDir := filepath.Join(root, "docs", "commands")
	manOutDir := filepath.Join(root, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(root, "docs", "tldr")

	for _, d := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return 0, fmt.Errorf("creating %s: %w", d, err)
		}
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		return 0, fmt.Errorf("reading commands dir %s: %w", commandsDir, err)
	}

	processed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		cmd := strings.TrimSuffix(e.Name(), ".md")
		raw, err := os.ReadFile(filepath.Join(commandsDir, e.Name()))
		if err != nil {
			return processed, err
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("primegen-%s.1", cmd))
		if err := writeFileIfChanged(manPath, md2man.Render(raw), onlyIfChanged); err != nil {
			return processed, fmt.Errorf("writing man page for %s: %w", cmd, err)
		}

		page := buildTLDR(cmd, summary(string(raw)), examples(string(raw)))
		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("primegen-%s.md", cmd))
		if err := writeFileIfChanged(tldrPath, []byte(page), onlyIfChanged); err != nil {
			return processed, fmt.Errorf("writing tldr page for %s: %w", cmd, err)
		}

		processed++
	}

	if processed == 0 {
		return 0, fmt.Errorf("no command markdown found under %s", commandsDir)
	}
	return processed, nil
}

func writeFileIfChanged(path string, data []byte, onlyIfChanged bool) error {
	if onlyIfChanged {
		old, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err == nil && bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(data)) {
			return nil
		}
	}
	return os.WriteFile(path, data, 0o644)
}

var h1Re = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// summary returns the first paragraph after the H1, or the H1 itself.
func summary(md string) string {
	loc := h1Re.FindStringSubmatchIndex(md)
	if loc == nil {
		return ""
	}
	title := strings.TrimSpace(md[loc[2]:loc[3]])

	var b strings.Builder
	for _, ln := range strings.Split(md[loc[1]:], "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			if b.Len() > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(ln, "#") || strings.HasPrefix(ln, "```") {
			break
		}
		b.WriteString(ln + " ")
	}

	if s := strings.TrimSpace(b.String()); s != "" {
		return s
	}
	return title
}

type example struct {
	Desc string
	Cmd  string
}

// examples parses the first fenced block after an "Examples" heading. A
// "# comment" line describes the command line that follows it.
func examples(md string) []example {
	idx := strings.Index(strings.ToLower(md), "## examples")
	if idx < 0 {
		return nil
	}
	parts := strings.SplitN(md[idx:], "```", 3)
	if len(parts) < 3 {
		return nil
	}

	var exs []example
	desc := ""
	for _, ln := range strings.Split(parts[1], "\n") {
		s := strings.TrimSpace(ln)
		switch {
		case s == "" || s == "sh" || s == "bash":
			continue
		case strings.HasPrefix(s, "#"):
			desc = strings.TrimSpace(strings.TrimPrefix(s, "#"))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: strings.Join(strings.Fields(s), " ")})
			desc = ""
		}
	}
	return exs
}

func buildTLDR(cmd, short string, exs []example) string {
	var b strings.Builder
	b.WriteString("# primegen-" + cmd + "\n\n")
	if short == "" {
		short = "primegen " + cmd
	}
	b.WriteString("> " + short + "\n")
	b.WriteString("> More information: `primegen " + cmd + " --help`.\n\n")

	if len(exs) == 0 {
		exs = []example{{Desc: "Show help for the command", Cmd: "primegen " + cmd + " --help"}}
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + ex.Desc + ":\n\n")
		b.WriteString("`" + ex.Cmd + "`\n")
	}
	return b.String()
}
