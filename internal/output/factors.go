// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/staranto/primegen/internal/attrs"
	"github.com/staranto/primegen/internal/config"
	"github.com/staranto/primegen/internal/factor"
	"github.com/staranto/primegen/internal/filters"
)

// FactorFormats lists every format accepted by EmitFactors.
var FactorFormats = []string{FormatText, FormatJSON, FormatYAML}

// Row is one factorized value as presented to the user. The JSON names are
// the keys --filter and --sort address.
type Row struct {
	N         int            `json:"n" yaml:"n"`
	Factors   string         `json:"factors" yaml:"factors"`
	Primes    []int          `json:"primes" yaml:"primes"`
	Exponents map[string]int `json:"exponents" yaml:"exponents"`
	Distinct  int            `json:"distinct" yaml:"distinct"`
	Count     int            `json:"count" yaml:"count"`
	Prime     bool           `json:"prime" yaml:"prime"`
}

// MarshalYAML keeps the top level keys plain. yaml.v3 quotes "n" on its own
// since YAML 1.1 reads it as a boolean.
func (r Row) MarshalYAML() (any, error) {
	type plain Row

	var node yaml.Node
	if err := node.Encode(plain(r)); err != nil {
		return nil, err
	}
	for i := 0; i < len(node.Content); i += 2 {
		node.Content[i].Style = 0
	}
	return &node, nil
}

// NewRow builds the presentation row for n.
func NewRow(n int, f factor.Factorization) Row {
	exps := make(map[string]int, len(f))
	for p, e := range f {
		exps[strconv.Itoa(p)] = e
	}
	return Row{
		N:         n,
		Factors:   f.String(),
		Primes:    f.Primes(),
		Exponents: exps,
		Distinct:  len(f),
		Count:     f.Count(),
		Prime:     f.Count() == 1,
	}
}

// NewRows pairs each value with its factorization. Both slices must have the
// same length.
func NewRows(ns []int, fs []factor.Factorization) []Row {
	rows := make([]Row, 0, len(ns))
	for i, n := range ns {
		rows = append(rows, NewRow(n, fs[i]))
	}
	return rows
}

// FactorOptions controls how EmitFactors renders rows.
type FactorOptions struct {
	Format string
	Attrs  string
	Filter string
	Sort   string
	Color  bool
	Titles bool
}

// EmitFactors filters, sorts and renders rows to w.
func EmitFactors(w io.Writer, rows []Row, opts FactorOptions) error {
	rows, err := FilterRows(rows, opts.Filter)
	if err != nil {
		return err
	}
	SortRows(rows, opts.Sort)

	switch opts.Format {
	case FormatJSON:
		data, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to encode rows: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("failed to encode rows: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		al, err := attrs.Parse(DefaultFactorAttrs, opts.Attrs)
		if err != nil {
			return err
		}
		return TableWriter(w, rows, al, opts.Color, opts.Titles)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

// FilterRows keeps the rows matching spec. An empty spec keeps everything.
func FilterRows(rows []Row, spec string) ([]Row, error) {
	if spec == "" {
		return rows, nil
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rows: %w", err)
	}

	selected := filters.Select(gjson.ParseBytes(raw), spec)
	log.Debugf("filter %q kept %d of %d rows", spec, len(selected), len(rows))

	out := make([]Row, 0, len(selected))
	for _, i := range selected {
		out = append(out, rows[i])
	}
	return out, nil
}

// SortRows orders rows in place by a comma separated list of keys. A leading
// '-' sorts that key descending. Unknown keys are ignored.
func SortRows(rows []Row, spec string) {
	if spec == "" {
		return
	}

	type key struct {
		name string
		desc bool
	}
	var keys []key
	for _, k := range strings.Split(spec, ",") {
		k = strings.TrimSpace(k)
		desc := strings.HasPrefix(k, "-")
		k = strings.TrimPrefix(k, "-")
		if _, ok := rowKeys[k]; !ok {
			log.Warnf("ignoring unknown sort key: %s", k)
			continue
		}
		keys = append(keys, key{name: k, desc: desc})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := rowKeys[k.name](rows[i], rows[j])
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

var rowKeys = map[string]func(a, b Row) int{
	"n":        func(a, b Row) int { return a.N - b.N },
	"distinct": func(a, b Row) int { return a.Distinct - b.Distinct },
	"count":    func(a, b Row) int { return a.Count - b.Count },
	"factors":  func(a, b Row) int { return strings.Compare(a.Factors, b.Factors) },
	"prime": func(a, b Row) int {
		switch {
		case a.Prime == b.Prime:
			return 0
		case a.Prime:
			return 1
		default:
			return -1
		}
	},
}

// DefaultFactorAttrs are the table columns shown before --attrs is applied.
const DefaultFactorAttrs = "n,factors,distinct,count,prime"

// TableWriter renders rows as a borderless table of the included attrs,
// honoring color and titles.
func TableWriter(w io.Writer, rows []Row, al attrs.AttrList, color bool, titles bool) error {
	if len(rows) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}

	columns := al.Included()
	cells := make([][]string, 0, len(rows))
	for _, result := range gjson.ParseBytes(raw).Array() {
		row := make([]string, 0, len(columns))
		for _, attr := range columns {
			row = append(row, attr.Transform(cellString(result.Get(attr.Key), "-")))
		}
		cells = append(cells, row)
	}

	pad, _ := config.GetInt("padding", 1)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if titles {
		headers := make([]string, 0, len(columns))
		for _, attr := range columns {
			headers = append(headers, attr.OutputKey)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}

	_, err = fmt.Fprintln(w, t)
	return err
}

// cellString renders a row value for a table cell. Arrays are joined with
// commas; missing and empty values become the empty placeholder.
func cellString(v gjson.Result, empty string) string {
	var s string
	switch {
	case !v.Exists():
	case v.IsArray():
		parts := make([]string, 0, len(v.Array()))
		for _, item := range v.Array() {
			parts = append(parts, item.String())
		}
		s = strings.Join(parts, ",")
	case v.IsObject():
		s = v.Raw
	default:
		s = v.String()
	}

	if s == "" {
		return empty
	}
	return s
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
