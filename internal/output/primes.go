// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Formats a prime sequence can be written in.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatPython = "python"
	FormatJS     = "js"
)

// PrimeFormats lists every format accepted by EncodePrimes.
var PrimeFormats = []string{FormatText, FormatJSON, FormatYAML, FormatPython, FormatJS}

// PrimeList is the read side of a sieve result.
type PrimeList interface {
	Len() int
	All() iter.Seq[int]
	Slice() []int
}

// EncodePrimes writes primes to w in the given format.
//
//	text    one prime per line
//	json    [2,3,5]
//	yaml    a block sequence
//	python  primes = [2, 3, 5]
//	js      const primes = [2, 3, 5];\n\nexport default primes;
func EncodePrimes(w io.Writer, primes PrimeList, format string) error {
	bw := bufio.NewWriter(w)

	var err error
	switch format {
	case FormatText:
		err = writeJoined(bw, primes.All(), "", "\n", "", true)
	case FormatJSON:
		err = writeJoined(bw, primes.All(), "[", ",", "]\n", false)
	case FormatPython:
		err = writeJoined(bw, primes.All(), "primes = [", ", ", "]", false)
	case FormatJS:
		err = writeJoined(bw, primes.All(), "const primes = [", ", ", "];\n\nexport default primes;", false)
	case FormatYAML:
		enc := yaml.NewEncoder(bw)
		if err = enc.Encode(primes.Slice()); err == nil {
			err = enc.Close()
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

// writeJoined writes prefix, the values separated by sep, then suffix. When
// trailing is set sep terminates every value instead and suffix is ignored.
func writeJoined(w *bufio.Writer, seq iter.Seq[int], prefix, sep, suffix string, trailing bool) error {
	if _, err := w.WriteString(prefix); err != nil {
		return err
	}

	buf := make([]byte, 0, 24) //nolint:mnd
	first := true
	for p := range seq {
		if !first && !trailing {
			if _, err := w.WriteString(sep); err != nil {
				return err
			}
		}
		first = false

		buf = strconv.AppendInt(buf[:0], int64(p), 10)
		if trailing {
			buf = append(buf, sep...)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	if trailing {
		return nil
	}
	_, err := w.WriteString(suffix)
	return err
}

// ContentType maps an output format to a MIME type for uploads.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatPython:
		return "text/x-python"
	case FormatJS:
		return "text/javascript"
	default:
		return "text/plain"
	}
}

// Extension returns the conventional file extension for format.
func Extension(format string) string {
	switch format {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatPython:
		return "py"
	case FormatJS:
		return "js"
	default:
		return "txt"
	}
}
