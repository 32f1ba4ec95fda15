// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package factor provides a memoizing prime factorizer. A Cache is bound to a
// completed prime sequence at construction and answers Factorize queries by
// trial division, storing every answer for reuse.
package factor
