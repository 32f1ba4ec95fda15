// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package bitset provides a compact fixed-size bit array used as the sieve's
// working state.
package bitset
