// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package sieve computes the ordered set of primes up to a fixed bound. The
// result is immutable and is the only input the factor package accepts.
package sieve
