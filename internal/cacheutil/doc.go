// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil persists sieve results on disk so repeated runs for the
// same bound skip the sieve entirely.
package cacheutil
