// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output encodes prime sequences and factorization rows and delivers
// the result to stdout, a file or S3.
package output
