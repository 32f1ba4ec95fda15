// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// Package aws loads AWS SDK v2 configuration and uploads generated prime
// lists to S3.
package aws
