// SPDX-License-Identifier: Apache-2.0

// Package client implements the interactive client application runtime.
//
// It owns the process lifecycle around the terminal UI: the root context,
// signal-driven cancellation, and the initial reachability probe against the
// remote vault service.
package client
