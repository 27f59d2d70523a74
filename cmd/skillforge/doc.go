// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for skillforge.
//
// This package implements the Cobra command hierarchy for the skillforge
// CLI, including the root command and subcommands for building agent
// bundles, validating skillset documents, inspecting the skill catalog,
// and managing configuration.
package cmd
