// SPDX-License-Identifier: MPL-2.0

// Package resolve applies an agent's requested skill selection against the
// catalog's constraint graph. Resolution runs five ordered checks: unknown
// IDs, conflicts, requirement expansion to a fixed point (with a cycle
// guard), category exclusivity/required checks, and a non-fatal advisory
// pass for recommends/discourages relations.
//
// Resolution is deterministic: the resolved ordering follows the request's
// original order, then each skill's requires declaration order. Every result
// entry records whether it was requested directly or pulled in transitively
// (and by which skill); the assembler needs that provenance for activation
// mode inheritance.
package resolve
