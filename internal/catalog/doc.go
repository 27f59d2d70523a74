// SPDX-License-Identifier: MPL-2.0

// Package catalog turns a parsed skillset document into the validated,
// query-optimized view the resolver works against: skill-by-ID and
// category-by-ID maps, per-category member lists, and a precomputed symmetric
// conflict index so conflict checks are O(1) per pair instead of re-scanning
// both declaration sides each time.
//
// Build validates referential integrity on load: dangling relation targets,
// unknown categories, self-conflicts, and required-but-empty categories are
// hard errors reported together, never warnings. A successfully built Catalog
// is immutable for the duration of a compile.
package catalog
