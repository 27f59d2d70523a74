// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The package consolidates the 3-step CUE parsing pattern used across the
// skillset, config, and version packages:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed skillset_schema.cue
//	var schemaBytes []byte
//
//	doc, err := cueutil.Decode[Document](
//	    schemaBytes,
//	    userFileBytes,
//	    "#Skillset",
//	    cueutil.WithFilename("skillset.cue"),
//	)
//	if err != nil {
//	    return nil, err // error includes the CUE path to the offending field
//	}
package cueutil
