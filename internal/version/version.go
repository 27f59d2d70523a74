// SPDX-License-Identifier: MPL-2.0

// Package version derives bundle versions from compile content. The version
// is a pure function of the canonical compile state and the prior record:
// rebuilding unchanged input keeps the version, any semantic change bumps
// the major component. Timestamps and rendering details never influence the
// decision.
package version

import (
	"fmt"
	"time"

	"github.com/skillforge/skillforge/pkg/types"
)

// InitialVersion is assigned on the first compile, when no prior record
// exists.
const InitialVersion = types.SemVer("1.0.0")

// Compute decides the bundle version for state given the prior record.
// Policy: no prior record → 1.0.0; unchanged content hash → keep the prior
// version and timestamp (idempotent rebuild, record stays byte-identical);
// changed hash → bump major, reset minor and patch. Every semantic change is
// treated as breaking for consuming agents: there is no reliable way to
// grade the compatibility of instruction-set changes, so the version encodes
// "changed", not "how much".
func Compute(prior *Record, state *State) (*Record, error) {
	rec := &Record{
		ContentHash: state.Hash(),
		BundleID:    state.BundleID().String(),
		Generated:   time.Now().UTC(),
	}

	if prior == nil {
		rec.Version = InitialVersion
		return rec, nil
	}

	if prior.ContentHash == rec.ContentHash {
		rec.Version = prior.Version
		rec.Generated = prior.Generated
		return rec, nil
	}

	v, err := types.ParseVersion(string(prior.Version))
	if err != nil {
		return nil, fmt.Errorf("prior record version: %w", err)
	}
	rec.Version = v.NextMajor().SemVer()
	return rec, nil
}
