// SPDX-License-Identifier: MPL-2.0

package skillset

// ActivationMode says whether a skill is always active for an agent or
// invoked on demand.
type ActivationMode string

const (
	// ModePreloaded marks a skill as always active: its full instructions
	// are embedded into the agent artifact.
	ModePreloaded ActivationMode = "preloaded"
	// ModeOnDemand marks a skill as dynamically activated: the artifact
	// carries its ID and usage hint only.
	ModeOnDemand ActivationMode = "on-demand"
)

// String returns the document-facing spelling of the mode.
func (m ActivationMode) String() string { return string(m) }

// IsValid reports whether m is one of the two declared modes.
func (m ActivationMode) IsValid() bool {
	return m == ModePreloaded || m == ModeOnDemand
}
