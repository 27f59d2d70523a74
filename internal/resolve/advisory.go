// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"fmt"

	"github.com/skillforge/skillforge/pkg/types"
)

// AdvisoryKind identifies which soft relation produced an advisory.
type AdvisoryKind string

const (
	// AdvisoryRecommends flags a recommends target that is not selected.
	AdvisoryRecommends AdvisoryKind = "recommends"
	// AdvisoryDiscourages flags a discourages target that is selected.
	AdvisoryDiscourages AdvisoryKind = "discourages"
)

// Advisory is a non-fatal resolution finding. Advisories never fail a
// compile and are never dropped: they ride along on the result for the
// caller to surface.
type Advisory struct {
	Kind   AdvisoryKind
	Skill  types.SkillID
	Target types.SkillID
}

// String renders the advisory the way the CLI reports it.
func (a Advisory) String() string {
	switch a.Kind {
	case AdvisoryDiscourages:
		return fmt.Sprintf("%s discourages %s (selected)", a.Skill, a.Target)
	default:
		return fmt.Sprintf("%s recommends %s (not selected)", a.Skill, a.Target)
	}
}
