package settings

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffAgainstDefaults renders a character-level diff of the current settings
// export against the catalog defaults. Lines removed from the defaults are
// prefixed "-", additions "+", and long unchanged stretches are elided. An
// empty string means nothing differs.
func DiffAgainstDefaults(s *Settings) string {
	defaults := s.exportDefaults()
	current := s.Export()
	if defaults == current {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(defaults, current, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "- %q\n", diff.Text)
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "+ %q\n", diff.Text)
		case diffmatchpatch.DiffEqual:
			if len(diff.Text) > 50 {
				fmt.Fprintf(&b, "  %q...\n", diff.Text[:47])
			} else {
				fmt.Fprintf(&b, "  %q\n", diff.Text)
			}
		}
	}
	return b.String()
}
