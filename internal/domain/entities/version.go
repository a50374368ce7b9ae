package entities

import "fmt"

// ScmVersion is a package version derived from version-control metadata:
// the nearest reachable tag, the commit distance to it, the abbreviated
// HEAD hash, and whether the worktree carries uncommitted changes.
type ScmVersion struct {
	Tag       string // Nearest reachable tag, without the "v" prefix; empty when untagged
	Distance  int    // Commits between HEAD and the tagged commit
	ShortHash string // Abbreviated HEAD commit hash
	Dirty     bool
}

// String renders the version in setuptools_scm style:
//
//	2.0.0                   exact tag, clean worktree
//	2.0.0+dirty             exact tag, local changes
//	2.0.0.dev4+gabc1234     4 commits past the tag
//	2.0.0.dev4+gabc1234.dirty
func (v ScmVersion) String() string {
	base := v.Tag
	if base == "" {
		base = "0.0.0"
	}

	if v.Distance == 0 {
		if v.Dirty {
			return base + "+dirty"
		}
		return base
	}

	s := fmt.Sprintf("%s.dev%d+g%s", base, v.Distance, v.ShortHash)
	if v.Dirty {
		s += ".dirty"
	}
	return s
}
