// Package scm derives package versions from Git metadata, the way
// setuptools_scm does for the original distribution.
package scm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"golang.org/x/mod/semver"

	"github.com/katjaweigel/ESMValTool/internal/domain/entities"
)

const shortHashLen = 7

// VersionRepository resolves versions by walking the Git history from HEAD
// to the nearest tagged commit.
type VersionRepository struct{}

// NewVersionRepository creates a new Git-backed version repository.
func NewVersionRepository() *VersionRepository {
	return &VersionRepository{}
}

// ResolveVersion opens the repository containing dir and derives a version
// from the nearest reachable tag, the commit distance to it, and the
// worktree state. An untagged history yields a 0.0.0-based dev version.
func (it *VersionRepository) ResolveVersion(dir string) (entities.ScmVersion, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return entities.ScmVersion{}, fmt.Errorf("failed to open repository at %q: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return entities.ScmVersion{}, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	tagsByCommit, err := it.collectTags(repo)
	if err != nil {
		return entities.ScmVersion{}, err
	}

	tag, distance, err := it.describe(repo, head.Hash(), tagsByCommit)
	if err != nil {
		return entities.ScmVersion{}, err
	}

	dirty, err := it.isDirty(repo)
	if err != nil {
		return entities.ScmVersion{}, err
	}

	return entities.ScmVersion{
		Tag:       strings.TrimPrefix(tag, "v"),
		Distance:  distance,
		ShortHash: head.Hash().String()[:shortHashLen],
		Dirty:     dirty,
	}, nil
}

// collectTags maps commit hashes to the tag names pointing at them,
// dereferencing annotated tags to their target commits.
func (it *VersionRepository) collectTags(repo *git.Repository) (map[plumbing.Hash][]string, error) {
	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tagsByCommit := make(map[plumbing.Hash][]string)
	forEachErr := iter.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		if tagObj, tagErr := repo.TagObject(hash); tagErr == nil {
			hash = tagObj.Target // annotated tag
		}
		tagsByCommit[hash] = append(tagsByCommit[hash], ref.Name().Short())
		return nil
	})
	if forEachErr != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", forEachErr)
	}

	return tagsByCommit, nil
}

// describe walks the history from HEAD and returns the highest tag on the
// nearest tagged commit plus the distance to it. An empty tag with the
// full history length is returned when no commit is tagged.
func (it *VersionRepository) describe(
	repo *git.Repository,
	from plumbing.Hash,
	tagsByCommit map[plumbing.Hash][]string,
) (string, int, error) {
	logIter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return "", 0, fmt.Errorf("failed to walk history: %w", err)
	}

	distance := 0
	var matched []string
	walkErr := logIter.ForEach(func(c *object.Commit) error {
		if names, ok := tagsByCommit[c.Hash]; ok {
			matched = names
			return storer.ErrStop
		}
		distance++
		return nil
	})
	if walkErr != nil {
		return "", 0, fmt.Errorf("failed to walk history: %w", walkErr)
	}

	if len(matched) == 0 {
		return "", distance, nil
	}
	return highestTag(matched), distance, nil
}

func (it *VersionRepository) isDirty(repo *git.Repository) (bool, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to open worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read worktree status: %w", err)
	}

	return !status.IsClean(), nil
}

// highestTag picks the semver-greatest name from tags sharing one commit.
// Names that are not valid semver sort below every valid one, then
// lexically among themselves.
func highestTag(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)

	sort.Slice(sorted, func(i, j int) bool {
		vi, vj := canonicalSemver(sorted[i]), canonicalSemver(sorted[j])
		switch {
		case vi != "" && vj != "":
			return semver.Compare(vi, vj) < 0
		case vi != "":
			return false
		case vj != "":
			return true
		default:
			return sorted[i] < sorted[j]
		}
	})

	return sorted[len(sorted)-1]
}

// canonicalSemver normalizes a tag name for comparison, returning ""
// when the name is not a valid semantic version.
func canonicalSemver(name string) string {
	v := name
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
