// Package workspace locates thread files on disk. Threads live as markdown
// files inside ".threads" directories anywhere under the workspace root.
package workspace

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/strandhq/strand/internal/errors"
	"github.com/strandhq/strand/internal/thread"
)

// ThreadsDirName is the directory threads are stored in.
const ThreadsDirName = ".threads"

var (
	idOnlyRe        = regexp.MustCompile(`^[0-9a-f]{6}$`)
	slugNonAlnumRe  = regexp.MustCompile(`[^a-z0-9]+`)
	slugMultiDashRe = regexp.MustCompile(`-{2,}`)
)

// FindRoot walks upward from startDir to the nearest directory containing a
// .threads directory. Returns startDir itself when none is found.
func FindRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ThreadsDirName)); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return startDir
		}
		dir = parent
	}
}

// FindAll collects every thread file under root, sorted by path. The archive
// subdirectory of each .threads dir is skipped, as are nested repositories.
func FindAll(root string) ([]string, error) {
	var threads []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		// Stop at nested repositories
		if path != root {
			if _, statErr := os.Stat(filepath.Join(path, ".git")); statErr == nil {
				return filepath.SkipDir
			}
		}
		if d.Name() != ThreadsDirName {
			return nil
		}

		entries, readErr := os.ReadDir(path)
		if readErr != nil {
			return nil
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			threads = append(threads, filepath.Join(path, e.Name()))
		}
		return filepath.SkipDir
	})
	if err != nil {
		return nil, errors.NewIO(err)
	}
	sort.Strings(threads)
	return threads, nil
}

// FindByRef resolves a thread reference: exact 6-hex ID first, then exact
// filename name, then case-insensitive substring. More than one substring
// match is an error listing the candidates.
func FindByRef(root, ref string) (string, error) {
	threads, err := FindAll(root)
	if err != nil {
		return "", err
	}

	if idOnlyRe.MatchString(ref) {
		for _, t := range threads {
			if thread.ExtractIDFromPath(t) == ref {
				return t, nil
			}
		}
	}

	refLower := strings.ToLower(ref)
	var substringMatches []string
	for _, t := range threads {
		name := thread.ExtractNameFromPath(t)
		if name == ref {
			return t, nil
		}
		if strings.Contains(strings.ToLower(name), refLower) {
			substringMatches = append(substringMatches, t)
		}
	}

	switch len(substringMatches) {
	case 0:
		return "", errors.NewNotFound(ref)
	case 1:
		return substringMatches[0], nil
	}

	names := make([]string, len(substringMatches))
	for i, t := range substringMatches {
		names[i] = fmt.Sprintf("%s (%s)", thread.ExtractNameFromPath(t), thread.ExtractIDFromPath(t))
	}
	return "", errors.NewInvalidRequest(
		fmt.Sprintf("ambiguous reference %q matches: %s", ref, strings.Join(names, ", ")))
}

// GenerateID mints a 6-char lowercase hex thread ID not used by any existing
// thread under root.
func GenerateID(root string) (string, error) {
	threads, err := FindAll(root)
	if err != nil {
		return "", err
	}

	existing := make(map[string]bool, len(threads))
	for _, t := range threads {
		if id := thread.ExtractIDFromPath(t); id != "" {
			existing[id] = true
		}
	}

	for range 10 {
		var b [3]byte
		if _, err := rand.Read(b[:]); err != nil {
			return "", errors.NewInternal(err)
		}
		id := hex.EncodeToString(b[:])
		if !existing[id] {
			return id, nil
		}
	}
	return "", errors.NewInternal(fmt.Errorf("could not generate unique ID after 10 attempts"))
}

// Slugify converts a title to a kebab-case filename component.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugNonAlnumRe.ReplaceAllString(s, "-")
	s = slugMultiDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
