package analyzer

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// directories never worth descending into
var alwaysSkipDirs = map[string]bool{
	".git":           true,
	".svn":           true,
	".hg":            true,
	".idea":          true,
	".goto-endpoint": true,
	"node_modules":   true,
}

// ScanDirectory walks root and returns the absolute paths of the files that
// match at least one include pattern and no exclude pattern. Patterns are
// matched against slash-separated paths relative to root.
func ScanDirectory(root string, includePatterns, excludePatterns []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == absRoot {
				return err
			}
			// unreadable subtree: skip it, keep scanning
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(absRoot, p)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if p == absRoot {
				return nil
			}
			if skipDir(relPath, excludePatterns) {
				return filepath.SkipDir
			}
			return nil
		}

		if matchAny(excludePatterns, relPath) {
			return nil
		}
		if len(includePatterns) == 0 {
			if IsJavaFile(p) {
				files = append(files, p)
			}
			return nil
		}
		if matchAny(includePatterns, relPath) {
			files = append(files, p)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return files, nil
}

// ShouldIndex reports whether a single path (e.g. from a watch event) belongs
// to the file set ScanDirectory would produce for root.
func ShouldIndex(root, file string, includePatterns, excludePatterns []string) bool {
	relPath, err := filepath.Rel(root, file)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, seg := range strings.Split(path.Dir(relPath), "/") {
		if alwaysSkipDirs[seg] {
			return false
		}
	}
	if matchAny(excludePatterns, relPath) {
		return false
	}
	// an excluded ancestor directory excludes the file too
	for dir := path.Dir(relPath); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if matchAny(excludePatterns, dir) {
			return false
		}
	}
	if len(includePatterns) == 0 {
		return IsJavaFile(file)
	}
	return matchAny(includePatterns, relPath)
}

// ShouldSkipDir reports whether ScanDirectory would prune dir under root
func ShouldSkipDir(root, dir string, excludePatterns []string) bool {
	relPath, err := filepath.Rel(root, dir)
	if err != nil || relPath == "." {
		return false
	}
	return skipDir(filepath.ToSlash(relPath), excludePatterns)
}

func skipDir(relPath string, excludePatterns []string) bool {
	return alwaysSkipDirs[path.Base(relPath)] || matchAny(excludePatterns, relPath)
}

func matchAny(patterns []string, relPath string) bool {
	for _, pat := range patterns {
		if MatchGlob(pat, relPath) {
			return true
		}
	}
	return false
}

// MatchGlob matches a slash-separated path against a doublestar glob:
// "**" spans any number of segments and "{a,b}" picks alternatives.
// A trailing "/**" also matches the directory itself, so excluded
// directories are pruned instead of walked.
//
//	MatchGlob("**/*.java", "src/main/A.java")        -> true
//	MatchGlob("**/target/**", "module/target")       -> true
//	MatchGlob("**/{build,out}/**", "x/out/y/Z.java") -> true
func MatchGlob(pattern, name string) bool {
	pattern = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(pattern)), "./")
	if pattern == "" {
		return false
	}
	name = strings.Trim(name, "/")

	if ok, err := doublestar.Match(pattern, name); err == nil && ok {
		return true
	}
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
		matched, err := doublestar.Match(dir, name)
		return err == nil && matched
	}
	return false
}
