// Package diff parses raw git diff output into structured, filtered change
// records used by the test plan generator.
package diff

import (
	"path"
	"strings"

	"github.com/myfav-coworker/prverify/internal/domain/model"
)

// statusTypes maps the first letter of a git name-status code to a change type.
// Rename/copy codes carry a similarity score (R100, C75); only the letter matters.
var statusTypes = map[byte]model.ChangeType{
	'A': model.ChangeTypeAdded,
	'M': model.ChangeTypeModified,
	'D': model.ChangeTypeDeleted,
	'R': model.ChangeTypeRenamed,
	'C': model.ChangeTypeCopied,
	'T': model.ChangeTypeTypeChanged,
}

// relevantExtensions is the source/markup allowlist for relevance filtering.
var relevantExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".java": true, ".cpp": true, ".c": true, ".h": true,
	".cs": true, ".php": true, ".rb": true, ".go": true, ".rs": true,
	".swift": true, ".kt": true, ".scala": true,
	".html": true, ".css": true, ".scss": true, ".sass": true, ".less": true,
	".vue": true, ".svelte": true,
}

// relevantBareNames are build/manifest files included regardless of extension.
var relevantBareNames = map[string]bool{
	"Dockerfile":       true,
	"Makefile":         true,
	"requirements.txt": true,
	"setup.py":         true,
	"pyproject.toml":   true,
}

// excludePatterns removes vcs metadata, lockfiles, env files, OS cruft,
// dependency directories, and common binary/image/archive extensions. A file
// is excluded when its lowercased path contains or ends with any pattern.
var excludePatterns = []string{
	".git", ".gitignore", ".gitmodules",
	"package-lock.json", "yarn.lock", "pipfile.lock",
	".env", ".env.local", ".env.production",
	"node_modules", "__pycache__", ".pytest_cache",
	".ds_store", "thumbs.db",
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico",
	".pdf", ".doc", ".docx", ".zip", ".tar", ".gz",
}

// Analyze builds a DiffSummary from the outputs of the two diff subprocesses.
func Analyze(baseRef, targetRef, nameStatus, fullDiff string) *model.DiffSummary {
	changed := ParseNameStatus(nameStatus)
	relevant := FilterRelevant(changed)
	return &model.DiffSummary{
		BaseRef:              baseRef,
		TargetRef:            targetRef,
		DiffContent:          fullDiff,
		ChangedFiles:         changed,
		RelevantFiles:        relevant,
		TotalFilesChanged:    len(changed),
		RelevantFilesChanged: len(relevant),
		HasChanges:           len(changed) > 0,
	}
}

// ParseNameStatus parses tab-separated `git diff --name-status` lines.
// Lines without a status and path are ignored. For renames and copies git
// emits old and new paths; the path immediately after the status is kept.
func ParseNameStatus(out string) []model.FileChange {
	var files []model.FileChange
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		status := parts[0]
		files = append(files, model.FileChange{
			Status:     status,
			Path:       parts[1],
			ChangeType: changeType(status),
		})
	}
	return files
}

func changeType(status string) model.ChangeType {
	if status == "" {
		return model.ChangeTypeUnknown
	}
	if ct, ok := statusTypes[status[0]]; ok {
		return ct
	}
	return model.ChangeTypeUnknown
}

// FilterRelevant reduces a change set to files likely to affect test coverage:
// denylisted paths are dropped, then files survive only with an allowlisted
// extension or a known bare build/manifest filename.
func FilterRelevant(changed []model.FileChange) []model.FileChange {
	var relevant []model.FileChange
	for _, fc := range changed {
		lower := strings.ToLower(fc.Path)
		if excluded(lower) {
			continue
		}
		if relevantExtensions[strings.ToLower(path.Ext(fc.Path))] || relevantBareNames[path.Base(fc.Path)] {
			relevant = append(relevant, fc)
		}
	}
	return relevant
}

func excluded(lowerPath string) bool {
	for _, pattern := range excludePatterns {
		if strings.Contains(lowerPath, pattern) || strings.HasSuffix(lowerPath, pattern) {
			return true
		}
	}
	return false
}
