package model

// ChangeType is the human-readable classification of a file-level change.
type ChangeType string

const (
	// ChangeTypeAdded marks a newly created file.
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeModified marks an edited file.
	ChangeTypeModified ChangeType = "modified"
	// ChangeTypeDeleted marks a removed file.
	ChangeTypeDeleted ChangeType = "deleted"
	// ChangeTypeRenamed marks a renamed file.
	ChangeTypeRenamed ChangeType = "renamed"
	// ChangeTypeCopied marks a copied file.
	ChangeTypeCopied ChangeType = "copied"
	// ChangeTypeTypeChanged marks a file whose mode/type changed.
	ChangeTypeTypeChanged ChangeType = "type_changed"
	// ChangeTypeUnknown marks a status code the analyzer does not recognise.
	ChangeTypeUnknown ChangeType = "unknown"
)

// FileChange is a single entry parsed from git diff --name-status output.
type FileChange struct {
	Status     string     `json:"status"`
	Path       string     `json:"filename"`
	ChangeType ChangeType `json:"change_type"`
}

// DiffSummary is the structured change set between a base and target commit.
// Derived fresh per job run; embedded in the plan generation request, never
// persisted independently.
type DiffSummary struct {
	BaseRef              string       `json:"base_branch"`
	TargetRef            string       `json:"target_branch"`
	DiffContent          string       `json:"diff_content"`
	ChangedFiles         []FileChange `json:"changed_files"`
	RelevantFiles        []FileChange `json:"relevant_files"`
	TotalFilesChanged    int          `json:"total_files_changed"`
	RelevantFilesChanged int          `json:"relevant_files_changed"`
	HasChanges           bool         `json:"has_changes"`
}
