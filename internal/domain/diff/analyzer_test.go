package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfav-coworker/prverify/internal/domain/model"
)

func TestParseNameStatus(t *testing.T) {
	out := "M\tsrc/a.py\nA\tsrc/b.js\nD\tREADME.old"

	files := ParseNameStatus(out)
	require.Len(t, files, 3)

	assert.Equal(t, "src/a.py", files[0].Path)
	assert.Equal(t, model.ChangeTypeModified, files[0].ChangeType)
	assert.Equal(t, "src/b.js", files[1].Path)
	assert.Equal(t, model.ChangeTypeAdded, files[1].ChangeType)
	assert.Equal(t, "README.old", files[2].Path)
	assert.Equal(t, model.ChangeTypeDeleted, files[2].ChangeType)
}

func TestParseNameStatusEdgeCases(t *testing.T) {
	t.Run("empty output", func(t *testing.T) {
		assert.Empty(t, ParseNameStatus(""))
		assert.Empty(t, ParseNameStatus("\n\n"))
	})

	t.Run("rename with similarity score", func(t *testing.T) {
		files := ParseNameStatus("R100\told/name.go\tnew/name.go")
		require.Len(t, files, 1)
		assert.Equal(t, model.ChangeTypeRenamed, files[0].ChangeType)
		assert.Equal(t, "old/name.go", files[0].Path)
	})

	t.Run("unrecognised status", func(t *testing.T) {
		files := ParseNameStatus("X\tweird.txt")
		require.Len(t, files, 1)
		assert.Equal(t, model.ChangeTypeUnknown, files[0].ChangeType)
	})

	t.Run("line without tab is skipped", func(t *testing.T) {
		assert.Empty(t, ParseNameStatus("warning: something"))
	})
}

func TestFilterRelevant(t *testing.T) {
	changed := ParseNameStatus(
		"M\tsrc/app.py\n" +
			"M\tnode_modules/pkg/index.js\n" +
			"A\timage.png\n" +
			"M\tpackage-lock.json",
	)
	require.Len(t, changed, 4)

	relevant := FilterRelevant(changed)
	require.Len(t, relevant, 1)
	assert.Equal(t, "src/app.py", relevant[0].Path)
}

func TestFilterRelevantBareNames(t *testing.T) {
	changed := []model.FileChange{
		{Status: "M", Path: "Dockerfile", ChangeType: model.ChangeTypeModified},
		{Status: "M", Path: "Makefile", ChangeType: model.ChangeTypeModified},
		{Status: "M", Path: "requirements.txt", ChangeType: model.ChangeTypeModified},
		{Status: "M", Path: "notes.txt", ChangeType: model.ChangeTypeModified},
	}

	relevant := FilterRelevant(changed)
	require.Len(t, relevant, 3)
	assert.Equal(t, "Dockerfile", relevant[0].Path)
	assert.Equal(t, "notes.txt", changed[3].Path) // untouched input
}

func TestAnalyze(t *testing.T) {
	summary := Analyze("abc123", "def456", "M\tsrc/a.py\nA\tdocs/logo.png", "diff --git ...")

	assert.Equal(t, "abc123", summary.BaseRef)
	assert.Equal(t, "def456", summary.TargetRef)
	assert.Equal(t, 2, summary.TotalFilesChanged)
	assert.Equal(t, 1, summary.RelevantFilesChanged)
	assert.True(t, summary.HasChanges)
	assert.Equal(t, "diff --git ...", summary.DiffContent)
}

func TestAnalyzeNoChanges(t *testing.T) {
	summary := Analyze("abc123", "def456", "", "")

	assert.False(t, summary.HasChanges)
	assert.Empty(t, summary.ChangedFiles)
	assert.Zero(t, summary.TotalFilesChanged)
}
