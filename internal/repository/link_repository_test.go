package repository_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerrors "github.com/axellelanca/refcheck/internal/errors"
	"github.com/axellelanca/refcheck/internal/models"
	"github.com/axellelanca/refcheck/internal/repository"
)

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	repo := repository.NewLinkRepository(afero.NewMemMapFs(), "/data/links.md", "ACTIVE.md")

	_, err := repo.Load()

	require.ErrorIs(t, err, customerrors.ErrInputUnreadable)
}

func TestBackupAndSave(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	original := "my links\nhttps://cursor.com/referral?code=A1\n"
	require.NoError(t, afero.WriteFile(fs, "/data/links.md", []byte(original), 0o600))
	repo := repository.NewLinkRepository(fs, "/data/links.md", "ACTIVE.md")

	content, err := repo.Load()
	require.NoError(t, err)
	require.NoError(t, repo.Backup(content))

	results := []models.LinkStatus{{
		URL:         "https://cursor.com/referral?code=A1",
		Code:        "A1",
		Status:      models.StatusActive,
		LastChecked: time.Date(2026, 10, 15, 8, 0, 0, 0, time.Local),
	}}
	require.NoError(t, repo.SaveStatuses(results))
	require.NoError(t, repo.SaveSummary("# summary\n"))

	backup, err := afero.ReadFile(fs, "/data/links.md.bak")
	require.NoError(t, err)
	assert.Equal(t, original, string(backup))

	summary, err := afero.ReadFile(fs, "/data/ACTIVE.md")
	require.NoError(t, err)
	assert.Equal(t, "# summary\n", string(summary))

	stored, err := repo.GetAllStatuses()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, models.StatusActive, stored[0].Status)
	assert.Equal(t, "A1", stored[0].Code)
}
