package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	customerrors "github.com/axellelanca/refcheck/internal/errors"
	"github.com/axellelanca/refcheck/internal/models"
	"github.com/axellelanca/refcheck/internal/report"
)

// LinkRepository defines access to the Markdown link inventory.
type LinkRepository interface {
	Load() (string, error)
	Backup(content string) error
	SaveStatuses(results []models.LinkStatus) error
	SaveSummary(content string) error
	GetAllStatuses() ([]models.LinkStatus, error)
}

// MarkdownLinkRepository keeps the inventory in a single Markdown file, with a
// .bak copy and a summary document written next to it.
type MarkdownLinkRepository struct {
	fs          afero.Fs
	path        string
	summaryName string
}

// NewLinkRepository creates and returns a new MarkdownLinkRepository for path.
func NewLinkRepository(fs afero.Fs, path, summaryName string) *MarkdownLinkRepository {
	return &MarkdownLinkRepository{fs: fs, path: path, summaryName: summaryName}
}

// Path is the inventory file.
func (r *MarkdownLinkRepository) Path() string { return r.path }

// BackupPath is where Backup writes.
func (r *MarkdownLinkRepository) BackupPath() string { return r.path + ".bak" }

// SummaryPath is where SaveSummary writes.
func (r *MarkdownLinkRepository) SummaryPath() string {
	return filepath.Join(filepath.Dir(r.path), r.summaryName)
}

// Load reads the whole inventory file.
func (r *MarkdownLinkRepository) Load() (string, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", customerrors.ErrInputUnreadable, r.path, err)
	}
	return string(data), nil
}

// Backup writes content verbatim to <path>.bak.
func (r *MarkdownLinkRepository) Backup(content string) error {
	if err := afero.WriteFile(r.fs, r.BackupPath(), []byte(content), r.mode()); err != nil {
		return fmt.Errorf("failed to write backup %s: %w", r.BackupPath(), err)
	}
	return nil
}

// SaveStatuses replaces the inventory file with the rendered status table.
func (r *MarkdownLinkRepository) SaveStatuses(results []models.LinkStatus) error {
	if err := afero.WriteFile(r.fs, r.path, []byte(report.RenderTable(results)), r.mode()); err != nil {
		return fmt.Errorf("failed to write status table %s: %w", r.path, err)
	}
	return nil
}

// SaveSummary writes the active-links document.
func (r *MarkdownLinkRepository) SaveSummary(content string) error {
	if err := afero.WriteFile(r.fs, r.SummaryPath(), []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", r.SummaryPath(), err)
	}
	return nil
}

// GetAllStatuses parses the status table currently stored in the inventory file.
func (r *MarkdownLinkRepository) GetAllStatuses() ([]models.LinkStatus, error) {
	content, err := r.Load()
	if err != nil {
		return nil, err
	}
	return report.ParseTable(content), nil
}

// mode keeps the permissions of the existing file.
func (r *MarkdownLinkRepository) mode() os.FileMode {
	if info, err := r.fs.Stat(r.path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

var _ LinkRepository = (*MarkdownLinkRepository)(nil)
