package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/refcheck/cmd"
	customerrors "github.com/axellelanca/refcheck/internal/errors"
	"github.com/axellelanca/refcheck/internal/models"
)

func TestRequireInputFile(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, cmd.RequireInputFile(CheckCmd, nil), customerrors.ErrMissingInput)
	require.NoError(t, cmd.RequireInputFile(CheckCmd, []string{"links.md"}))
	require.Error(t, cmd.RequireInputFile(CheckCmd, []string{"a.md", "b.md"}))
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	summary := &models.RunSummary{Total: 5, Active: 2, Redeemed: 2, Unknown: 1}
	var buf bytes.Buffer

	printSummary(&buf, summary, 50, "$")

	out := buf.String()
	assert.Contains(t, out, "Referral check results")
	assert.Contains(t, out, "40.0%")
	assert.Contains(t, out, "$100.00")
}

func TestCommandsRegistered(t *testing.T) {
	t.Parallel()

	for _, c := range []string{"check", "browse", "scrape"} {
		found, _, err := CheckCmd.Root().Find([]string{c})
		require.NoError(t, err, c)
		assert.Equal(t, c, found.Name())
	}
}
