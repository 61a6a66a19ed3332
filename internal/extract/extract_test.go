package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/refcheck/internal/extract"
)

func TestLinks_PreservesOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	text := `# My referrals
some prose without links
https://cursor.com/referral?code=ABC123
- second: http://cursor.com/referral?code=zz9 (shared with Bob)
https://cursor.com/referral?code=ABC123
`
	links := extract.Links(text)

	assert.Equal(t, []string{
		"https://cursor.com/referral?code=ABC123",
		"http://cursor.com/referral?code=zz9",
		"https://cursor.com/referral?code=ABC123",
	}, links)
}

func TestLinks_CaseInsensitiveScheme(t *testing.T) {
	t.Parallel()

	links := extract.Links("HTTPS://cursor.com/referral?code=AbC1\nHttp://example.org/referral?code=q")

	assert.Equal(t, []string{
		"HTTPS://cursor.com/referral?code=AbC1",
		"Http://example.org/referral?code=q",
	}, links)
}

func TestLinks_OneEntryPerLine(t *testing.T) {
	t.Parallel()

	links := extract.Links("https://a.io/referral?code=ONE and https://a.io/referral?code=TWO")

	assert.Equal(t, []string{"https://a.io/referral?code=ONE"}, links)
}

func TestLinks_NoMatchesIsEmptyNotNil(t *testing.T) {
	t.Parallel()

	links := extract.Links("nothing here\nhttps://cursor.com/pricing\nhttps://cursor.com/referral?code=\n")

	require.NotNil(t, links)
	assert.Empty(t, links)
}

func TestLinks_InsideMarkdownTable(t *testing.T) {
	t.Parallel()

	text := "| URL | Status | Last Checked |\n" +
		"|-----|--------|--------------|\n" +
		"| https://cursor.com/referral?code=X1 | active | 2026-10-15 10:00:00 |\n" +
		"| [link](https://cursor.com/referral?code=X2) | redeemed | 2026-10-15 10:00:01 |\n"

	assert.Equal(t, []string{
		"https://cursor.com/referral?code=X1",
		"https://cursor.com/referral?code=X2",
	}, extract.Links(text))
}

func TestReferrals_SplitsCode(t *testing.T) {
	t.Parallel()

	refs := extract.Referrals("see https://cursor.com/referral?code=Q7RT9 today")

	require.Len(t, refs, 1)
	assert.Equal(t, "https://cursor.com/referral?code=Q7RT9", refs[0].URL)
	assert.Equal(t, "Q7RT9", refs[0].Code)
}

func TestCode_NotAReferral(t *testing.T) {
	t.Parallel()

	assert.Empty(t, extract.Code("https://cursor.com/settings"))
}
