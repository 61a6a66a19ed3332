// Package extract finds referral links in free-form text such as notes or Markdown tables.
package extract

import (
	"regexp"
	"strings"

	"github.com/axellelanca/refcheck/internal/models"
)

// referralPattern matches http(s)://<host>/referral?code=<alphanumeric>.
// Submatch 1 is the code.
var referralPattern = regexp.MustCompile(`(?i)https?://[^\s/|()\[\]<>"'` + "`" + `]+/referral\?code=([a-z0-9]+)`)

// Links returns the first referral URL of every line in text, in the order the lines appear.
// Duplicates are kept. Text without any match yields an empty slice.
func Links(text string) []string {
	links := []string{}
	for _, line := range strings.Split(text, "\n") {
		if m := referralPattern.FindString(line); m != "" {
			links = append(links, m)
		}
	}
	return links
}

// Referrals is Links with the code of each URL split out.
func Referrals(text string) []models.Referral {
	links := Links(text)
	refs := make([]models.Referral, 0, len(links))
	for _, link := range links {
		refs = append(refs, models.Referral{URL: link, Code: Code(link)})
	}
	return refs
}

// Code returns the referral code embedded in url, or "" when url is not a referral link.
func Code(url string) string {
	m := referralPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}
