package models

import "time"

// Status is the redemption state of a referral link as reported by the status authority.
type Status string

const (
	// StatusActive means the code has not been redeemed and the checking account may redeem it.
	StatusActive Status = "active"
	// StatusRedeemed means the code was already used or the account is not eligible.
	StatusRedeemed Status = "redeemed"
	// StatusUnknown means the status could not be determined.
	StatusUnknown Status = "unknown"
)

// ParseStatus converts a table cell back into a Status. Anything unrecognised maps to StatusUnknown.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusActive, StatusRedeemed:
		return Status(s)
	default:
		return StatusUnknown
	}
}

// Referral is a single referral link found in the input file, paired with its embedded code.
type Referral struct {
	URL  string
	Code string
}

// LinkStatus is the outcome of checking one referral link during a run.
type LinkStatus struct {
	URL         string    `json:"url"`
	Code        string    `json:"code"`
	Status      Status    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
}
