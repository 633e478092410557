package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Campaign is a fundraising post. Campaigns are append-only.
type Campaign struct {
	CampaignID  string          `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	PhotoURLs   []string        `json:"photoUrls"`
	OwnerEmail  string          `json:"email"`
	Username    string          `json:"username,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Campaign amounts are stored as NUMERIC(18,2).
const (
	AmountScale         = 2
	AmountIntegerDigits = 16
)

// AmountFits reports whether d can be stored without rounding: at most
// AmountScale decimal places and below 10^AmountIntegerDigits. It only
// inspects the exponent and digit count, so huge exponents are cheap to reject.
func AmountFits(d decimal.Decimal) bool {
	if d.Exponent() < -AmountScale {
		return false
	}
	return d.NumDigits()+int(d.Exponent()) <= AmountIntegerDigits
}

// FeedLess orders campaigns by highest amount first, then most recent.
func FeedLess(a, b Campaign) bool {
	if c := a.Amount.Cmp(b.Amount); c != 0 {
		return c > 0
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// SortFeed sorts campaigns in feed order in place.
func SortFeed(campaigns []Campaign) {
	sort.SliceStable(campaigns, func(i, j int) bool {
		return FeedLess(campaigns[i], campaigns[j])
	})
}
