package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign is the stored form of a fundraising post.
type Campaign struct {
	CampaignID  string          `bson:"_id" db:"campaign_id"`
	Title       string          `bson:"title" db:"title"`
	Amount      decimal.Decimal `bson:"amount" db:"amount"`
	Description string          `bson:"description" db:"description"`
	PhotoURLs   []string        `bson:"photoUrls" db:"photo_urls"`
	OwnerEmail  string          `bson:"email" db:"owner_email"`
	Username    string          `bson:"username,omitempty" db:"username"`
	CreatedAt   time.Time       `bson:"createdAt" db:"created_at"`
}
