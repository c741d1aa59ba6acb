package collateral

import (
	"time"

	"github.com/shopspring/decimal"

	domainCollateral "lombard-core/internal/domain/collateral"
)

type PledgeInput struct {
	DealID       string
	AssetID      string
	PledgedUnits *decimal.Decimal // required for divisible assets
}

type ReplaceInput struct {
	LinkID       string // link being replaced
	NewAssetID   string
	PledgedUnits *decimal.Decimal
	Reason       string
}

type LinkDTO struct {
	LinkID            string           `json:"link_id"`
	DealID            string           `json:"deal_id"`
	AssetID           string           `json:"asset_id"`
	Status            string           `json:"status"`
	StartedAt         time.Time        `json:"started_at"`
	EndedAt           *time.Time       `json:"ended_at,omitempty"`
	ValuationAtPledge *decimal.Decimal `json:"valuation_at_pledge,omitempty"`
	LTVAtPledge       *decimal.Decimal `json:"ltv_at_pledge,omitempty"`
	PledgedUnits      *decimal.Decimal `json:"pledged_units,omitempty"`
}

type ChainRecordDTO struct {
	DealID     string    `json:"deal_id"`
	OldAssetID string    `json:"old_asset_id"`
	NewAssetID string    `json:"new_asset_id"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ForeclosureDTO summarizes a default: every link that was foreclosed and the
// provisional sale-proceeds entries posted for them.
type ForeclosureDTO struct {
	DealID          string    `json:"deal_id"`
	ForeclosedLinks []LinkDTO `json:"foreclosed_links"`
	EntriesPosted   int       `json:"entries_posted"`
}

func toLinkDTO(l *domainCollateral.Link, dealID, assetID string) LinkDTO {
	return LinkDTO{
		LinkID:            l.LinkID,
		DealID:            dealID,
		AssetID:           assetID,
		Status:            string(l.Status),
		StartedAt:         l.StartedAt,
		EndedAt:           l.EndedAt,
		ValuationAtPledge: l.ValuationAtPledge,
		LTVAtPledge:       l.LTVAtPledge,
		PledgedUnits:      l.PledgedUnits,
	}
}
