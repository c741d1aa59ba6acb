package collateral

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrLinkNotFound      = errors.New("collateral link not found")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrAssetPledged      = errors.New("asset is already actively pledged")
	ErrLinkNotActive     = errors.New("collateral link is not active")
	ErrInsufficientUnits = errors.New("asset has insufficient available units")
	ErrUnitsRequired     = errors.New("pledged units required for a divisible asset")
	ErrNoValuation       = errors.New("asset has no recorded valuation")
)

type LinkStatus string

const (
	LinkActive     LinkStatus = "active"
	LinkReplaced   LinkStatus = "replaced"
	LinkReleased   LinkStatus = "released"
	LinkForeclosed LinkStatus = "foreclosed"
)

type AssetStatus string

const (
	AssetAvailable  AssetStatus = "available"
	AssetPledged    AssetStatus = "pledged"
	AssetReleased   AssetStatus = "released"
	AssetForeclosed AssetStatus = "foreclosed"
)

// Asset is the pledgeable record the registry keeps. A divisible asset can
// back several deals at once through its available_units pool; an indivisible
// one backs at most a single deal while actively pledged.
type Asset struct {
	ID             uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	AssetID        string          `gorm:"column:asset_id;type:char(32);not null;uniqueIndex"`
	Name           string          `gorm:"column:name;size:255"`
	Status         AssetStatus     `gorm:"column:status;size:16;not null;default:'available'"`
	Divisible      bool            `gorm:"column:divisible;not null;default:false"`
	AvailableUnits decimal.Decimal `gorm:"column:available_units;type:decimal(18,4);not null;default:0"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Asset) TableName() string { return "assets" }

// Valuation is one appraisal fact from the valuation feed. "Latest" always
// means the most recently recorded one (max created_at), not the most recent
// valued_at.
type Valuation struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	AssetID   uint64          `gorm:"column:asset_id;not null;index:idx_valuations_asset"`
	Value     decimal.Decimal `gorm:"column:value;type:decimal(18,2);not null"`
	ValuedAt  time.Time       `gorm:"column:valued_at;type:date;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Valuation) TableName() string { return "asset_valuations" }

// Link ties an asset to the deal it secures. Exactly one link per
// (deal, asset) pair may be active at a time; the snapshot columns hold the
// valuation/LTV captured at pledge time or by the last Evaluate call.
type Link struct {
	ID                uint64           `gorm:"column:id;primaryKey;autoIncrement"`
	LinkID            string           `gorm:"column:link_id;type:char(32);not null;uniqueIndex"`
	DealID            uint64           `gorm:"column:deal_id;not null;index:idx_collateral_links_deal"`
	AssetID           uint64           `gorm:"column:asset_id;not null;index:idx_collateral_links_asset"`
	Status            LinkStatus       `gorm:"column:status;size:16;not null;default:'active'"`
	StartedAt         time.Time        `gorm:"column:started_at;not null"`
	EndedAt           *time.Time       `gorm:"column:ended_at"`
	ValuationAtPledge *decimal.Decimal `gorm:"column:valuation_at_pledge;type:decimal(18,2)"`
	LTVAtPledge       *decimal.Decimal `gorm:"column:ltv_at_pledge;type:decimal(8,2)"`
	PledgedUnits      *decimal.Decimal `gorm:"column:pledged_units;type:decimal(18,4)"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Link) TableName() string { return "collateral_links" }

// ChainRecord is the append-only audit trail of collateral replacements.
// Records are never updated or deleted.
type ChainRecord struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	DealID     uint64    `gorm:"column:deal_id;not null;index:idx_collateral_chain_deal"`
	OldAssetID uint64    `gorm:"column:old_asset_id;not null"`
	NewAssetID uint64    `gorm:"column:new_asset_id;not null"`
	Reason     string    `gorm:"column:reason;size:255"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ChainRecord) TableName() string { return "collateral_chain_records" }
