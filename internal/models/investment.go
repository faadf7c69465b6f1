package models

import "time"

// AssetType represents the kind of investment asset
type AssetType string

const (
	AssetTypeStock        AssetType = "stock"
	AssetTypeCrypto       AssetType = "crypto"
	AssetTypeFixedDeposit AssetType = "fd"
	AssetTypeBond         AssetType = "bond"
	AssetTypeOther        AssetType = "other"
)

// Investment is a simple principal-vs-current-value holding within a
// profile. Its current value counts toward the profile's net worth.
type Investment struct {
	Base
	ProfileID       string    `gorm:"type:uuid;not null;index" json:"profile_id"`
	Name            string    `gorm:"size:128;not null" json:"name"`
	AssetType       AssetType `gorm:"not null" json:"asset_type"`
	PrincipalAmount int64     `gorm:"type:bigint;not null" json:"principal_amount"`
	CurrentValue    int64     `gorm:"type:bigint;not null" json:"current_value"`
	LastUpdated     time.Time `json:"last_updated"`
}
