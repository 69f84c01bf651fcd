package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255"`
	Email     string         `gorm:"size:255;not null;unique"`
	Password  string         `gorm:"size:255" json:"-"`
	Slots     []ImageSlot    `gorm:"foreignKey:OwnerID" json:"slots,omitempty"`
}

// ImageSlot is one of a user's up-to-three current customization images.
// BundleID stays NULL until the slot is snapshotted into a ShareBundle;
// once bundled the slot leaves the current pool for good.
type ImageSlot struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	OwnerID   uint         `gorm:"not null;index"`
	Owner     *User        `json:"owner,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BundleID  *uint        `gorm:"index"`
	Bundle    *ShareBundle `json:"bundle,omitempty"`
	Label     string
	BlobKey   string
	MimeType  string
	// SharedLink is a per-image link id generated at creation. Superseded by
	// bundle tokens; kept for parity with historical rows.
	SharedLink string `gorm:"type:uuid"`
}

// ShareBundle is an immutable snapshot of an owner's slots, addressable by
// an unguessable token without authentication.
type ShareBundle struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	OwnerID   uint        `gorm:"not null;index"`
	Owner     *User       `json:"owner,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Token     string      `gorm:"type:uuid;uniqueIndex"`
	Slots     []ImageSlot `gorm:"foreignKey:BundleID" json:"slots,omitempty"`
}
