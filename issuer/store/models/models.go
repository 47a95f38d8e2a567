package models

import (
	"time"

	"gorm.io/gorm"

	"devcert/pkg/helper/gormx"
)

// Certificate issued certificate row
type Certificate struct {
	ID        string `gorm:"primaryKey;size:37"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Name               string        `gorm:"index;size:256" validate:"required"`
	CommonName         string        `gorm:"size:256" validate:"required"`
	DNSNames           gormx.Strings `gorm:"column:dns_names"`
	Serial             string        `gorm:"size:64"`
	Fingerprint        string        `gorm:"uniqueIndex;size:64" validate:"required,len=64,hexadecimal"`
	SignatureAlgorithm string        `gorm:"size:32"`
	NotBefore          time.Time
	NotAfter           time.Time
	Status             string `gorm:"index;size:10" validate:"required"`

	Cert     []byte `validate:"required"`
	Key      []byte
	CertFile string `gorm:"size:1024"`
	KeyFile  string `gorm:"size:1024"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	gormx.GenerateID(&c.ID)
	return nil
}
