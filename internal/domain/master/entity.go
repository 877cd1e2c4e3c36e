package master

import "time"

// Base holds the columns every master-data table shares.
type Base struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	TenantID    string    `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Description *string
	IsDeleted   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b *Base) Attrs() *Base { return b }

type Position struct {
	Base
}

func (Position) TableName() string { return "positions" }

type Department struct {
	Base
}

func (Department) TableName() string { return "departments" }

type ContractType struct {
	Base
}

func (ContractType) TableName() string { return "contract_types" }

// Entity is satisfied by *Position, *Department and *ContractType.
type Entity[T any] interface {
	*T
	TableName() string
	Attrs() *Base
}
