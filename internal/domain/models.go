package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Known user roles
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User represents a login account. Accounts are created at seed time only;
// there are no user management endpoints.
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash []byte `gorm:"type:bytea;not null;column:password_hash"`
	PasswordSalt []byte `gorm:"type:bytea;not null;column:password_salt"`
	Role         string `gorm:"type:varchar(50);not null"`
}

// Product represents a sellable item in the catalog
type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	ImageURL    string          `gorm:"type:varchar(500);column:image_url"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0"`
	Price       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}

// Sale represents a completed sale with its line items.
// Total equals the sum of the item total prices at creation time.
type Sale struct {
	BaseModel
	SaleDate time.Time       `gorm:"not null;index"`
	Total    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Items    []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem is one product/quantity line within a sale. UnitPrice is a
// snapshot of the product price at sale time.
type SaleItem struct {
	BaseModel
	SaleID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Product    *Product        `gorm:"foreignKey:ProductID"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null;column:unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(15,2);not null;column:total_price"`
}
