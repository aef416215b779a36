package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// PaymentPayAtPickup is the only supported payment flow.
const PaymentPayAtPickup = "pay_at_pickup"

type Order struct {
	ID            int64           `json:"id"`
	Reference     string          `json:"reference"` // uuid assigned at creation
	UserID        int64           `json:"user_id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Items         []Item          `json:"items,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Item struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	VariantID *int64          `json:"variant_id,omitempty"`
	FlavorID  *int64          `json:"flavor_id,omitempty"`
	Size      string          `json:"size,omitempty"`   // e.g. "3.5 g", empty for flavor/plain lines
	Flavor    string          `json:"flavor,omitempty"` // flavor name when a flavor was selected
	Intensity int             `json:"intensity"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
