package product

import "time"

// DefaultIntensity is substituted when a catalog row carries no intensity
// (order items downstream always expect a 1-10 value).
const DefaultIntensity = 5

type Product struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	Category     string    `json:"category,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	StockQty     int       `json:"stock_qty"`
	HasStock     bool      `json:"has_stock"`
	Intensity    int       `json:"intensity"`
	IsActive     bool      `json:"is_active"`
	Images       []string  `json:"images,omitempty"`
	ReviewTagIDs []int64   `json:"review_tag_ids,omitempty"`
	Variants     []Variant `json:"variants,omitempty"`
	Flavors      []Flavor  `json:"flavors,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Variant is a sized SKU of a product (e.g. 3.5 g vs 7 g).
type Variant struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	SizeValue float64 `json:"size_value"`
	SizeUnit  string  `json:"size_unit"` // g, oz, pcs
	Price     float64 `json:"price"`
	StockQty  int     `json:"stock_qty"`
}

// Flavor is a named SKU of a product distinguished by flavor rather than
// size. Price is the effective unit price when the flavor is selected.
type Flavor struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	StockQty  int     `json:"stock_qty"`
	IsActive  bool    `json:"is_active"`
}

// Normalize applies boundary defaults for rows coming out of the catalog:
// negative stock counts collapse to zero and an out-of-range intensity falls
// back to DefaultIntensity. Call it once where external data enters pricing.
func Normalize(p *Product) {
	if p.StockQty < 0 {
		p.StockQty = 0
	}
	if p.Intensity < 1 || p.Intensity > 10 {
		p.Intensity = DefaultIntensity
	}
	for i := range p.Variants {
		if p.Variants[i].StockQty < 0 {
			p.Variants[i].StockQty = 0
		}
	}
	for i := range p.Flavors {
		if p.Flavors[i].StockQty < 0 {
			p.Flavors[i].StockQty = 0
		}
	}
}

// VariantByID returns the product's variant with the given id, or nil.
func (p *Product) VariantByID(id int64) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// FlavorByID returns the product's active flavor with the given id, or nil.
// Inactive flavors are not selectable.
func (p *Product) FlavorByID(id int64) *Flavor {
	for i := range p.Flavors {
		if p.Flavors[i].ID == id && p.Flavors[i].IsActive {
			return &p.Flavors[i]
		}
	}
	return nil
}

// ActiveFlavors returns the selectable flavors only.
func (p *Product) ActiveFlavors() []Flavor {
	out := make([]Flavor, 0, len(p.Flavors))
	for _, f := range p.Flavors {
		if f.IsActive {
			out = append(out, f)
		}
	}
	return out
}

// MainImage returns the first product image, or "" when none exist.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
