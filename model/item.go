// model/item.go
package model

import "time"

// InventoryItem is one catalog row. AvailableQty is derived on read
// (total - rented - broken) and never stored.
type InventoryItem struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	ImageURL     *string   `json:"image_url,omitempty"`
	TotalQty     int64     `json:"total_qty"`
	RentedQty    int64     `json:"rented_qty"`
	BrokenQty    int64     `json:"broken_qty"`
	AvailableQty int64     `json:"available_qty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sort keys accepted by the item list endpoint.
const (
	SortByName      = "name"
	SortByRecent    = "recent"
	SortByAvailable = "available"
)

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "all"

type ItemFilter struct {
	Category string
	Search   string
	SortBy   string
}
