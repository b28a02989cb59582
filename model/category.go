// model/category.go
package model

import "time"

// Category is a named tag. Items reference it by name, not by id: renaming
// rewrites every item's category string, deleting leaves items tagged with
// the old name.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteCategory is a per-user pinned category. At most two per user;
// insertion order decides which one gets evicted.
type FavoriteCategory struct {
	UserID       int64     `json:"user_id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// MaxFavorites is the fixed FIFO bound on pinned categories.
const MaxFavorites = 2
