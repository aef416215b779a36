package redisx

import "time"

const (
	// Serialized cart lines per user: cart:{user_id} -> JSON array of lines
	KeyCart = "cart:%d"

	// Wishlist per user: wishlist:{user_id} -> set of product ids
	KeyWishlist = "wishlist:%d"
)

var (
	// Carts outlive a browsing session but not an abandoned account.
	TTLCart = 30 * 24 * time.Hour

	TTLWishlist = 90 * 24 * time.Hour
)
