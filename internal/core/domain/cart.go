package domain

// CartEntry is one product line in a user's cart. Adding the same product
// again merges into the existing row instead of creating a duplicate.
type CartEntry struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
