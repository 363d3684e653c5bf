package domain

// Category groups products on the storefront. Name is unique. A category may
// reference an uploaded image; the reference is validated inside the same
// transaction that writes the row.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ImageID     *int64 `json:"image_id,omitempty"`
	IsFeatured  bool   `json:"is_featured"`
	IsAvailable bool   `json:"is_available"`
}

// Product is a purchasable item. Name is unique; CategoryID and ImageID are
// foreign keys checked as preconditions before any write.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	CategoryID  int64   `json:"category_id"`
	ImageID     *int64  `json:"image_id,omitempty"`
	IsFeatured  bool    `json:"is_featured"`
	IsAvailable bool    `json:"is_available"`
}

// Image is the database record for an uploaded file. The bytes themselves
// live on disk under the storage root; PathName is the randomly generated
// on-disk name without extension.
type Image struct {
	ID        int64  `json:"id"`
	FileName  string `json:"file_name"`
	PathName  string `json:"path_name"`
	Extension string `json:"extension"`
}

// ProductFilter narrows public product listings. Min/Max bound the price;
// nil means unbounded. FeaturedOnly keeps only featured products.
type ProductFilter struct {
	FeaturedOnly bool
	Min          *float64
	Max          *float64
}
