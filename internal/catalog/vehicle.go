package catalog

// Vehicle represents one car in the showroom catalog. Optional attributes
// are explicit nullable fields rather than probed at runtime.
type Vehicle struct {
	ID          int     `json:"vehicleId"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
	VideoURL    *string `json:"videoUrl,omitempty"`
	VIN         *string `json:"vin,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Engine      *string `json:"engine,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// AllowedCategories contains the showroom categories used across the app.
var AllowedCategories = []string{
	"Supercar",
	"Luxury",
	"Electric",
	"SUV",
	"Sedan",
	"Hatchback",
}
