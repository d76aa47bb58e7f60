package parts

// Part is an aftermarket item from the spare parts inventory. Price stays a
// display string because parts are browse-only, there is no parts checkout.
type Part struct {
	ID          int    `json:"partId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Image       string `json:"image,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category,omitempty"`
	Condition   string `json:"condition"`
	Warranty    string `json:"warranty,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}
