package catalog

// Media is one gallery entry for a color variant.
type Media struct {
	Type         string `json:"type"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type Color struct {
	Name  string  `json:"name"`
	Hex   string  `json:"hex"`
	Media []Media `json:"media"`
}

type Size struct {
	Name    string `json:"name"`
	InStock bool   `json:"in_stock"`
}

type Review struct {
	ID            string `json:"id"`
	Author        string `json:"author"`
	VerifiedBuyer bool   `json:"verified_buyer"`
	Rating        int    `json:"rating"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Date          string `json:"date"`
	Size          string `json:"size"`
	UsualSize     string `json:"usual_size"`
	Fit           string `json:"fit"`
}

type RatingBucket struct {
	Stars int `json:"stars"`
	Count int `json:"count"`
}

type RatingSummary struct {
	Average      float64        `json:"average"`
	Count        int            `json:"count"`
	Distribution []RatingBucket `json:"distribution"`
}

// Product is a catalog entry. Stock is the single source of truth for
// availability checks on the cart add path.
type Product struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Category      string        `json:"category"`
	Images        []string      `json:"images"`
	Price         float64       `json:"price"`
	Stock         int           `json:"stock"`
	Colors        []Color       `json:"colors"`
	Sizes         []Size        `json:"sizes"`
	Description   string        `json:"description"`
	Details       []string      `json:"details"`
	FitDetails    []string      `json:"fit_details"`
	FabricDetails []string      `json:"fabric_details"`
	Reviews       []Review      `json:"reviews"`
	RatingSummary RatingSummary `json:"rating_summary"`
}
