package domain

// AppDetails is the per-id envelope returned by the storefront appdetails
// endpoint. Success false or a missing Data block means the app has no
// usable details (delisted, region-locked, free with no price block).
type AppDetails struct {
	Success bool     `json:"success"`
	Data    *AppData `json:"data,omitempty"`
}

// AppData carries the subset of appdetails fields the scanner cares about.
type AppData struct {
	Name             string         `json:"name"`
	ShortDescription string         `json:"short_description"`
	Developers       []string       `json:"developers,omitempty"`
	HeaderImage      string         `json:"header_image"`
	PriceOverview    *PriceOverview `json:"price_overview,omitempty"`
}

// PriceOverview is present only for priced apps. DiscountPercent is 0 when
// the app is not on sale.
type PriceOverview struct {
	Currency        string `json:"currency"`
	Initial         int    `json:"initial"`
	Final           int    `json:"final"`
	DiscountPercent int    `json:"discount_percent"`
	InitialFmt      string `json:"initial_formatted"`
	FinalFmt        string `json:"final_formatted"`
}
