package domain

// Deal is a normalized discounted app, projected from a successful
// appdetails response. DiscountPercent is always in (0, 100].
type Deal struct {
	AppID           int      `json:"app_id"`
	Name            string   `json:"name"`
	Developers      []string `json:"developers"`
	Description     string   `json:"description"`
	FormattedPrice  string   `json:"formatted_price"`
	DiscountPercent int      `json:"discount_percent"`
	ImageURL        string   `json:"image_url"`
}

// DealFromDetails projects an appdetails envelope into a Deal. It accepts
// only responses with success set, a price block present, and an active
// discount. Everything else, including malformed or partial payloads, is a
// negative classification rather than an error.
func DealFromDetails(appID int, details *AppDetails) (Deal, bool) {
	if details == nil || !details.Success || details.Data == nil {
		return Deal{}, false
	}

	price := details.Data.PriceOverview
	if price == nil || price.DiscountPercent <= 0 || price.DiscountPercent > 100 {
		return Deal{}, false
	}

	return Deal{
		AppID:           appID,
		Name:            details.Data.Name,
		Developers:      details.Data.Developers,
		Description:     details.Data.ShortDescription,
		FormattedPrice:  price.FinalFmt,
		DiscountPercent: price.DiscountPercent,
		ImageURL:        details.Data.HeaderImage,
	}, true
}
