package listing

// Search results page.
const (
	// ResultContainerSelector matches one listing node on the results page
	ResultContainerSelector = `div[data-component-type="s-search-result"]`
)

// Title
const (
	TitleLinkSpan  = `h2 a span`
	TitleMiniSpan  = `h2.a-size-mini span`
	TitleAnyH2Span = `h2 span`
)

// Price
const (
	PriceWhole          = `span.a-price-whole`
	PriceFraction       = `span.a-price-fraction`
	PriceOffscreen      = `span.a-price span.a-offscreen`
	PriceOffscreenExact = `span[class="a-price"] span[class="a-offscreen"]`
)

// Rating
const (
	RatingIconAlt   = `span.a-icon-alt`
	RatingStarSmall = `i[class*="a-icon-star-small"] span`
)

// Review count
const (
	ReviewsUnderline = `span.a-size-base.s-underline-text`
	ReviewsAriaLabel = `span[aria-label*="ratings"]`
)

// Product link
const (
	LinkInHeading   = `h2 a`
	LinkAroundTitle = `a.a-link-normal.s-link-style`
	LinkImage       = `a.s-no-outline`
)
