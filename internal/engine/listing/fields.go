package listing

import (
	"strings"

	urlutil "github.com/law-makers/shelf/internal/utils/url"
)

// TitleChain reads the product name
func TitleChain() Chain {
	return Chain{
		Field: FieldTitle,
		Strategies: []Strategy{
			TextOf(TitleLinkSpan),
			TextOf(TitleMiniSpan),
			TextOf(TitleAnyH2Span),
		},
	}
}

// PriceChain reads the displayed price. The split whole/fraction markup is
// preferred; the screen-reader copy of the price is the fallback.
func PriceChain(currency string) Chain {
	return Chain{
		Field: FieldPrice,
		Strategies: []Strategy{
			splitPrice(currency),
			TextOf(PriceOffscreen),
			TextOf(PriceOffscreenExact),
		},
	}
}

// RatingChain reads the star rating ("4.5 out of 5 stars" -> "4.5")
func RatingChain() Chain {
	return Chain{
		Field: FieldRating,
		Strategies: []Strategy{
			FirstWordOf(RatingIconAlt),
			FirstWordOf(RatingStarSmall),
		},
	}
}

// ReviewsChain reads the review count as displayed
func ReviewsChain() Chain {
	return Chain{
		Field: FieldReviews,
		Strategies: []Strategy{
			TextOf(ReviewsUnderline),
			TextOf(ReviewsAriaLabel),
		},
	}
}

// URLChain reads the product link, resolved against baseURL and stripped of
// its query string
func URLChain(baseURL string) Chain {
	canonical := func(href string) string {
		return NormalizeURL(urlutil.ResolveURL(baseURL, href))
	}
	return Chain{
		Field: FieldURL,
		Strategies: []Strategy{
			AttrOf(LinkInHeading, "href", canonical),
			AttrOf(LinkAroundTitle, "href", canonical),
			AttrOf(LinkImage, "href", canonical),
		},
	}
}

// NormalizeURL drops tracking parameters from a product link
func NormalizeURL(raw string) string {
	return urlutil.StripQuery(strings.TrimSpace(raw))
}

func splitPrice(currency string) Strategy {
	return Strategy{
		Name: PriceWhole + "+" + PriceFraction,
		Apply: func(n Node) (string, bool) {
			whole, ok := textAt(n, PriceWhole)
			if !ok {
				return "", false
			}
			// the whole part usually carries the decimal separator as a child span
			whole = strings.TrimSuffix(whole, ".")
			if whole == "" {
				return "", false
			}
			if fraction, ok := textAt(n, PriceFraction); ok {
				return currency + whole + "." + fraction, true
			}
			return currency + whole, true
		},
	}
}
