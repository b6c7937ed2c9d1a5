package config

import (
	"fmt"
	"sort"
	"strings"
)

// Marketplace describes one regional storefront
type Marketplace struct {
	Code     string
	Host     string
	Brand    string
	Name     string
	Currency string
}

// Source is the short lower-case label used in output file names
func (m Marketplace) Source() string {
	return strings.ToLower(m.Brand)
}

// BaseURL is the storefront root that relative product links resolve against
func (m Marketplace) BaseURL() string {
	return "https://" + m.Host + "/"
}

var marketplaces = map[string]Marketplace{
	"in":    {Code: "in", Host: "www.amazon.in", Brand: "Amazon", Name: "Amazon India", Currency: "₹"},
	"com":   {Code: "com", Host: "www.amazon.com", Brand: "Amazon", Name: "Amazon US", Currency: "$"},
	"co.uk": {Code: "co.uk", Host: "www.amazon.co.uk", Brand: "Amazon", Name: "Amazon UK", Currency: "£"},
	"de":    {Code: "de", Host: "www.amazon.de", Brand: "Amazon", Name: "Amazon Germany", Currency: "€"},
	"ca":    {Code: "ca", Host: "www.amazon.ca", Brand: "Amazon", Name: "Amazon Canada", Currency: "$"},
}

// LookupMarketplace returns the storefront registered under code
func LookupMarketplace(code string) (Marketplace, error) {
	code = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(code)), ".")
	if m, ok := marketplaces[code]; ok {
		return m, nil
	}
	return Marketplace{}, fmt.Errorf("unknown marketplace %q (known: %s)", code, strings.Join(MarketplaceCodes(), ", "))
}

// MarketplaceCodes lists the registered storefront codes in sorted order
func MarketplaceCodes() []string {
	codes := make([]string, 0, len(marketplaces))
	for c := range marketplaces {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
