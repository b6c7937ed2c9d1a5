package listing

import (
	"fmt"
	"testing"

	"github.com/law-makers/shelf/pkg/models"
)

// fakeNode answers selector lookups from a fixed table
type fakeNode struct {
	text     string
	attrs    map[string]string
	children map[string]*fakeNode
}

func (f *fakeNode) First(selector string) (Node, bool) {
	c, ok := f.children[selector]
	if !ok {
		return nil, false
	}
	return c, true
}

func (f *fakeNode) Text() string { return f.text }

func (f *fakeNode) Attr(name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}

func textNode(s string) *fakeNode { return &fakeNode{text: s} }

func linkNode(href string) *fakeNode {
	return &fakeNode{attrs: map[string]string{"href": href}}
}

func listingWith(children map[string]*fakeNode) *fakeNode {
	return &fakeNode{children: children}
}

const testBase = "https://www.amazon.in/s?k=widget"

func TestChain_FirstSuccessWins(t *testing.T) {
	node := listingWith(map[string]*fakeNode{
		TitleLinkSpan:  textNode("Primary Title"),
		TitleAnyH2Span: textNode("Weaker Title"),
	})

	v, strategy := TitleChain().Resolve(node)
	if v != "Primary Title" {
		t.Errorf("expected primary title, got %q", v)
	}
	if strategy != TitleLinkSpan {
		t.Errorf("expected strategy %q, got %q", TitleLinkSpan, strategy)
	}
}

func TestChain_FallsBackToAlternateMarkup(t *testing.T) {
	tests := []struct {
		name  string
		chain Chain
		node  *fakeNode
		want  string
	}{
		{
			name:  "title from bare h2",
			chain: TitleChain(),
			node:  listingWith(map[string]*fakeNode{TitleAnyH2Span: textNode("Fallback Title")}),
			want:  "Fallback Title",
		},
		{
			name:  "price from offscreen copy",
			chain: PriceChain("₹"),
			node:  listingWith(map[string]*fakeNode{PriceOffscreen: textNode("₹1,299.00")}),
			want:  "₹1,299.00",
		},
		{
			name:  "rating from small star icon",
			chain: RatingChain(),
			node:  listingWith(map[string]*fakeNode{RatingStarSmall: textNode("4.2 out of 5 stars")}),
			want:  "4.2",
		},
		{
			name:  "reviews from aria label",
			chain: ReviewsChain(),
			node:  listingWith(map[string]*fakeNode{ReviewsAriaLabel: textNode("1,024")}),
			want:  "1,024",
		},
		{
			name:  "url from image link",
			chain: URLChain(testBase),
			node:  listingWith(map[string]*fakeNode{LinkImage: linkNode("/Widget/dp/B0WIDGET?ref=sr_1_1")}),
			want:  "https://www.amazon.in/Widget/dp/B0WIDGET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := tt.chain.Resolve(tt.node)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChain_EmptyTextFallsThrough(t *testing.T) {
	node := listingWith(map[string]*fakeNode{
		TitleLinkSpan: textNode("   \n\t "),
		TitleMiniSpan: textNode("  Real   Title \n"),
	})

	v, strategy := TitleChain().Resolve(node)
	if v != "Real Title" {
		t.Errorf("expected collapsed fallback title, got %q", v)
	}
	if strategy != TitleMiniSpan {
		t.Errorf("expected %q to win, got %q", TitleMiniSpan, strategy)
	}
}

func TestPriceChain_SplitMarkup(t *testing.T) {
	tests := []struct {
		name     string
		children map[string]*fakeNode
		want     string
	}{
		{
			name: "whole with decimal and fraction",
			children: map[string]*fakeNode{
				PriceWhole:     textNode("1,299."),
				PriceFraction:  textNode("00"),
				PriceOffscreen: textNode("₹9,999.00"),
			},
			want: "₹1,299.00",
		},
		{
			name:     "whole only",
			children: map[string]*fakeNode{PriceWhole: textNode("100")},
			want:     "₹100",
		},
		{
			name:     "bare decimal point is not a price",
			children: map[string]*fakeNode{PriceWhole: textNode("."), PriceOffscreen: textNode("₹42.00")},
			want:     "₹42.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := PriceChain("₹").Resolve(listingWith(tt.children))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_NoMarkupIsAllSentinel(t *testing.T) {
	ex := New(Options{BaseURL: testBase})
	rec, trace := ex.Extract(listingWith(nil))

	if rec != models.EmptyRecord() {
		t.Errorf("expected every field to be the sentinel, got %+v", rec)
	}
	for _, f := range Fields {
		if trace[f] != "" {
			t.Errorf("field %s should have no winning strategy, got %q", f, trace[f])
		}
	}
	if Keep(rec) {
		t.Error("record without title and url must be dropped")
	}
}

func TestKeep(t *testing.T) {
	tests := []struct {
		title string
		url   string
		keep  bool
	}{
		{"Widget", "https://x/y", true},
		{"Widget", models.Sentinel, true},
		{models.Sentinel, "https://x/y", true},
		{models.Sentinel, models.Sentinel, false},
	}

	for _, tt := range tests {
		t.Run(tt.title+"|"+tt.url, func(t *testing.T) {
			rec := models.EmptyRecord()
			rec.Title = tt.title
			rec.URL = tt.url
			if got := Keep(rec); got != tt.keep {
				t.Errorf("Keep = %v, want %v", got, tt.keep)
			}
		})
	}
}

func TestExtract_PartialRecordKept(t *testing.T) {
	ex := New(Options{BaseURL: testBase})
	rec, _ := ex.Extract(listingWith(map[string]*fakeNode{
		TitleLinkSpan: textNode("Name Only"),
	}))

	if rec.Title != "Name Only" {
		t.Fatalf("unexpected title %q", rec.Title)
	}
	if rec.Price != models.Sentinel || rec.Rating != models.Sentinel || rec.ReviewCount != models.Sentinel {
		t.Errorf("missing fields should be the sentinel: %+v", rec)
	}
	if !Keep(rec) {
		t.Error("record with a title must be kept")
	}
}

func TestExtract_URLNormalized(t *testing.T) {
	ex := New(Options{BaseURL: testBase})
	got := ex.Field(listingWith(map[string]*fakeNode{
		LinkInHeading: linkNode("https://www.amazon.in/Widget/dp/ABC123?ref=xyz"),
	}), FieldURL)

	if got != "https://www.amazon.in/Widget/dp/ABC123" {
		t.Errorf("got %q", got)
	}
	if NormalizeURL(got) != got {
		t.Error("normalizing twice must not change the url")
	}
}

func numberedListings(n int) []Node {
	nodes := make([]Node, n)
	for i := range nodes {
		nodes[i] = listingWith(map[string]*fakeNode{
			TitleLinkSpan: textNode(fmt.Sprintf("Product %d", i+1)),
		})
	}
	return nodes
}

func TestExtractAll_RespectsMaxCount(t *testing.T) {
	ex := New(Options{BaseURL: testBase})

	batch := ex.ExtractAll(numberedListings(30), 5, nil)
	if batch.Found != 30 {
		t.Errorf("expected 30 found, got %d", batch.Found)
	}
	if batch.Considered != 5 || len(batch.Outcomes) != 5 {
		t.Errorf("expected 5 considered, got %d (%d outcomes)", batch.Considered, len(batch.Outcomes))
	}
	if len(batch.Records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(batch.Records))
	}
	if batch.Records[4].Title != "Product 5" {
		t.Errorf("records out of page order: %q", batch.Records[4].Title)
	}
}

func TestExtractAll_FewerListingsThanRequested(t *testing.T) {
	ex := New(Options{BaseURL: testBase})

	batch := ex.ExtractAll(numberedListings(3), 50, nil)
	if batch.Considered != 3 || len(batch.Records) != 3 {
		t.Errorf("expected all 3 listings, got considered=%d records=%d", batch.Considered, len(batch.Records))
	}
}

func TestExtractAll_DropsUnidentifiedListings(t *testing.T) {
	ex := New(Options{BaseURL: testBase})
	nodes := numberedListings(4)
	nodes[1] = listingWith(map[string]*fakeNode{PriceOffscreen: textNode("₹10")})

	var observed []Outcome
	batch := ex.ExtractAll(nodes, 4, func(o Outcome) { observed = append(observed, o) })

	if len(batch.Records) != 3 {
		t.Errorf("expected 3 kept records, got %d", len(batch.Records))
	}
	if len(observed) != 4 {
		t.Fatalf("observer should see all 4 considered listings, saw %d", len(observed))
	}
	if observed[1].Kept || observed[1].Index != 2 {
		t.Errorf("second listing should be dropped, got %+v", observed[1])
	}
	if NeedsDiagnostics(batch.Records) {
		t.Error("non-empty batch must not ask for diagnostics")
	}
}

func TestNeedsDiagnostics(t *testing.T) {
	if !NeedsDiagnostics(nil) {
		t.Error("nil record list should ask for diagnostics")
	}
	if !NeedsDiagnostics([]models.ProductRecord{}) {
		t.Error("empty record list should ask for diagnostics")
	}
}

func TestConsidered(t *testing.T) {
	tests := []struct{ found, max, want int }{
		{30, 5, 5},
		{3, 50, 3},
		{0, 10, 0},
		{10, 0, 0},
		{10, -1, 0},
	}
	for _, tt := range tests {
		if got := Considered(tt.found, tt.max); got != tt.want {
			t.Errorf("Considered(%d, %d) = %d, want %d", tt.found, tt.max, got, tt.want)
		}
	}
}
