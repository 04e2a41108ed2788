package scoring

import (
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/SpecHunter/internal/store"
)

// Tokenize splits a query on whitespace and lower-cases each token.
func Tokenize(query string) []string {
	parts := strings.Fields(query)
	if len(parts) == 0 {
		return nil
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.ToLower(p))
	}
	return out
}

// SearchableText is the lower-cased text a query is matched against: brand,
// name, category, price and every spec value in label order.
func SearchableText(item *store.Item) string {
	parts := make([]string, 0, 4+len(item.Specs))
	parts = append(parts, item.Brand, item.Name, item.Category, FormatPrice(item.Price))
	for _, label := range item.SpecLabels() {
		parts = append(parts, item.Specs[label])
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// FormatPrice renders a price the shortest way that round-trips, so whole
// prices have no decimal point.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// Matches reports whether item contains every token of query. An empty query
// matches everything.
func Matches(item *store.Item, query string) bool {
	return MatchesTokens(item, Tokenize(query))
}

func MatchesTokens(item *store.Item, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	text := SearchableText(item)
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}
