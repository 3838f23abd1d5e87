// Package catalogsearch builds the Mongo filter and sort for catalog
// queries. All criteria are optional and compose with logical AND; the
// text term matches title OR description OR instructor name. The filter
// always constrains to published courses.
//
// The functions are pure so the query shapes can be tested without a
// database; the courses store executes them.
package catalogsearch

import (
	"net/http"
	"regexp"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FilterAll is the sentinel meaning "no filter" for category, level, and
// price range.
const FilterAll = "All"

// Price range buckets as the catalog UI sends them.
const (
	PriceFree     = "Free"
	PriceUnder50  = "$0-$50"
	Price50To100  = "$50-$100"
	Price100To200 = "$100-$200"
	PriceOver200  = "$200+"
)

// Sort keys. Unknown values fall back to SortNewest.
const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
)

// Criteria is one catalog query: free text plus exact-match filters plus
// a sort key.
type Criteria struct {
	Text       string
	Category   string
	Level      string
	PriceRange string
	Sort       string
}

// FromRequest reads criteria from the request's query string, using the
// parameter names the catalog UI sends (search, category, level,
// priceRange, sort).
func FromRequest(r *http.Request) Criteria {
	return Criteria{
		Text:       query.Get(r, "search"),
		Category:   query.Get(r, "category"),
		Level:      query.Get(r, "level"),
		PriceRange: query.Get(r, "priceRange"),
		Sort:       query.Get(r, "sort"),
	}
}

// Filter returns the bson filter for this criteria. The result always
// includes is_published: true; unpublished courses are never listed.
func (c Criteria) Filter() bson.M {
	f := bson.M{"is_published": true}

	if c.Text != "" {
		// Substring match, case-insensitive, input treated as a literal.
		re := primitive.Regex{Pattern: regexp.QuoteMeta(c.Text), Options: "i"}
		f["$or"] = []bson.M{
			{"title": re},
			{"description": re},
			{"instructor_name": re},
		}
	}

	if c.Category != "" && c.Category != FilterAll {
		f["category"] = c.Category
	}

	if c.Level != "" && c.Level != FilterAll {
		f["level"] = c.Level
	}

	switch c.PriceRange {
	case "", FilterAll:
	case PriceFree:
		f["price"] = float64(0)
	case PriceUnder50:
		f["price"] = bson.M{"$lte": float64(50)}
	case Price50To100:
		f["price"] = bson.M{"$gt": float64(50), "$lte": float64(100)}
	case Price100To200:
		f["price"] = bson.M{"$gt": float64(100), "$lte": float64(200)}
	case PriceOver200:
		f["price"] = bson.M{"$gt": float64(200)}
	}

	return f
}

// SortSpec returns the bson sort for this criteria. Every spec ends on
// _id so equal keys come back in a deterministic (insertion) order.
func (c Criteria) SortSpec() bson.D {
	switch c.Sort {
	case SortPriceLow:
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	case SortPriceHigh:
		return bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}}
	case SortRating:
		return bson.D{{Key: "rating.average", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	}
}
