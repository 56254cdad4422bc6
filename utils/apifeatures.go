package utils

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	defaultPage  = 1
	defaultLimit = 100
)

// reserved query parameters consumed by the non-filter stages
var reservedParams = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

var comparisonOps = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

// APIFeatures turns a request query string into a Mongo filter plus find
// options through four independent stages: Filter, Sort, LimitFields and
// Paginate. Each stage touches a distinct aspect of the final query, so
// they can be chained in any order. Nothing hits the database until the
// caller executes the query built from Query().
type APIFeatures struct {
	params url.Values

	filter     bson.M
	sort       bson.D
	projection bson.M
	skip       int64
	limit      int64
	paginated  bool
}

func NewAPIFeatures(params url.Values) *APIFeatures {
	return &APIFeatures{params: params, filter: bson.M{}}
}

// Filter applies the remaining query parameters as equality filters after
// stripping the reserved keys. Comparison suffixes embedded in the key,
// e.g. price[gte]=500, become the matching Mongo operator.
func (f *APIFeatures) Filter() *APIFeatures {
	for key := range f.params {
		if reservedParams[key] {
			continue
		}
		// field names never start with '$' or contain '.'; dropping such
		// keys keeps query operators out of the filter
		if strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
			continue
		}
		value := coerceValue(f.params.Get(key))

		field, op, ok := splitComparison(key)
		if !ok {
			f.filter[key] = value
			continue
		}
		sub, _ := f.filter[field].(bson.M)
		if sub == nil {
			sub = bson.M{}
		}
		sub[op] = value
		f.filter[field] = sub
	}
	return f
}

// Sort translates a comma-separated field list into a multi-key sort; a
// leading '-' means descending. Without a sort parameter the newest
// documents come first.
func (f *APIFeatures) Sort() *APIFeatures {
	raw := f.params.Get("sort")
	if raw == "" {
		f.sort = bson.D{{Key: "createdAt", Value: -1}}
		return f
	}
	f.sort = bson.D{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		f.sort = append(f.sort, bson.E{Key: field, Value: order})
	}
	return f
}

// LimitFields restricts the projection to the comma-separated allow-list
// in the fields parameter. Without one, everything but the internal
// version marker is returned.
func (f *APIFeatures) LimitFields() *APIFeatures {
	raw := f.params.Get("fields")
	if raw == "" {
		f.projection = bson.M{"__v": 0}
		return f
	}
	f.projection = bson.M{}
	for _, field := range strings.Split(raw, ",") {
		if field = strings.TrimSpace(field); field != "" {
			f.projection[field] = 1
		}
	}
	return f
}

// Paginate computes skip/limit from the page and limit parameters. No
// upper bound is put on limit; callers that need a cap should enforce it
// before executing the query.
func (f *APIFeatures) Paginate() *APIFeatures {
	page := positiveInt(f.params.Get("page"), defaultPage)
	limit := positiveInt(f.params.Get("limit"), defaultLimit)

	f.skip = int64(page-1) * int64(limit)
	f.limit = int64(limit)
	f.paginated = true
	return f
}

// Query returns the composed filter and find options for execution.
func (f *APIFeatures) Query() (bson.M, *options.FindOptionsBuilder) {
	opts := options.Find()
	if f.sort != nil {
		opts.SetSort(f.sort)
	}
	if f.projection != nil {
		opts.SetProjection(f.projection)
	}
	if f.paginated {
		opts.SetSkip(f.skip).SetLimit(f.limit)
	}
	return f.filter, opts
}

// splitComparison recognizes keys of the form field[op] for the four
// supported comparison operators.
func splitComparison(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	mongoOp, known := comparisonOps[key[open+1:len(key)-1]]
	if !known {
		return "", "", false
	}
	return key[:open], mongoOp, true
}

// coerceValue stores numeric-looking values as numbers so Mongo range
// operators compare them numerically.
func coerceValue(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
