package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		want   bson.M
	}{
		{
			name:   "equality with numeric coercion",
			params: url.Values{"duration": {"5"}},
			want:   bson.M{"duration": 5.0},
		},
		{
			name:   "string values stay strings",
			params: url.Values{"difficulty": {"easy"}},
			want:   bson.M{"difficulty": "easy"},
		},
		{
			name:   "comparison suffix becomes operator",
			params: url.Values{"price[gte]": {"500"}},
			want:   bson.M{"price": bson.M{"$gte": 500.0}},
		},
		{
			name:   "two operators on the same field merge",
			params: url.Values{"price[gte]": {"100"}, "price[lt]": {"500"}},
			want:   bson.M{"price": bson.M{"$gte": 100.0, "$lt": 500.0}},
		},
		{
			name:   "reserved keys are stripped",
			params: url.Values{"page": {"2"}, "sort": {"price"}, "limit": {"10"}, "fields": {"name"}, "duration": {"5"}},
			want:   bson.M{"duration": 5.0},
		},
		{
			name:   "unknown bracket suffix is a plain key",
			params: url.Values{"price[weird]": {"1"}},
			want:   bson.M{"price[weird]": 1.0},
		},
		{
			name:   "operator keys are dropped",
			params: url.Values{"$where": {"sleep(10000)"}, "duration": {"5"}},
			want:   bson.M{"duration": 5.0},
		},
		{
			name:   "dotted keys are dropped",
			params: url.Values{"secret.field": {"1"}, "price[gte].x": {"1"}},
			want:   bson.M{},
		},
		{
			name:   "empty query",
			params: url.Values{},
			want:   bson.M{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewAPIFeatures(tt.params).Filter()
			assert.Equal(t, tt.want, f.filter)
		})
	}
}

func TestSort(t *testing.T) {
	f := NewAPIFeatures(url.Values{"sort": {"price,-ratingsAverage"}}).Sort()
	require.Equal(t, bson.D{
		{Key: "price", Value: 1},
		{Key: "ratingsAverage", Value: -1},
	}, f.sort)
}

func TestSortDefault(t *testing.T) {
	f := NewAPIFeatures(url.Values{}).Sort()
	require.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, f.sort)
}

func TestLimitFields(t *testing.T) {
	f := NewAPIFeatures(url.Values{"fields": {"name,price, duration"}}).LimitFields()
	assert.Equal(t, bson.M{"name": 1, "price": 1, "duration": 1}, f.projection)
}

func TestLimitFieldsDefault(t *testing.T) {
	f := NewAPIFeatures(url.Values{}).LimitFields()
	assert.Equal(t, bson.M{"__v": 0}, f.projection)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		params    url.Values
		wantSkip  int64
		wantLimit int64
	}{
		{"explicit page and limit", url.Values{"page": {"2"}, "limit": {"10"}}, 10, 10},
		{"defaults", url.Values{}, 0, 100},
		{"non-numeric falls back", url.Values{"page": {"abc"}, "limit": {"nope"}}, 0, 100},
		{"zero and negative fall back", url.Values{"page": {"0"}, "limit": {"-5"}}, 0, 100},
		{"deep page", url.Values{"page": {"5"}, "limit": {"20"}}, 80, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewAPIFeatures(tt.params).Paginate()
			assert.Equal(t, tt.wantSkip, f.skip)
			assert.Equal(t, tt.wantLimit, f.limit)
		})
	}
}

func TestStagesComposeInAnyOrder(t *testing.T) {
	params := url.Values{
		"price[gte]": {"100"},
		"sort":       {"-price"},
		"fields":     {"name,price"},
		"page":       {"3"},
		"limit":      {"5"},
	}

	a := NewAPIFeatures(params).Filter().Sort().LimitFields().Paginate()
	b := NewAPIFeatures(params).Paginate().LimitFields().Sort().Filter()

	assert.Equal(t, a.filter, b.filter)
	assert.Equal(t, a.sort, b.sort)
	assert.Equal(t, a.projection, b.projection)
	assert.Equal(t, a.skip, b.skip)
	assert.Equal(t, a.limit, b.limit)
}

func TestStagesAreIndependent(t *testing.T) {
	// paginating alone must not touch the filter or projection
	f := NewAPIFeatures(url.Values{"price[gte]": {"100"}, "page": {"2"}, "limit": {"10"}}).Paginate()
	assert.Equal(t, bson.M{}, f.filter)
	assert.Nil(t, f.projection)
	assert.Nil(t, f.sort)
}
