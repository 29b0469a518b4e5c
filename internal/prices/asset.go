package prices

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"cryptodash/internal/jsonutil"
)

// Asset is one row of the assets endpoint. Numeric fields the API omits or
// nulls are zero.
type Asset struct {
	ID                string
	Name              string
	Symbol            string
	Rank              int
	PriceUSD          decimal.Decimal
	ChangePercent24Hr decimal.Decimal
	MarketCapUSD      decimal.Decimal
	VolumeUSD24Hr     decimal.Decimal
}

func assetFromJSON(m map[string]any) Asset {
	return Asset{
		ID:                jsonutil.GetString(m, "id"),
		Name:              jsonutil.GetString(m, "name"),
		Symbol:            jsonutil.GetString(m, "symbol"),
		Rank:              jsonutil.GetInt(m, "rank"),
		PriceUSD:          jsonutil.GetDecimal(m, "priceUsd"),
		ChangePercent24Hr: jsonutil.GetDecimal(m, "changePercent24Hr"),
		MarketCapUSD:      jsonutil.GetDecimal(m, "marketCapUsd"),
		VolumeUSD24Hr:     jsonutil.GetDecimal(m, "volumeUsd24Hr"),
	}
}

// PriceMap indexes assets by id.
func PriceMap(assets []Asset) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(assets))
	for _, a := range assets {
		out[a.ID] = a.PriceUSD
	}
	return out
}

// Point is one sample of a price history.
type Point struct {
	Time     time.Time
	PriceUSD decimal.Decimal
}

func pointFromJSON(m map[string]any) Point {
	var t time.Time
	if ms, ok := m["time"].(float64); ok {
		t = time.UnixMilli(int64(ms)).UTC()
	}
	return Point{Time: t, PriceUSD: jsonutil.GetDecimal(m, "priceUsd")}
}

// FearGreed is a reading of the fear and greed index, 0 to 100.
type FearGreed struct {
	Value          int
	Classification string
}

// TopByChange returns up to n assets with the largest 24h change, highest
// first. The input is not modified.
func TopByChange(assets []Asset, n int) []Asset {
	return topBy(assets, n, func(a Asset) decimal.Decimal { return a.ChangePercent24Hr })
}

// TopByVolume returns up to n assets with the largest 24h volume, highest
// first. The input is not modified.
func TopByVolume(assets []Asset, n int) []Asset {
	return topBy(assets, n, func(a Asset) decimal.Decimal { return a.VolumeUSD24Hr })
}

func topBy(assets []Asset, n int, key func(Asset) decimal.Decimal) []Asset {
	out := slices.Clone(assets)
	slices.SortStableFunc(out, func(a, b Asset) int {
		return key(b).Cmp(key(a))
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
