package layout

// Size is a widget's footprint in grid units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both dimensions are at least one grid unit.
func (s Size) Valid() bool {
	return s.Width >= 1 && s.Height >= 1
}

// Sizes maps widget id to its size.
type Sizes map[string]Size

// Clone returns a shallow copy safe to mutate.
func (s Sizes) Clone() Sizes {
	out := make(Sizes, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Widget identities known to the dashboard.
const (
	ChartWidget            = "ChartWidget"
	MarketOverview         = "MarketOverview"
	GreedFearIndex         = "GreedFearIndex"
	TopPerformers          = "TopPerformers"
	TrendingCoins          = "TrendingCoins"
	CryptoNews             = "CryptoNews"
	TokenPairExplorer      = "TokenPairExplorer"
	LiquidityPoolsOverview = "LiquidityPoolsOverview"
	GasTracker             = "GasTracker"
	DeFiOverview           = "DeFiOverview"
	NFTMarketplace         = "NFTMarketplace"
	BlockchainExplorer     = "BlockchainExplorer"
	TopCryptoAssets        = "TopCryptoAssets"
	Portfolio              = "Portfolio"
	PortfolioPerformance   = "PortfolioPerformance"
	TradeTerminal          = "TradeTerminal"
)

// Fallback is used for ids missing from both the stored and default size maps.
var Fallback = Size{Width: 1, Height: 1}

// DefaultSizes is the static size table consulted when no size is stored.
// Callers must not mutate it; use DefaultSizeMap for a writable copy.
var DefaultSizes = Sizes{
	ChartWidget:            {Width: 8, Height: 6},
	MarketOverview:         {Width: 4, Height: 3},
	GreedFearIndex:         {Width: 4, Height: 3},
	TopPerformers:          {Width: 4, Height: 3},
	TrendingCoins:          {Width: 4, Height: 3},
	CryptoNews:             {Width: 4, Height: 3},
	TokenPairExplorer:      {Width: 4, Height: 3},
	LiquidityPoolsOverview: {Width: 4, Height: 3},
	GasTracker:             {Width: 4, Height: 3},
	DeFiOverview:           {Width: 4, Height: 3},
	NFTMarketplace:         {Width: 4, Height: 3},
	BlockchainExplorer:     {Width: 4, Height: 3},
	TopCryptoAssets:        {Width: 4, Height: 3},
	Portfolio:              {Width: 4, Height: 3},
	PortfolioPerformance:   {Width: 4, Height: 3},
	TradeTerminal:          {Width: 4, Height: 3},
}

// DefaultOrder is the widget order of a fresh dashboard.
var DefaultOrder = []string{
	ChartWidget,
	MarketOverview,
	GreedFearIndex,
	TopPerformers,
	TrendingCoins,
	CryptoNews,
}

// DefaultOrderList returns a writable copy of DefaultOrder.
func DefaultOrderList() []string {
	return append([]string(nil), DefaultOrder...)
}

// DefaultSizeMap returns a writable copy of DefaultSizes.
func DefaultSizeMap() Sizes {
	return DefaultSizes.Clone()
}

// SizeOf resolves the size of id: stored size first, then the static
// default, then Fallback.
func SizeOf(id string, sizes Sizes) Size {
	if s, ok := sizes[id]; ok {
		return s
	}
	if s, ok := DefaultSizes[id]; ok {
		return s
	}
	return Fallback
}
