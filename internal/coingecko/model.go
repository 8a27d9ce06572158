package coingecko

// SimplePriceResponse is the raw response of the /simple/price endpoint,
// keyed by CoinGecko coin id.
type SimplePriceResponse map[string]SimplePriceEntry

// SimplePriceEntry holds the USD price and 24-hour change for one coin.
type SimplePriceEntry struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
}
