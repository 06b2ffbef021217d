// Package refdata holds the static symbol tables for the NSE watchlist.
package refdata

import "fmt"

const DefaultBasePrice = 1500.0

var names = map[string]string{
	"RELIANCE":   "Reliance Industries Ltd.",
	"TCS":        "Tata Consultancy Services Ltd.",
	"HDFCBANK":   "HDFC Bank Ltd.",
	"INFY":       "Infosys Ltd.",
	"ICICIBANK":  "ICICI Bank Ltd.",
	"HINDUNILVR": "Hindustan Unilever Ltd.",
	"ITC":        "ITC Ltd.",
	"SBIN":       "State Bank of India",
	"BHARTIARTL": "Bharti Airtel Ltd.",
	"BAJFINANCE": "Bajaj Finance Ltd.",
}

var basePrices = map[string]float64{
	"RELIANCE":   2850,
	"TCS":        3845,
	"HDFCBANK":   1645,
	"INFY":       1520,
	"ICICIBANK":  1085,
	"HINDUNILVR": 2500,
	"ITC":        425,
	"SBIN":       620,
	"BHARTIARTL": 1150,
	"BAJFINANCE": 7245,
}

var defaultSymbols = []string{"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK"}

// Name returns the display name, or "<SYMBOL> Limited" for unknown tickers.
func Name(symbol string) string {
	if n, ok := names[symbol]; ok {
		return n
	}
	return fmt.Sprintf("%s Limited", symbol)
}

// BasePrice returns the reference price used by the synthetic generator.
func BasePrice(symbol string) float64 {
	if p, ok := basePrices[symbol]; ok {
		return p
	}
	return DefaultBasePrice
}

func Known(symbol string) bool {
	_, ok := basePrices[symbol]
	return ok
}

// DefaultSymbols returns a fresh copy of the default scan list.
func DefaultSymbols() []string {
	out := make([]string, len(defaultSymbols))
	copy(out, defaultSymbols)
	return out
}
