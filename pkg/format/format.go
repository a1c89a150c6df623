// Package format renders market and balance data into reply strings.
// All functions are pure and perform no validation: callers are expected to
// short-circuit before formatting when upstream data is missing.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	risingIndicator  = "📈"
	fallingIndicator = "📉"
)

// Percent renders a percentage change with two fractional digits and a
// trend indicator. Zero (including negative zero) counts as rising.
func Percent(value float64) string {
	if value == 0 {
		// %f keeps the sign of IEEE negative zero; fold it into +0 so
		// the output is "0.00", never "-0.00".
		value = 0
	}
	indicator := risingIndicator
	if value < 0 {
		indicator = fallingIndicator
	}
	return fmt.Sprintf("%.2f%% %s", value, indicator)
}

// Price renders a USD price without trailing zero padding, so small-cap
// prices like 0.0042 keep their precision.
func Price(usd float64) string {
	return "$" + strconv.FormatFloat(usd, 'f', -1, 64)
}

// PriceLine renders the three-line price reply body.
func PriceLine(priceUSD, pct24h, pct7d float64) string {
	return fmt.Sprintf("Current price: %s\nPrice change 24 hours: %s\nPrice change 7 days: %s",
		Price(priceUSD), Percent(pct24h), Percent(pct7d))
}

// CoinHeader renders "SYMBOL (Name)".
func CoinHeader(symbol, name string) string {
	return fmt.Sprintf("%s (%s)", strings.ToUpper(symbol), name)
}

// USD renders a locale-style currency amount: $ prefix, thousands
// separators, exactly two fractional digits.
func USD(value float64) string {
	return "$" + humanize.FormatFloat("#,###.##", value)
}

// WalletLine renders the balance reply. Balances arrive as display strings
// already truncated by the chain client and are not re-truncated here.
func WalletLine(nativeBalance, nativeSymbol, tokenBalance, tokenSymbol string, tokenUSDValue float64) string {
	return fmt.Sprintf("Balance:\n%s %s\n%s %s (%s)",
		nativeBalance, nativeSymbol, tokenBalance, tokenSymbol, USD(tokenUSDValue))
}
