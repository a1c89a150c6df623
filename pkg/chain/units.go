package chain

import (
	"math/big"
	"strings"
)

// nativeDecimals is the fixed-point scale for both the chain's base unit
// and the token contract (wei-style 18 decimals).
const nativeDecimals = 18

// displayWidth is the character budget for a rendered balance. Truncation
// is by characters, not significant digits: "1.234567" becomes "1.2345".
const displayWidth = 6

// FormatUnits converts a raw 18-decimal integer amount to a human decimal
// string. Trailing fraction zeros are trimmed but at least one fraction
// digit is kept, so 1e18 renders as "1.0".
func FormatUnits(raw *big.Int) string {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(nativeDecimals), nil)
	whole, frac := new(big.Int).QuoRem(raw, scale, new(big.Int))

	fracStr := strings.TrimRight(leftPad(frac.String(), nativeDecimals), "0")
	if fracStr == "" {
		fracStr = "0"
	}
	return whole.String() + "." + fracStr
}

// TruncateDisplay cuts a balance string to the display budget.
func TruncateDisplay(s string) string {
	if len(s) > displayWidth {
		return s[:displayWidth]
	}
	return s
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
