package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"positive", 5, "5.00% 📈"},
		{"positive with rounding", 5.1, "5.10% 📈"},
		{"negative rounds away", -3.456, "-3.46% 📉"},
		{"zero rises", 0, "0.00% 📈"},
		{"negative zero rises", math.Copysign(0, -1), "0.00% 📈"},
		{"small negative", -0.004, "-0.00% 📉"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.value))
		})
	}
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "$0.0042", Price(0.0042))
	assert.Equal(t, "$42", Price(42))
	assert.Equal(t, "$1.5", Price(1.5))
}

func TestPriceLine(t *testing.T) {
	got := PriceLine(0.0042, 5.1, -2.33)
	want := "Current price: $0.0042\nPrice change 24 hours: 5.10% 📈\nPrice change 7 days: -2.33% 📉"
	assert.Equal(t, want, got)
}

func TestCoinHeader(t *testing.T) {
	assert.Equal(t, "BCOIN (Bomber Coin)", CoinHeader("bcoin", "Bomber Coin"))
	assert.Equal(t, "ETH (Ethereum)", CoinHeader("eth", "Ethereum"))
}

func TestUSD(t *testing.T) {
	assert.Equal(t, "$12.35", USD(12.3456))
	assert.Equal(t, "$12.30", USD(12.3))
	assert.Equal(t, "$1,234,567.89", USD(1234567.891))
}

func TestWalletLine(t *testing.T) {
	got := WalletLine("1.2345", "BNB", "123.45", "BCOIN", 12.3456)
	want := "Balance:\n1.2345 BNB\n123.45 BCOIN ($12.35)"
	assert.Equal(t, want, got)
}
