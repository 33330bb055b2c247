package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Formatter renders monetary amounts for display.
type Formatter struct {
	// Symbol is prepended to every formatted amount.
	Symbol string
	// Code is the ISO currency code (e.g., USD).
	Code string
}

// PriceTag is the display form of a price, optionally struck through
// against a higher base price.
type PriceTag struct {
	// Price is the formatted effective price.
	Price string `json:"price"`
	// BasePrice is the formatted original price, empty when there is no markdown.
	BasePrice string `json:"base_price,omitempty"`
	// Discount is the rounded percentage saved against the base price.
	Discount int `json:"discount,omitempty"`
}

// NewFormatter creates a Formatter for the given currency.
func NewFormatter(symbol, code string) *Formatter {
	return &Formatter{Symbol: symbol, Code: code}
}

// Format renders an amount as a display string, e.g. "$1,234.50".
// Negative amounts keep the sign ahead of the symbol: "-$12.00".
func (f *Formatter) Format(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole, frac := math.Modf(amount)
	cents := int(math.Round(frac * 100))
	if cents == 100 {
		// rounding carried into the next unit
		whole++
		cents = 0
	}

	return fmt.Sprintf("%s%s%s.%02d", sign, f.Symbol, group(int64(whole)), cents)
}

// FormatPrice renders a price together with its base (pre-sale) price.
// When baseAmount is higher than amount, BasePrice carries the original
// price and Discount the rounded percentage saved.
func (f *Formatter) FormatPrice(amount, baseAmount float64) PriceTag {
	tag := PriceTag{Price: f.Format(amount)}

	if baseAmount > amount && baseAmount > 0 {
		tag.BasePrice = f.Format(baseAmount)
		tag.Discount = int(math.Round((baseAmount - amount) / baseAmount * 100))
	}

	return tag
}

// group inserts thousands separators into a non-negative integer.
func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
