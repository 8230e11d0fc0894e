// Package converter translates fixed-point money values to and from the text
// columns they are stored in.
//
// Two encodings exist. The compact form is the value's decimal string with
// trailing fractional zeros removed. The padded form is a fixed-width string
// of 20 characters before the point and 18 digits after it, so that text
// ordering of non-negative values matches numeric ordering.
package converter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultScale is the number of fractional digits of Money18.
	DefaultScale = 18
	// DefaultIntegerDigits is the padded width before the decimal point, sign included.
	DefaultIntegerDigits = 20
)

// CompactMode selects how EncodeCompact strips trailing zeros.
type CompactMode int

const (
	// Strict strips zeros from the fractional part only.
	Strict CompactMode = iota
	// Legacy strips every trailing '0' character, including integer zeros
	// when the value has no fractional part ("100" becomes "1").
	Legacy
)

// Codec converts decimals to their stored text. The zero value is not
// usable; start from Money18.
type Codec struct {
	Scale         int32
	IntegerDigits int
	Mode          CompactMode
}

// Money18 is the codec for 18-digit money columns.
var Money18 = Codec{
	Scale:         DefaultScale,
	IntegerDigits: DefaultIntegerDigits,
	Mode:          Strict,
}

// WithMode returns a copy of c using the given compact mode.
func (c Codec) WithMode(mode CompactMode) Codec {
	c.Mode = mode
	return c
}

// PaddedWidth is the length of every padded string.
func (c Codec) PaddedWidth() int {
	return c.IntegerDigits + 1 + int(c.Scale)
}

// natural renders d at its own exponent.
func natural(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// EncodeCompact renders d without trailing zeros.
func (c Codec) EncodeCompact(d decimal.Decimal) string {
	if c.Mode == Legacy {
		return strings.TrimRight(natural(d), "0")
	}
	if d.IsZero() {
		return "0"
	}
	s := natural(d)
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

// DecodeCompact parses a compact string.
func (c Codec) DecodeCompact(s string) (decimal.Decimal, error) {
	return parse(s)
}

// EncodePadded renders d as a fixed-width string. A negative sign takes one
// of the integer positions and the zero padding follows it.
func (c Codec) EncodePadded(d decimal.Decimal) (string, error) {
	if err := c.checkPaddedBounds(d); err != nil {
		return "", err
	}
	if d.IsZero() {
		d = decimal.Zero
	}
	s := natural(d)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	scale := int(c.Scale)
	if len(frac) > scale {
		frac = strings.TrimRight(frac, "0")
		if len(frac) > scale {
			return "", fmt.Errorf("%w: %s has %d fractional digits, max %d", ErrPrecision, sign+s, len(frac), scale)
		}
	}

	maxIntegerDigits := c.IntegerDigits - len(sign)
	if len(intPart) > maxIntegerDigits {
		return "", fmt.Errorf("%w: %s has %d integer digits, max %d", ErrOverflow, sign+s, len(intPart), maxIntegerDigits)
	}

	var b strings.Builder
	b.Grow(c.PaddedWidth())
	b.WriteString(sign)
	b.WriteString(strings.Repeat("0", maxIntegerDigits-len(intPart)))
	b.WriteString(intPart)
	b.WriteByte('.')
	b.WriteString(frac)
	b.WriteString(strings.Repeat("0", scale-len(frac)))
	return b.String(), nil
}

// checkPaddedBounds rejects values whose exponent alone puts them outside
// the padded field, before they are rendered at full length.
func (c Codec) checkPaddedBounds(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	exp, digits := int64(d.Exponent()), d.NumDigits()
	if exp > 0 && int64(digits)+exp > int64(c.IntegerDigits) {
		return fmt.Errorf("%w: %se%d has %d integer digits, max %d", ErrOverflow, d.Coefficient(), exp, int64(digits)+exp, c.IntegerDigits)
	}
	// A coefficient of n digits has at most n-1 trailing zeros to drop.
	if excess := -exp - int64(c.Scale); excess > 0 && excess > int64(digits-1) {
		return fmt.Errorf("%w: %se%d has more than %d fractional digits", ErrPrecision, d.Coefficient(), exp, c.Scale)
	}
	return nil
}

// DecodePadded parses a padded string. Leading zeros are insignificant.
func (c Codec) DecodePadded(s string) (decimal.Decimal, error) {
	return parse(s)
}

// Encode renders d in the given encoding.
func (c Codec) Encode(enc Encoding, d decimal.Decimal) (string, error) {
	if enc == Padded {
		return c.EncodePadded(d)
	}
	return c.EncodeCompact(d), nil
}

// Decode parses s written in the given encoding.
func (c Codec) Decode(enc Encoding, s string) (decimal.Decimal, error) {
	if enc == Padded {
		return c.DecodePadded(s)
	}
	return c.DecodeCompact(s)
}

// parse accepts plain decimal text: digits with an optional sign and point.
func parse(s string) (decimal.Decimal, error) {
	if strings.ContainsAny(s, "eE") {
		return decimal.Decimal{}, fmt.Errorf("%w: %.32q: exponent notation", ErrParse, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %.32q: %v", ErrParse, s, err)
	}
	return d, nil
}

// EncodeCompact encodes d with Money18.
func EncodeCompact(d decimal.Decimal) string { return Money18.EncodeCompact(d) }

// DecodeCompact decodes s with Money18.
func DecodeCompact(s string) (decimal.Decimal, error) { return Money18.DecodeCompact(s) }

// EncodePadded encodes d with Money18.
func EncodePadded(d decimal.Decimal) (string, error) { return Money18.EncodePadded(d) }

// DecodePadded decodes s with Money18.
func DecodePadded(s string) (decimal.Decimal, error) { return Money18.DecodePadded(s) }
