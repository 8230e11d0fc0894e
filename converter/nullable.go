package converter

import (
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"
)

// EncodePaddedNull encodes a nullable value; null maps to a null string.
func (c Codec) EncodePaddedNull(d decimal.NullDecimal) (sql.NullString, error) {
	if !d.Valid {
		return sql.NullString{}, nil
	}
	s, err := c.EncodePadded(d.Decimal)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: s, Valid: true}, nil
}

// DecodePaddedNull decodes a nullable padded string. Null, empty and
// whitespace-only input decode to null.
func (c Codec) DecodePaddedNull(s sql.NullString) (decimal.NullDecimal, error) {
	return c.decodeNull(Padded, s)
}

// EncodeCompactNull encodes a nullable value in compact form.
func (c Codec) EncodeCompactNull(d decimal.NullDecimal) sql.NullString {
	if !d.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: c.EncodeCompact(d.Decimal), Valid: true}
}

// DecodeCompactNull decodes a nullable compact string.
func (c Codec) DecodeCompactNull(s sql.NullString) (decimal.NullDecimal, error) {
	return c.decodeNull(Compact, s)
}

func (c Codec) decodeNull(enc Encoding, s sql.NullString) (decimal.NullDecimal, error) {
	if isBlank(s) {
		return decimal.NullDecimal{}, nil
	}
	d, err := c.Decode(enc, s.String)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

func isBlank(s sql.NullString) bool {
	return !s.Valid || strings.TrimSpace(s.String) == ""
}
