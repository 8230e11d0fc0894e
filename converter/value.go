package converter

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// PaddedValue stores a decimal as Money18 padded text through database/sql.
type PaddedValue struct {
	decimal.Decimal
}

// Value implements driver.Valuer.
func (p PaddedValue) Value() (driver.Value, error) {
	return EncodePadded(p.Decimal)
}

// Scan implements sql.Scanner.
func (p *PaddedValue) Scan(src interface{}) error {
	s, err := textOf(src)
	if err != nil {
		return err
	}
	if !s.Valid {
		return fmt.Errorf("%w: null into non-nullable PaddedValue", ErrParse)
	}
	d, err := DecodePadded(s.String)
	if err != nil {
		return err
	}
	p.Decimal = d
	return nil
}

// NullPaddedValue is the nullable PaddedValue.
type NullPaddedValue struct {
	decimal.NullDecimal
}

// Value implements driver.Valuer.
func (p NullPaddedValue) Value() (driver.Value, error) {
	s, err := Money18.EncodePaddedNull(p.NullDecimal)
	if err != nil || !s.Valid {
		return nil, err
	}
	return s.String, nil
}

// Scan implements sql.Scanner.
func (p *NullPaddedValue) Scan(src interface{}) error {
	s, err := textOf(src)
	if err != nil {
		return err
	}
	nd, err := Money18.DecodePaddedNull(s)
	if err != nil {
		return err
	}
	p.NullDecimal = nd
	return nil
}

// CompactValue stores a decimal as Money18 compact text through database/sql.
type CompactValue struct {
	decimal.Decimal
}

// Value implements driver.Valuer.
func (c CompactValue) Value() (driver.Value, error) {
	return EncodeCompact(c.Decimal), nil
}

// Scan implements sql.Scanner.
func (c *CompactValue) Scan(src interface{}) error {
	s, err := textOf(src)
	if err != nil {
		return err
	}
	if !s.Valid {
		return fmt.Errorf("%w: null into non-nullable CompactValue", ErrParse)
	}
	d, err := DecodeCompact(s.String)
	if err != nil {
		return err
	}
	c.Decimal = d
	return nil
}

func textOf(src interface{}) (sql.NullString, error) {
	switch v := src.(type) {
	case nil:
		return sql.NullString{}, nil
	case string:
		return nullString(v), nil
	case []byte:
		return nullString(string(v)), nil
	default:
		return sql.NullString{}, fmt.Errorf("%w: cannot scan %T", ErrParse, src)
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
