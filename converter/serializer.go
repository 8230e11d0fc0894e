package converter

import (
	"context"
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/schema"
)

// Serializer names registered with gorm.
const (
	SerializerCompact = "money18"
	SerializerPadded  = "money18padded"
)

var (
	decimalType     = reflect.TypeOf(decimal.Decimal{})
	nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})
	ptrDecimalType  = reflect.TypeOf(&decimal.Decimal{})
)

func init() {
	RegisterCodec(Money18)
}

// RegisterCodec re-registers the money18 and money18padded serializers with
// c. gorm resolves serializers when it first parses a model, so call it
// before opening any database.
func RegisterCodec(c Codec) {
	schema.RegisterSerializer(SerializerCompact, Serializer{Codec: c, Encoding: Compact})
	schema.RegisterSerializer(SerializerPadded, Serializer{Codec: c, Encoding: Padded})
}

// Serializer is a gorm value-conversion hook for decimal fields. Fields may
// be decimal.Decimal, decimal.NullDecimal or *decimal.Decimal.
type Serializer struct {
	Codec    Codec
	Encoding Encoding
}

// Scan implements schema.SerializerInterface.
func (s Serializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue interface{}) error {
	return scanField(ctx, s.Codec, s.Encoding, field, dst, dbValue)
}

// Value implements schema.SerializerValuerInterface.
func (s Serializer) Value(_ context.Context, field *schema.Field, _ reflect.Value, fieldValue interface{}) (interface{}, error) {
	return valueOf(s.Codec, s.Encoding, field, fieldValue)
}

// RegisterTable registers a gorm serializer under name that picks the
// encoding of each field from t.
func RegisterTable(name string, t Table, c Codec) {
	schema.RegisterSerializer(name, tableSerializer{table: t, codec: c})
}

type tableSerializer struct {
	table Table
	codec Codec
}

func (s tableSerializer) encoding(field *schema.Field) Encoding {
	model := ""
	if field.Schema != nil {
		model = field.Schema.Name
	}
	return s.table.Lookup(model, field.Name)
}

func (s tableSerializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue interface{}) error {
	return scanField(ctx, s.codec, s.encoding(field), field, dst, dbValue)
}

func (s tableSerializer) Value(_ context.Context, field *schema.Field, _ reflect.Value, fieldValue interface{}) (interface{}, error) {
	return valueOf(s.codec, s.encoding(field), field, fieldValue)
}

func scanField(ctx context.Context, c Codec, enc Encoding, field *schema.Field, dst reflect.Value, dbValue interface{}) error {
	var raw *string
	switch v := dbValue.(type) {
	case nil:
	case string:
		raw = &v
	case []byte:
		str := string(v)
		raw = &str
	default:
		return fmt.Errorf("%w: field %s: unsupported column value %T", ErrParse, field.Name, dbValue)
	}

	value, err := decodeField(c, enc, field.FieldType, raw)
	if err != nil {
		return fmt.Errorf("field %s: %w", field.Name, err)
	}
	field.ReflectValueOf(ctx, dst).Set(value)
	return nil
}

func decodeField(c Codec, enc Encoding, typ reflect.Type, raw *string) (reflect.Value, error) {
	switch typ {
	case decimalType:
		if raw == nil {
			return reflect.ValueOf(decimal.Decimal{}), nil
		}
		d, err := c.Decode(enc, *raw)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d), nil
	case nullDecimalType, ptrDecimalType:
		var nd decimal.NullDecimal
		if raw != nil {
			var err error
			if enc == Padded {
				nd, err = c.DecodePaddedNull(nullString(*raw))
			} else {
				nd, err = c.DecodeCompactNull(nullString(*raw))
			}
			if err != nil {
				return reflect.Value{}, err
			}
		}
		if typ == nullDecimalType {
			return reflect.ValueOf(nd), nil
		}
		if !nd.Valid {
			return reflect.Zero(ptrDecimalType), nil
		}
		return reflect.ValueOf(&nd.Decimal), nil
	default:
		return reflect.Value{}, fmt.Errorf("converter: unsupported field type %s", typ)
	}
}

func valueOf(c Codec, enc Encoding, field *schema.Field, fieldValue interface{}) (interface{}, error) {
	var d decimal.Decimal
	switch v := fieldValue.(type) {
	case decimal.Decimal:
		d = v
	case decimal.NullDecimal:
		if !v.Valid {
			return nil, nil
		}
		d = v.Decimal
	case *decimal.Decimal:
		if v == nil {
			return nil, nil
		}
		d = *v
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("converter: field %s: unsupported value %T", field.Name, fieldValue)
	}

	s, err := c.Encode(enc, d)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", field.Name, err)
	}
	return s, nil
}
