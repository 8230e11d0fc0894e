package converter

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// BindColumnTypes makes every money field of models a text column, sized to
// the padded width where the field is padded. gorm derives column types from
// the Go type, and decimal.NullDecimal would otherwise get a numeric column
// that stores padded text as a float. Call it before AutoMigrate. Fields with
// an explicit type tag are left alone.
func BindColumnTypes(db *gorm.DB, models ...any) error {
	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("failed to parse %T: %w", model, err)
		}
		for _, field := range stmt.Schema.Fields {
			if _, ok := field.TagSettings["TYPE"]; ok {
				continue
			}
			codec, enc, ok := columnEncoding(field)
			if !ok {
				continue
			}
			field.DataType = schema.String
			if enc == Padded && field.Size == 0 {
				field.Size = codec.PaddedWidth()
			}
		}
	}
	return nil
}

func columnEncoding(field *schema.Field) (Codec, Encoding, bool) {
	switch s := field.Serializer.(type) {
	case Serializer:
		return s.Codec, s.Encoding, true
	case tableSerializer:
		return s.codec, s.encoding(field), true
	default:
		return Codec{}, Compact, false
	}
}
