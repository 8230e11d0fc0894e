package converter

import "errors"

var (
	// ErrParse is returned when stored text is not a valid decimal.
	ErrParse = errors.New("converter: malformed decimal")
	// ErrOverflow is returned when the integer part does not fit the padded field.
	ErrOverflow = errors.New("converter: integer part exceeds padded width")
	// ErrPrecision is returned when a value carries more fractional digits than the codec scale.
	ErrPrecision = errors.New("converter: fractional digits exceed scale")
)
