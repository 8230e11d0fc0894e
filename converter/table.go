package converter

import "fmt"

// Encoding names a stored text form.
type Encoding int

const (
	Compact Encoding = iota
	Padded
)

func (e Encoding) String() string {
	switch e {
	case Compact:
		return "compact"
	case Padded:
		return "padded"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding parses "compact" or "padded".
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "compact", "":
		return Compact, nil
	case "padded":
		return Padded, nil
	default:
		return Compact, fmt.Errorf("converter: unknown encoding %q", s)
	}
}

// Table maps field names to encodings. Keys are either "Model.Field" or a
// bare "Field"; the qualified key wins.
type Table map[string]Encoding

// Lookup returns the encoding for field of model, Compact when unlisted.
func (t Table) Lookup(model, field string) Encoding {
	if model != "" {
		if enc, ok := t[model+"."+field]; ok {
			return enc
		}
	}
	if enc, ok := t[field]; ok {
		return enc
	}
	return Compact
}
