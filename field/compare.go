package field

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SortKey reduces the value to an orderable primitive: a string, float64 or
// time.Time, or nil when the field holds no value. A datum whose shape does
// not match the declared type degrades to nil rather than failing, so one
// malformed row cannot sink a whole list response.
func (v Value) SortKey() any {
	if v.Data == nil {
		return nil
	}

	switch v.Type {
	case TypeText:
		if t, ok := v.Data.(Text); ok {
			return strings.ToLower(string(t))
		}
		return nil
	case TypeNumber:
		switch d := v.Data.(type) {
		case Number:
			return float64(d)
		case Text:
			// Number fields sometimes arrive string-encoded.
			if f, err := strconv.ParseFloat(strings.TrimSpace(string(d)), 64); err == nil {
				return f
			}
			return nil
		default:
			return nil
		}
	case TypeDate:
		if d, ok := v.Data.(Date); ok {
			return time.Time(d)
		}
		return nil
	case TypeBoolean:
		if b, ok := v.Data.(Boolean); ok {
			if b {
				return float64(1)
			}
			return float64(0)
		}
		return nil
	case TypeCurrency:
		if m, ok := v.Data.(Money); ok {
			return m.Amount
		}
		return nil
	case TypeUser:
		if u, ok := v.Data.(UserRef); ok {
			return u.DisplayName
		}
		return nil
	case TypeStatus, TypeSelect:
		return v.labelOrRaw()
	default:
		return v.labelOrRaw()
	}
}

// labelOrRaw prefers the resolved DisplayValue and falls back to a string
// form of the raw datum.
func (v Value) labelOrRaw() any {
	if v.DisplayValue != "" {
		return v.DisplayValue
	}
	switch d := v.Data.(type) {
	case nil:
		return nil
	case Text:
		return string(d)
	case StatusRef:
		return d.StatusID
	case SelectRef:
		return d.OptionID
	default:
		return fmt.Sprintf("%v", d)
	}
}
