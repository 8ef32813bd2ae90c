package field

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Display renders the value as a human-readable string. Empty string means
// the field holds no value.
func (v Value) Display() string {
	if v.Data == nil {
		return ""
	}

	switch v.Type {
	case TypeText:
		if t, ok := v.Data.(Text); ok {
			return string(t)
		}
	case TypeNumber:
		switch d := v.Data.(type) {
		case Number:
			return printer.Sprint(number.Decimal(float64(d)))
		case Text:
			return string(d)
		}
	case TypeDate:
		if d, ok := v.Data.(Date); ok {
			return time.Time(d).Format("1/2/2006")
		}
	case TypeBoolean:
		if b, ok := v.Data.(Boolean); ok {
			if b {
				return "✓"
			}
			return "✗"
		}
	case TypeCurrency:
		if m, ok := v.Data.(Money); ok {
			return strings.TrimSpace(printer.Sprint(number.Decimal(m.Amount)) + " " + m.Currency)
		}
	case TypeUser:
		if u, ok := v.Data.(UserRef); ok {
			if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
				return name
			}
			return u.DisplayName
		}
	case TypeStatus, TypeSelect:
		if label, ok := v.labelOrRaw().(string); ok {
			return label
		}
	}

	if v.DisplayValue != "" {
		return v.DisplayValue
	}
	return fmt.Sprintf("%v", v.Data)
}
