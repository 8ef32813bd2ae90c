package field

import (
	"strings"
	"time"
)

// Type tags the shape of a field's datum. Every consumer (comparison key
// extraction, display formatting, persistence scanning) switches on this tag
// before touching the datum.
type Type string

const (
	TypeText     Type = "text"
	TypeNumber   Type = "number"
	TypeDate     Type = "date"
	TypeBoolean  Type = "boolean"
	TypeCurrency Type = "currency"
	TypeStatus   Type = "status"
	TypeSelect   Type = "select"
	TypeUser     Type = "user"
)

// Datum is the sealed set of value shapes a field can carry. A nil Datum
// means the field has no value.
type Datum interface {
	datum()
}

// Text is a free-form string value.
type Text string

// Number is a numeric value.
type Number float64

// Date is an instant value.
type Date time.Time

// Boolean is a yes/no value.
type Boolean bool

// Money is a currency amount. Ordering is by Amount only; the currency code
// participates in display, never in comparison.
type Money struct {
	Amount   float64
	Currency string
}

// StatusRef points at a workflow status definition and the stage group it
// belongs to.
type StatusRef struct {
	StatusID string
	Group    string
}

// SelectRef points at a select-field option by id. The resolved label, when
// available, lives in Value.DisplayValue.
type SelectRef struct {
	OptionID string
}

// UserRef is a resolved user reference.
type UserRef struct {
	ID          string
	Email       string
	FirstName   string
	LastName    string
	DisplayName string
}

func (Text) datum()      {}
func (Number) datum()    {}
func (Date) datum()      {}
func (Boolean) datum()   {}
func (Money) datum()     {}
func (StatusRef) datum() {}
func (SelectRef) datum() {}
func (UserRef) datum()   {}

// Value is one typed attribute attached to a matter.
type Value struct {
	FieldID   string
	FieldName string
	Type      Type
	// Data is nil when the field is present on the board but holds no value
	// for this matter.
	Data Datum
	// DisplayValue is the precomputed human-readable label resolved by the
	// repository (status names, select option labels). When present it wins
	// over Data for display and for status/select comparison.
	DisplayValue string
}

// Key normalizes a field name for lookup. Names are lowercased and trimmed
// once here so single-fetch and bulk-fetch paths agree on keying.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Set maps normalized field names to values for one matter.
type Set map[string]Value

// Add stores v under its normalized field name.
func (s Set) Add(v Value) {
	s[Key(v.FieldName)] = v
}

// Lookup fetches the value for name, normalizing the key first.
func (s Set) Lookup(name string) (Value, bool) {
	v, ok := s[Key(name)]
	return v, ok
}
