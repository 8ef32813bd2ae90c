package field

import (
	"testing"
	"time"
)

func TestDisplay_Number(t *testing.T) {
	v := Value{Type: TypeNumber, Data: Number(1234567)}
	if got := v.Display(); got != "1,234,567" {
		t.Errorf("got %q, want grouped digits", got)
	}
}

func TestDisplay_Currency(t *testing.T) {
	v := Value{Type: TypeCurrency, Data: Money{Amount: 12500, Currency: "USD"}}
	if got := v.Display(); got != "12,500 USD" {
		t.Errorf("got %q, want \"12,500 USD\"", got)
	}

	noCode := Value{Type: TypeCurrency, Data: Money{Amount: 500}}
	if got := noCode.Display(); got != "500" {
		t.Errorf("got %q, want bare amount", got)
	}
}

func TestDisplay_Boolean(t *testing.T) {
	yes := Value{Type: TypeBoolean, Data: Boolean(true)}
	no := Value{Type: TypeBoolean, Data: Boolean(false)}
	if got := yes.Display(); got != "✓" {
		t.Errorf("got %q, want check mark", got)
	}
	if got := no.Display(); got != "✗" {
		t.Errorf("got %q, want cross mark", got)
	}
}

func TestDisplay_Date(t *testing.T) {
	v := Value{Type: TypeDate, Data: Date(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))}
	if got := v.Display(); got != "6/1/2025" {
		t.Errorf("got %q, want short date", got)
	}
}

func TestDisplay_User(t *testing.T) {
	v := Value{Type: TypeUser, Data: UserRef{FirstName: "Dana", LastName: "Whitfield"}}
	if got := v.Display(); got != "Dana Whitfield" {
		t.Errorf("got %q", got)
	}

	firstOnly := Value{Type: TypeUser, Data: UserRef{FirstName: "Dana"}}
	if got := firstOnly.Display(); got != "Dana" {
		t.Errorf("got %q, want trimmed single name", got)
	}

	displayOnly := Value{Type: TypeUser, Data: UserRef{DisplayName: "D. Whitfield"}}
	if got := displayOnly.Display(); got != "D. Whitfield" {
		t.Errorf("got %q, want display name fallback", got)
	}
}

func TestDisplay_ReferenceLabels(t *testing.T) {
	status := Value{Type: TypeStatus, Data: StatusRef{StatusID: "st-1"}, DisplayValue: "Drafting"}
	if got := status.Display(); got != "Drafting" {
		t.Errorf("got %q, want resolved status label", got)
	}

	sel := Value{Type: TypeSelect, Data: SelectRef{OptionID: "opt-1"}, DisplayValue: "Litigation"}
	if got := sel.Display(); got != "Litigation" {
		t.Errorf("got %q, want resolved option label", got)
	}
}

func TestDisplay_AbsentValue(t *testing.T) {
	v := Value{Type: TypeText}
	if got := v.Display(); got != "" {
		t.Errorf("got %q, want empty for absent value", got)
	}
}
