package http

import (
	"testing"
)

type pledgeShape struct {
	DealID  string   `json:"deal_id" validate:"required,hex32"`
	AssetID string   `json:"asset_id" validate:"required,hex32"`
	Units   *float64 `json:"pledged_units,omitempty" validate:"omitempty,gt=0,dec4"`
}

type dealShape struct {
	Principal    float64 `json:"principal" validate:"required,gt=0,dec2"`
	Rate         float64 `json:"annual_rate_percent" validate:"gte=0,dec4"`
	TermMonths   int     `json:"term_months" validate:"required,gte=1"`
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	ScheduleType string  `json:"schedule_type" validate:"required,schedtype"`
}

func fptr(v float64) *float64 { return &v }

func TestValidator_AcceptsWellFormedInput(t *testing.T) {
	cv := NewValidator()

	if err := cv.Validate(&pledgeShape{
		DealID:  "0123456789abcdef0123456789abcdef",
		AssetID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Units:   fptr(12.3456),
	}); err != nil {
		t.Fatalf("valid pledge rejected: %v", err)
	}

	if err := cv.Validate(&dealShape{
		Principal:    120000.50,
		Rate:         12.1275,
		TermMonths:   12,
		StartDate:    "2024-01-01",
		ScheduleType: "annuity",
	}); err != nil {
		t.Fatalf("valid deal rejected: %v", err)
	}
}

func TestValidator_Hex32(t *testing.T) {
	cv := NewValidator()
	bad := []string{
		"",                                  // empty
		"0123456789ABCDEF0123456789ABCDEF",  // uppercase
		"0123456789abcdef0123456789abcde",   // 31 chars
		"0123456789abcdef0123456789abcdefg", // 33 chars
		"zzzz6789abcdef0123456789abcdef00",  // non-hex
	}
	for _, v := range bad {
		in := &pledgeShape{DealID: v, AssetID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
		if err := cv.Validate(in); err == nil {
			t.Errorf("hex32 accepted %q", v)
		}
	}
}

func TestValidator_DecimalPlaces(t *testing.T) {
	cv := NewValidator()

	in := &dealShape{Principal: 100.123, Rate: 12, TermMonths: 12, StartDate: "2024-01-01", ScheduleType: "diff"}
	if err := cv.Validate(in); err == nil {
		t.Error("dec2 accepted 3 decimal places")
	}

	in = &dealShape{Principal: 100.12, Rate: 12.12345, TermMonths: 12, StartDate: "2024-01-01", ScheduleType: "diff"}
	if err := cv.Validate(in); err == nil {
		t.Error("dec4 accepted 5 decimal places")
	}

	units := &pledgeShape{
		DealID:  "0123456789abcdef0123456789abcdef",
		AssetID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Units:   fptr(1.23456),
	}
	if err := cv.Validate(units); err == nil {
		t.Error("dec4 accepted 5 decimal places on units")
	}
}

func TestValidator_ScheduleType(t *testing.T) {
	cv := NewValidator()
	for _, typ := range []string{"annuity", "diff", "interest_only", "manual", "tranches"} {
		in := &dealShape{Principal: 1000, TermMonths: 6, StartDate: "2024-01-01", ScheduleType: typ}
		if err := cv.Validate(in); err != nil {
			t.Errorf("schedtype rejected %q: %v", typ, err)
		}
	}
	in := &dealShape{Principal: 1000, TermMonths: 6, StartDate: "2024-01-01", ScheduleType: "balloon"}
	if err := cv.Validate(in); err == nil {
		t.Error("schedtype accepted unknown type")
	}
}

func TestToFieldErrors_Messages(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&dealShape{Principal: -1, TermMonths: 0, StartDate: "01/01/2024", ScheduleType: "balloon"})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	fields := map[string]string{}
	for _, fe := range ToFieldErrors(err) {
		fields[fe.Field] = fe.Message
	}
	if fields["ScheduleType"] != "must be one of annuity, diff, interest_only, manual, tranches" {
		t.Errorf("ScheduleType message = %q", fields["ScheduleType"])
	}
	if fields["StartDate"] != "must be a date in YYYY-MM-DD form" {
		t.Errorf("StartDate message = %q", fields["StartDate"])
	}
	if fields["Principal"] == "" {
		t.Error("Principal error missing")
	}
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	out := ToFieldErrors(errDummy{})
	if len(out) != 1 || out[0].Field != "_" {
		t.Fatalf("fallback mapping = %+v", out)
	}
}

type errDummy struct{}

func (errDummy) Error() string { return "dummy" }
