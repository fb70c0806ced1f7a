package verifactu

import "testing"

func TestWithinTaxTolerance(t *testing.T) {
	cases := []struct {
		base, rate, tax string
		within          bool
	}{
		{"10.00", "21.00", "2.10", true},
		{"12.34", "21.00", "2.59", true},
		{"543.21", "10.00", "54.31", true}, // off by 0.01, within ±0.02
		{"543.21", "10.00", "54.35", false},
		{"100.00", "0.00", "0.00", true},
	}
	for _, c := range cases {
		if got := withinTaxTolerance(c.base, c.rate, c.tax); got != c.within {
			t.Errorf("withinTaxTolerance(%s, %s, %s) = %v, want %v", c.base, c.rate, c.tax, got, c.within)
		}
	}
}

func TestValidateBreakdownLine_SubjectRequiresRateAndTax(t *testing.T) {
	line := BreakdownLine{Tax: TaxIVA, Regime: Regime01, Operation: OpSubject, Base: "10.00"}
	errs := validateBreakdownLine("b", line)
	if len(errs) == 0 {
		t.Error("expected rejection: subject operation missing rate and tax amount")
	}
}

func TestValidateBreakdownLine_NonSubjectForbidsRateAndTax(t *testing.T) {
	line := BreakdownLine{Tax: TaxIVA, Regime: Regime01, Operation: OpNonSubject, Base: "10.00", Rate: "21.00", TaxAmount: "2.10"}
	errs := validateBreakdownLine("b", line)
	if len(errs) == 0 {
		t.Error("expected rejection: non-subject operation carrying rate and tax amount")
	}
}

func TestValidateBreakdownLine_ExemptWithoutRateAndTaxAccepted(t *testing.T) {
	line := BreakdownLine{Tax: TaxIVA, Regime: Regime01, Operation: OpExemptArt20, Base: "10.00"}
	if errs := validateBreakdownLine("b", line); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateBreakdownLine_ZeroRateIsLegal(t *testing.T) {
	line := BreakdownLine{Tax: TaxIVA, Regime: Regime01, Operation: OpSubject, Base: "10.00", Rate: "0.00", TaxAmount: "0.00"}
	if errs := validateBreakdownLine("b", line); len(errs) != 0 {
		t.Errorf("expected no errors for rate 0.00, got %v", errs)
	}
}

func TestRegistrationTotals_Scenario4(t *testing.T) {
	breakdown := []BreakdownLine{
		{Tax: TaxIVA, Regime: Regime01, Operation: OpSubject, Base: "12.34", Rate: "21.00", TaxAmount: "2.59"},
		{Tax: TaxIVA, Regime: Regime01, Operation: OpSubject, Base: "543.21", Rate: "10.00", TaxAmount: "54.31"},
	}
	base := RegistrationRecord{
		Record: Record{
			Invoice: InvoiceIdentifier{IssuerID: "A00000000", InvoiceNumber: "F-1", IssueDate: mustDate(t, "2006-01-02", "2025-01-01")},
			System:  validSystem(),
			GeneratedAt: mustStamp(t, "2025-01-01T00:00:00+01:00"),
		},
		IssuerName:     "Test Issuer",
		InvoiceType:    InvoiceFactura,
		Recipients:     []Recipient{{Domestic: &FiscalIdentifier{Name: "Buyer", NIF: "B00000000"}}},
		Breakdown:      breakdown,
		TotalTaxAmount: "56.90",
		TotalAmount:    "612.45",
	}

	if _, err := NewRegistrationRecord(base); err != nil {
		t.Errorf("expected acceptance, got %v", err)
	}

	wrongTax := base
	wrongTax.TotalTaxAmount = "56.91"
	if _, err := NewRegistrationRecord(wrongTax); err == nil {
		t.Error("expected rejection: total_tax_amount off by 0.01 with no tolerance")
	}

	wrongTotal := base
	wrongTotal.TotalAmount = "1.23"
	if _, err := NewRegistrationRecord(wrongTotal); err == nil {
		t.Error("expected rejection: total_amount far outside ±0.02 tolerance")
	}
}

func validSystem() ComputerSystem {
	return ComputerSystem{
		VendorName:     "Acme Software S.L.",
		VendorID:       "A00000000",
		Name:           "Acme Billing",
		Version:        "1.0",
		SystemID:       "01",
		InstallationID: "INSTALL-0001",
		OnlyVerifactu:  true,
	}
}
