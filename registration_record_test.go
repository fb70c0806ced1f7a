package verifactu

// SPDX-License-Identifier: MIT
// Copyright (c) 2024 L. D. T. d.o.o.
// Copyright (c) contributors for their respective contributions. See https://github.com/l-d-t/verifactu/graphs/contributors

import (
	"strings"
	"testing"
)

func baseRegistration(t *testing.T) RegistrationRecord {
	t.Helper()
	return RegistrationRecord{
		Record: Record{
			Invoice: InvoiceIdentifier{
				IssuerID:      "A00000000",
				InvoiceNumber: "F-0001",
				IssueDate:     mustDate(t, "2006-01-02", "2025-01-01"),
			},
			System:      validSystem(),
			GeneratedAt: mustStamp(t, "2025-01-01T00:00:00+01:00"),
		},
		IssuerName:  "Test Issuer S.L.",
		InvoiceType: InvoiceFactura,
		Recipients: []Recipient{
			{Domestic: &FiscalIdentifier{Name: "Buyer", NIF: "B00000000"}},
		},
		Breakdown: []BreakdownLine{
			{Tax: TaxIVA, Regime: Regime01, Operation: OpSubject, Base: "10.00", Rate: "21.00", TaxAmount: "2.10"},
		},
		TotalTaxAmount: "2.10",
		TotalAmount:    "12.10",
	}
}

func TestRegistrationRecord_InvoiceNumberLengthBoundary(t *testing.T) {
	r := baseRegistration(t)

	r.Invoice.InvoiceNumber = strings.Repeat("N", 60)
	if _, err := NewRegistrationRecord(r); err != nil {
		t.Errorf("60-character invoice number should be accepted, got %v", err)
	}

	r.Invoice.InvoiceNumber = strings.Repeat("N", 61)
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error("61-character invoice number should be rejected")
	}
}

func TestRegistrationRecord_ForeignRecipientCountryES(t *testing.T) {
	r := baseRegistration(t)
	r.Recipients = []Recipient{
		{Foreign: &ForeignFiscalIdentifier{Name: "Buyer", Country: "ES", Type: ForeignVAT, Value: "ESX1234567"}},
	}
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error(`foreign fiscal identifier with country "ES" should be rejected`)
	}
}

func TestRegistrationRecord_F2MustHaveNoRecipients(t *testing.T) {
	r := baseRegistration(t)
	r.InvoiceType = InvoiceSimplificada
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error("F2 with a recipient should be rejected")
	}

	r.Recipients = nil
	if _, err := NewRegistrationRecord(r); err != nil {
		t.Errorf("F2 with no recipients should be accepted, got %v", err)
	}
}

func TestRegistrationRecord_R5MustHaveNoRecipients(t *testing.T) {
	r := baseRegistration(t)
	r.InvoiceType = InvoiceR5
	r.CorrectiveType = CorrectiveDifferences
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error("R5 with a recipient should be rejected")
	}
}

func TestRegistrationRecord_F1RequiresRecipients(t *testing.T) {
	r := baseRegistration(t)
	r.Recipients = nil
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error("F1 with zero recipients should be rejected")
	}
}

func TestRegistrationRecord_CorrectiveTypeRequiredForRxInvoices(t *testing.T) {
	r := baseRegistration(t)
	r.InvoiceType = InvoiceR1
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error("R1 without a corrective_type should be rejected")
	}

	r.CorrectiveType = CorrectiveSubstitution
	r.CorrectedBase = "10.00"
	r.CorrectedTax = "2.10"
	if _, err := NewRegistrationRecord(r); err != nil {
		t.Errorf("R1 with corrective_type S and both corrected amounts should be accepted, got %v", err)
	}
}

func TestRegistrationRecord_CorrectiveTypeForbiddenOutsideRxInvoices(t *testing.T) {
	r := baseRegistration(t)
	r.CorrectiveType = CorrectiveDifferences
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error("corrective_type on a non-corrective invoice type should be rejected")
	}
}

func TestRegistrationRecord_SubstitutionRequiresBothCorrectedAmounts(t *testing.T) {
	r := baseRegistration(t)
	r.InvoiceType = InvoiceR1
	r.CorrectiveType = CorrectiveSubstitution
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error("corrective_type S without corrected_base/corrected_tax should be rejected")
	}
}

func TestRegistrationRecord_DifferencesForbidsCorrectedAmounts(t *testing.T) {
	r := baseRegistration(t)
	r.InvoiceType = InvoiceR1
	r.CorrectiveType = CorrectiveDifferences
	r.CorrectedBase = "10.00"
	r.CorrectedTax = "2.10"
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error("corrective_type I with corrected amounts present should be rejected")
	}
}

func TestRegistrationRecord_ReplacedInvoicesOnlyForF3(t *testing.T) {
	r := baseRegistration(t)
	r.ReplacedInvoices = []InvoiceIdentifier{r.Invoice}
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error("replaced_invoices on a non-F3 invoice should be rejected")
	}

	r.InvoiceType = InvoiceSustitutiva
	if _, err := NewRegistrationRecord(r); err != nil {
		t.Errorf("replaced_invoices on an F3 invoice should be accepted, got %v", err)
	}
}

func TestRegistrationRecord_EmptyStringFieldsRejected(t *testing.T) {
	r := baseRegistration(t)
	r.IssuerName = ""
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error("empty issuer_name should be rejected, not treated as absent")
	}
}

func TestRegistrationRecord_NegativeAmountsAllowedOnLines(t *testing.T) {
	r := baseRegistration(t)
	r.Breakdown = []BreakdownLine{
		{Tax: TaxIVA, Regime: Regime01, Operation: OpSubject, Base: "-10.00", Rate: "21.00", TaxAmount: "-2.10"},
		{Tax: TaxIVA, Regime: Regime01, Operation: OpSubject, Base: "20.00", Rate: "21.00", TaxAmount: "4.20"},
	}
	r.TotalTaxAmount = "2.10"
	r.TotalAmount = "12.10"
	if _, err := NewRegistrationRecord(r); err != nil {
		t.Errorf("negative base/tax amounts should be legal as long as totals stay non-negative, got %v", err)
	}
}

func TestRegistrationRecord_NegativeTotalsRejected(t *testing.T) {
	r := baseRegistration(t)
	r.Breakdown = []BreakdownLine{
		{Tax: TaxIVA, Regime: Regime01, Operation: OpSubject, Base: "-10.00", Rate: "21.00", TaxAmount: "-2.10"},
	}
	r.TotalTaxAmount = "-2.10"
	r.TotalAmount = "-12.10"
	if _, err := NewRegistrationRecord(r); err == nil {
		t.Error("negative total_tax_amount/total_amount must be rejected even though per-line amounts may be negative")
	}
}

func TestSealRegistration_PopulatesFingerprint(t *testing.T) {
	r := baseRegistration(t)
	sealed, err := SealRegistration(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ValidFingerprint(sealed.Fingerprint) {
		t.Errorf("sealed fingerprint %q is not well-formed", sealed.Fingerprint)
	}
}
