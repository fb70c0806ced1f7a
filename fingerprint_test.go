package verifactu

import (
	"strings"
	"testing"
	"time"
)

func mustDate(t *testing.T, layout, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(layout, value)
	if err != nil {
		t.Fatalf("parsing %q: %v", value, err)
	}
	return parsed
}

func mustStamp(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(canonicalTimestampLayout, value)
	if err != nil {
		t.Fatalf("parsing %q: %v", value, err)
	}
	return parsed
}

func TestFingerprint_ChainHeadRegistration(t *testing.T) {
	r := RegistrationRecord{
		Record: Record{
			Invoice: InvoiceIdentifier{
				IssuerID:      "A00000000",
				InvoiceNumber: "PRUEBA-0001",
				IssueDate:     mustDate(t, "2006-01-02", "2025-06-01"),
			},
			GeneratedAt: mustStamp(t, "2025-06-01T10:20:30+02:00"),
		},
		IssuerName:  "Empresa de Pruebas S.L.",
		InvoiceType: InvoiceSimplificada,
		Description: "Factura simplificada de prueba",
		Breakdown: []BreakdownLine{
			{Tax: TaxIVA, Regime: Regime01, Operation: OpSubject, Base: "10.00", Rate: "21.00", TaxAmount: "2.10"},
		},
		TotalTaxAmount: "2.10",
		TotalAmount:    "12.10",
	}

	got := seal(registrationPayload(r))
	want := "F223F0A84F7D0C701C13C97CF10A1628FF9E46A003DDAEF3A804FBD799D82070"
	if got != want {
		t.Errorf("fingerprint = %s, want %s", got, want)
	}
}

func TestFingerprint_ContinuationRegistration(t *testing.T) {
	r := RegistrationRecord{
		Record: Record{
			Invoice: InvoiceIdentifier{
				IssuerID:      "A00000000",
				InvoiceNumber: "PRUEBA-0002",
				IssueDate:     mustDate(t, "2006-01-02", "2025-06-02"),
			},
			PreviousInvoiceID: &InvoiceIdentifier{
				IssuerID:      "A00000000",
				InvoiceNumber: "PRUEBA-001",
				IssueDate:     mustDate(t, "2006-01-02", "2025-06-01"),
			},
			PreviousFingerprint: strings.Repeat("A", 64),
			GeneratedAt:         mustStamp(t, "2025-06-02T20:30:40+02:00"),
		},
		IssuerName:  "Empresa de Pruebas S.L.",
		InvoiceType: InvoiceSimplificada,
		Breakdown: []BreakdownLine{
			{Tax: TaxIVA, Regime: Regime01, Operation: OpSubject, Base: "100.00", Rate: "21.00", TaxAmount: "21.00"},
		},
		TotalTaxAmount: "21.00",
		TotalAmount:    "121.00",
	}

	got := seal(registrationPayload(r))
	want := "4566062C5A5D7DA4E0E876C0994071CD807962629F8D3C1F33B91EDAA65B2BA1"
	if got != want {
		t.Errorf("fingerprint = %s, want %s", got, want)
	}
}

func TestFingerprint_Cancellation(t *testing.T) {
	r := CancellationRecord{
		Record: Record{
			Invoice: InvoiceIdentifier{
				IssuerID:      "89890001K",
				InvoiceNumber: "12345679/G34",
				IssueDate:     mustDate(t, "2006-01-02", "2024-01-01"),
			},
			PreviousInvoiceID: &InvoiceIdentifier{
				IssuerID:      "89890001K",
				InvoiceNumber: "12345679/G34",
				IssueDate:     mustDate(t, "2006-01-02", "2024-01-01"),
			},
			PreviousFingerprint: "F7B94CFD8924EDFF273501B01EE5153E4CE8F259766F88CF6ACB8935802A2B97",
			GeneratedAt:         mustStamp(t, "2024-01-01T19:20:40+01:00"),
		},
		IssuerName: "Empresa de Pruebas S.L.",
	}

	got := seal(cancellationPayload(r))
	want := "177547C0D57AC74748561D054A9CEC14B4C4EA23D1BEFD6F2E69E3A388F90C68"
	if got != want {
		t.Errorf("fingerprint = %s, want %s", got, want)
	}
}

func TestCanonicalDate(t *testing.T) {
	d := mustDate(t, "2006-01-02", "2025-06-01")
	if got := canonicalDate(d); got != "01-06-2025" {
		t.Errorf("canonicalDate = %s, want 01-06-2025", got)
	}
}

func TestCanonicalTimestamp_PreservesSuppliedOffset(t *testing.T) {
	stamp := mustStamp(t, "2025-06-01T10:20:30+02:00")
	if got := canonicalTimestamp(stamp); got != "2025-06-01T10:20:30+02:00" {
		t.Errorf("canonicalTimestamp = %s, want 2025-06-01T10:20:30+02:00", got)
	}
}

