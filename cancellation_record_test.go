package verifactu

// SPDX-License-Identifier: MIT
// Copyright (c) 2024 L. D. T. d.o.o.
// Copyright (c) contributors for their respective contributions. See https://github.com/l-d-t/verifactu/graphs/contributors

import "testing"

func baseCancellation(t *testing.T) CancellationRecord {
	t.Helper()
	inv := InvoiceIdentifier{
		IssuerID:      "89890001K",
		InvoiceNumber: "12345679/G34",
		IssueDate:     mustDate(t, "2006-01-02", "2024-01-01"),
	}
	return CancellationRecord{
		Record: Record{
			Invoice:             inv,
			PreviousInvoiceID:   &inv,
			PreviousFingerprint: "F7B94CFD8924EDFF273501B01EE5153E4CE8F259766F88CF6ACB8935802A2B97",
			System:              validSystem(),
			GeneratedAt:         mustStamp(t, "2024-01-01T19:20:40+01:00"),
		},
		IssuerName: "Empresa de Pruebas S.L.",
	}
}

func TestCancellationRecord_Accepted(t *testing.T) {
	r := baseCancellation(t)
	if _, err := NewCancellationRecord(r); err != nil {
		t.Errorf("expected acceptance, got %v", err)
	}
}

func TestCancellationRecord_BothPreviousFieldsAbsentRejected(t *testing.T) {
	r := baseCancellation(t)
	r.PreviousInvoiceID = nil
	r.PreviousFingerprint = ""
	if _, err := NewCancellationRecord(r); err == nil {
		t.Error("cancellation with no previous pair should be rejected")
	}
}

func TestCancellationRecord_WithoutPriorRecordStillRequiresChainPair(t *testing.T) {
	r := baseCancellation(t)
	r.PreviousInvoiceID = nil
	r.PreviousFingerprint = ""
	r.WithoutPriorRecord = true
	if _, err := NewCancellationRecord(r); err == nil {
		t.Error("without_prior_record=true does not exempt a cancellation from the chain-pair rule")
	}
}

func TestCancellationRecord_EmptyIssuerNameRejected(t *testing.T) {
	r := baseCancellation(t)
	r.IssuerName = ""
	if _, err := NewCancellationRecord(r); err == nil {
		t.Error("empty issuer_name should be rejected")
	}
}

func TestSealCancellation_MatchesExpectedFingerprint(t *testing.T) {
	r := baseCancellation(t)
	sealed, err := SealCancellation(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "177547C0D57AC74748561D054A9CEC14B4C4EA23D1BEFD6F2E69E3A388F90C68"
	if sealed.Fingerprint != want {
		t.Errorf("fingerprint = %s, want %s", sealed.Fingerprint, want)
	}
}
