package verifactu

import "testing"

func TestValidateCorrectionRejection(t *testing.T) {
	cases := []struct {
		correction Correction
		rejection  PreviousRejection
		allowed    bool
	}{
		{"", "", true},
		{CorrectionYes, "", true},
		{CorrectionNo, "", true},

		{CorrectionNo, PreviousRejectionNo, true},
		{CorrectionNo, PreviousRejectionYes, false},
		{CorrectionNo, PreviousRejectionUnknown, false},

		{CorrectionYes, PreviousRejectionNo, false},
		{CorrectionYes, PreviousRejectionYes, true},
		{CorrectionYes, PreviousRejectionUnknown, true},

		{"", PreviousRejectionNo, true},
		{"", PreviousRejectionYes, true},
		{"", PreviousRejectionUnknown, false},
	}

	for _, c := range cases {
		errs := validateCorrectionRejection("x", c.correction, c.rejection)
		gotAllowed := len(errs) == 0
		if gotAllowed != c.allowed {
			t.Errorf("correction=%q rejection=%q: allowed=%v, want %v", c.correction, c.rejection, gotAllowed, c.allowed)
		}
	}
}

func TestValidateChainPair(t *testing.T) {
	inv := InvoiceIdentifier{IssuerID: "A00000000", InvoiceNumber: "F-1", IssueDate: mustDate(t, "2006-01-02", "2025-01-01")}

	t.Run("chain head: both absent", func(t *testing.T) {
		r := Record{Invoice: inv}
		if errs := validateChainPair("r", r); len(errs) != 0 {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("continuation: both present", func(t *testing.T) {
		r := Record{
			Invoice:             inv,
			PreviousInvoiceID:   &inv,
			PreviousFingerprint: "F223F0A84F7D0C701C13C97CF10A1628FF9E46A003DDAEF3A804FBD799D82070",
		}
		if errs := validateChainPair("r", r); len(errs) != 0 {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("previous fingerprint without previous identifier: reject", func(t *testing.T) {
		r := Record{
			Invoice:             inv,
			PreviousFingerprint: "F223F0A84F7D0C701C13C97CF10A1628FF9E46A003DDAEF3A804FBD799D82070",
		}
		if errs := validateChainPair("r", r); len(errs) == 0 {
			t.Error("expected a rejection")
		}
	})

	t.Run("previous identifier without previous fingerprint: reject", func(t *testing.T) {
		r := Record{Invoice: inv, PreviousInvoiceID: &inv}
		if errs := validateChainPair("r", r); len(errs) == 0 {
			t.Error("expected a rejection")
		}
	})
}

func TestRequirePreviousPair_CancellationAlwaysNeedsChain(t *testing.T) {
	inv := InvoiceIdentifier{IssuerID: "A00000000", InvoiceNumber: "F-1", IssueDate: mustDate(t, "2006-01-02", "2025-01-01")}

	r := Record{Invoice: inv}
	if errs := requirePreviousPair("c", r); len(errs) == 0 {
		t.Error("cancellation with no previous pair must be rejected even though chain heads are otherwise legal")
	}
}
