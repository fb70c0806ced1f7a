package verifactu

// SPDX-License-Identifier: MIT
// Copyright (c) 2024 L. D. T. d.o.o.
// Copyright (c) contributors for their respective contributions. See https://github.com/l-d-t/verifactu/graphs/contributors

// CancellationRecord is a Registro de Anulación: the revocation of a
// previously registered invoice.
//
// IssuerName supplies NombreRazonEmisor on the wire. The upstream model
// this is adapted from lacks an equivalent field and instead reuses a
// nonexistent cancellation_type when encoding TipoFactura (spec.md §9);
// this implementation does not emit TipoFactura for cancellations at
// all and carries IssuerName explicitly instead.
type CancellationRecord struct {
	Record

	IssuerName string

	// WithoutPriorRecord marks a cancellation submitted outside the
	// normal chain sequence. It does not relax the requirement that
	// PreviousInvoiceID/PreviousFingerprint be present: they describe
	// this record's chain position, not a reference to an AEAT-known
	// predecessor record (spec.md §4.1 edge cases).
	WithoutPriorRecord bool
}

// NewCancellationRecord constructs and validates r, returning an
// *InvalidModelError if any §3 invariant is violated. The fingerprint
// is left empty; call SealCancellation to compute and assign it.
func NewCancellationRecord(r CancellationRecord) (*CancellationRecord, error) {
	if errs := validateCancellationRecord(r); len(errs) > 0 {
		return nil, &InvalidModelError{Errors: errs}
	}
	return &r, nil
}

func validateCancellationRecord(r CancellationRecord) []FieldError {
	var errs []FieldError

	// Step 1: per-field well-formedness.
	errs = append(errs, validateSharedWellFormedness("cancellation", r.Record)...)
	if !notBlank(r.IssuerName) {
		errs = append(errs, FieldError{"cancellation.issuer_name", "cannot be blank"})
	} else if len(r.IssuerName) > 120 {
		errs = append(errs, FieldError{"cancellation.issuer_name", "must be at most 120 characters"})
	}

	// Steps 2, 3, 5 have no cancellation-specific content: cancellations
	// carry no breakdown, amounts, or recipients.

	// Step 4: cross-field rules.
	errs = append(errs, validateCorrectionRejection("cancellation", r.CorrectionMarker, r.PreviousRejection)...)

	// Step 6: chain-pair presence rule — always required, even when
	// WithoutPriorRecord is set.
	errs = append(errs, requirePreviousPair("cancellation", r.Record)...)

	return errs
}
