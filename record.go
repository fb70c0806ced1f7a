package verifactu

// SPDX-License-Identifier: MIT
// Copyright (c) 2024 L. D. T. d.o.o.
// Copyright (c) contributors for their respective contributions. See https://github.com/l-d-t/verifactu/graphs/contributors

import "time"

// PreviousRejection is the RechazoPrevio marker: whether an earlier
// submission attempt for this invoice was rejected by AEAT.
type PreviousRejection string

const (
	PreviousRejectionYes     PreviousRejection = "S"
	PreviousRejectionNo      PreviousRejection = "N"
	PreviousRejectionUnknown PreviousRejection = "X"
)

func (p PreviousRejection) IsValid() bool {
	switch p {
	case PreviousRejectionYes, PreviousRejectionNo, PreviousRejectionUnknown:
		return true
	}
	return false
}

// Correction is the Subsanacion marker: whether this record corrects a
// previously rejected or erroneous submission.
type Correction string

const (
	CorrectionYes Correction = "S"
	CorrectionNo  Correction = "N"
)

func (c Correction) IsValid() bool {
	switch c {
	case CorrectionYes, CorrectionNo:
		return true
	}
	return false
}

// Record holds the fields common to both RegistrationRecord and
// CancellationRecord: the invoice being reported, the chain-pair
// identifying the predecessor, the computer system that produced it,
// and the sealing metadata filled in once the record is chained.
type Record struct {
	Invoice InvoiceIdentifier

	// PreviousInvoiceID and PreviousFingerprint identify and seal the
	// chain's previous record. Both must be present together, or both
	// absent (chain head), never one without the other.
	PreviousInvoiceID   *InvoiceIdentifier
	PreviousFingerprint string

	System ComputerSystem

	// PreviousRejection and CorrectionMarker are empty-string when
	// absent; see validateCorrectionRejection for the cross-constraint
	// they are jointly subject to.
	PreviousRejection PreviousRejection
	CorrectionMarker  Correction

	// ExternalReference is the caller's own reference (RefExterna),
	// ≤60 characters, not part of the fingerprint payload.
	ExternalReference string

	// IncidentFlag marks a record produced while the computer system
	// was in an incident state (spec.md §12). Encode does not read it;
	// the envelope's Incidencia block comes from Batch.IncidentFlag.
	IncidentFlag bool

	// GeneratedAt is the instant the record was sealed; canonicalized
	// into the fingerprint payload by fingerprint.go.
	GeneratedAt time.Time

	// Fingerprint is the record's own sealed hash, set by
	// SealRegistration or SealCancellation; empty before that.
	Fingerprint string
}

// isChainHead reports whether the record has no predecessor.
func (r Record) isChainHead() bool {
	return r.PreviousInvoiceID == nil && r.PreviousFingerprint == ""
}

// validateSharedWellFormedness checks the §3 shared-field
// well-formedness rules that apply identically to both variants: step 1
// of the §4.1 validator order. The chain-pair rule (step 6) is checked
// separately by validateChainPair / requirePreviousPair, and steps 2-5
// are variant-specific and live in registration_record.go /
// cancellation_record.go.
func validateSharedWellFormedness(path string, r Record) []FieldError {
	var errs []FieldError
	errs = append(errs, validateInvoiceIdentifier(path+".invoice", r.Invoice)...)
	errs = append(errs, validateComputerSystem(path+".system", r.System)...)
	if r.PreviousRejection != "" && !r.PreviousRejection.IsValid() {
		errs = append(errs, FieldError{path + ".previous_rejection", "must be one of S, N, X"})
	}
	if r.CorrectionMarker != "" && !r.CorrectionMarker.IsValid() {
		errs = append(errs, FieldError{path + ".correction_marker", "must be one of S, N"})
	}
	if len(r.ExternalReference) > 60 {
		errs = append(errs, FieldError{path + ".external_reference", "must be at most 60 characters"})
	}
	return errs
}

// validateChainPair enforces that the previous-record fields are both
// present or both absent (registration chain heads only; cancellations
// override this via requirePreviousPair since the pair is always
// mandatory for them).
func validateChainPair(path string, r Record) []FieldError {
	hasID := r.PreviousInvoiceID != nil
	hasFingerprint := r.PreviousFingerprint != ""

	if hasID == hasFingerprint {
		if hasID {
			var errs []FieldError
			errs = append(errs, validateInvoiceIdentifier(path+".previous_invoice_id", *r.PreviousInvoiceID)...)
			if !ValidFingerprint(r.PreviousFingerprint) {
				errs = append(errs, FieldError{path + ".previous_fingerprint", "must be 64 uppercase hexadecimal characters"})
			}
			return errs
		}
		return nil
	}

	if hasID {
		return []FieldError{{path + ".previous_fingerprint", "must be present whenever previous_invoice_id is set"}}
	}
	return []FieldError{{path + ".previous_invoice_id", "must be present whenever previous_fingerprint is set"}}
}

// requirePreviousPair enforces that both previous fields are present,
// rejecting the chain-head case entirely (cancellations always
// reference a predecessor, even when without_prior_record is set).
func requirePreviousPair(path string, r Record) []FieldError {
	if r.PreviousInvoiceID == nil || r.PreviousFingerprint == "" {
		return []FieldError{{path, "previous_invoice_id and previous_fingerprint are both required on a cancellation"}}
	}
	return validateChainPair(path, r)
}

// validateCorrectionRejection enforces the correction/rejection
// cross-constraint table (spec.md §3):
//
//	correction   previous_rejection   allowed?
//	any          absent                yes
//	N            N or absent           yes
//	N            S, X                  no
//	S            N                     no
//	S            S, X                  yes
//	absent       X                     no (X requires S)
func validateCorrectionRejection(path string, correction Correction, rejection PreviousRejection) []FieldError {
	if rejection == "" {
		return nil
	}
	switch correction {
	case CorrectionYes:
		if rejection == PreviousRejectionNo {
			return []FieldError{{path, "correction S is incompatible with previous_rejection N"}}
		}
		return nil
	case CorrectionNo:
		if rejection == PreviousRejectionYes || rejection == PreviousRejectionUnknown {
			return []FieldError{{path, "correction N is incompatible with previous_rejection S or X"}}
		}
		return nil
	default:
		if rejection == PreviousRejectionUnknown {
			return []FieldError{{path, "previous_rejection X requires correction S"}}
		}
		return nil
	}
}
