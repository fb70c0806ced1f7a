package verifactu

// SPDX-License-Identifier: MIT
// Copyright (c) 2024 L. D. T. d.o.o.
// Copyright (c) contributors for their respective contributions. See https://github.com/l-d-t/verifactu/graphs/contributors

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// RegistrationRecord is a Registro de Alta: the declaration of a new
// invoice into the chain.
type RegistrationRecord struct {
	Record

	IssuerName  string
	InvoiceType InvoiceType
	Description string
	Recipients  []Recipient

	CorrectiveType    CorrectiveType
	CorrectedInvoices []InvoiceIdentifier
	CorrectedBase     string
	CorrectedTax      string

	ReplacedInvoices []InvoiceIdentifier

	Breakdown []BreakdownLine

	TotalTaxAmount string
	TotalAmount    string
}

// NewRegistrationRecord constructs and validates r, returning an
// *InvalidModelError if any §3 invariant is violated. The fingerprint
// is left empty; call SealRegistration to compute and assign it.
func NewRegistrationRecord(r RegistrationRecord) (*RegistrationRecord, error) {
	if errs := validateRegistrationRecord(r); len(errs) > 0 {
		return nil, &InvalidModelError{Errors: errs}
	}
	return &r, nil
}

func validateRegistrationRecord(r RegistrationRecord) []FieldError {
	var errs []FieldError

	// Step 1: per-field well-formedness.
	errs = append(errs, validateSharedWellFormedness("registration", r.Record)...)
	if !notBlank(r.IssuerName) {
		errs = append(errs, FieldError{"registration.issuer_name", "cannot be blank"})
	} else if len(r.IssuerName) > 120 {
		errs = append(errs, FieldError{"registration.issuer_name", "must be at most 120 characters"})
	}
	if !r.InvoiceType.IsValid() {
		errs = append(errs, FieldError{"registration.invoice_type", "is not a recognized invoice type"})
	}
	if len(r.Description) > 500 {
		errs = append(errs, FieldError{"registration.description", "must be at most 500 characters"})
	}
	if len(r.Recipients) > 1000 {
		errs = append(errs, FieldError{"registration.recipients", "must contain at most 1000 entries"})
	}
	for i, rec := range r.Recipients {
		errs = append(errs, validateRecipient(fieldAt("registration.recipients", i), rec)...)
	}
	if r.CorrectiveType != "" && !r.CorrectiveType.IsValid() {
		errs = append(errs, FieldError{"registration.corrective_type", "must be S or I"})
	}
	for i, id := range r.CorrectedInvoices {
		errs = append(errs, validateInvoiceIdentifier(fieldAt("registration.corrected_invoices", i), id)...)
	}
	for i, id := range r.ReplacedInvoices {
		errs = append(errs, validateInvoiceIdentifier(fieldAt("registration.replaced_invoices", i), id)...)
	}
	if r.CorrectedBase != "" && !ValidAmount(r.CorrectedBase) {
		errs = append(errs, FieldError{"registration.corrected_base", "must match -?\\d{1,12}.\\d{2}"})
	}
	if r.CorrectedTax != "" && !ValidAmount(r.CorrectedTax) {
		errs = append(errs, FieldError{"registration.corrected_tax", "must match -?\\d{1,12}.\\d{2}"})
	}
	if !ValidAmount(r.TotalTaxAmount) {
		errs = append(errs, FieldError{"registration.total_tax_amount", "must match -?\\d{1,12}.\\d{2}"})
	}
	if !ValidAmount(r.TotalAmount) {
		errs = append(errs, FieldError{"registration.total_amount", "must match -?\\d{1,12}.\\d{2}"})
	}
	if len(r.Breakdown) < 1 || len(r.Breakdown) > 12 {
		errs = append(errs, FieldError{"registration.breakdown", "must contain between 1 and 12 lines"})
	}

	// Step 2: amount format and per-line arithmetic.
	for i, line := range r.Breakdown {
		errs = append(errs, validateBreakdownLine(fieldAt("registration.breakdown", i), line)...)
	}

	// From here on, further checks assume well-formed inputs; skip them
	// if step 1/2 produced any error at all, mirroring the teacher's
	// "stop within a field group" allowance.
	if len(errs) > 0 {
		return errs
	}

	// Step 3: record-variant structural rules.
	switch r.InvoiceType {
	case InvoiceSimplificada, InvoiceR5:
		if len(r.Recipients) != 0 {
			errs = append(errs, FieldError{"registration.recipients", "must be empty for invoice type F2 or R5"})
		}
	default:
		if len(r.Recipients) == 0 {
			errs = append(errs, FieldError{"registration.recipients", "must be non-empty for this invoice type"})
		}
	}

	isCorrective := r.InvoiceType.IsCorrective()
	hasCorrectiveType := r.CorrectiveType != ""
	if isCorrective != hasCorrectiveType {
		if isCorrective {
			errs = append(errs, FieldError{"registration.corrective_type", "is required for invoice types R1-R5"})
		} else {
			errs = append(errs, FieldError{"registration.corrective_type", "must be absent unless invoice_type is R1-R5"})
		}
	}
	if len(r.CorrectedInvoices) > 0 && !hasCorrectiveType {
		errs = append(errs, FieldError{"registration.corrected_invoices", "only allowed on a corrective record"})
	}
	switch r.CorrectiveType {
	case CorrectiveSubstitution:
		if r.CorrectedBase == "" || r.CorrectedTax == "" {
			errs = append(errs, FieldError{"registration.corrected_base", "corrected_base and corrected_tax are both required when corrective_type is S"})
		}
	case CorrectiveDifferences:
		if r.CorrectedBase != "" || r.CorrectedTax != "" {
			errs = append(errs, FieldError{"registration.corrected_base", "corrected_base and corrected_tax must be absent when corrective_type is I"})
		}
	}
	if len(r.ReplacedInvoices) > 0 && r.InvoiceType != InvoiceSustitutiva {
		errs = append(errs, FieldError{"registration.replaced_invoices", "only allowed when invoice_type is F3"})
	}

	// Step 4: cross-field rules.
	errs = append(errs, validateCorrectionRejection("registration", r.CorrectionMarker, r.PreviousRejection)...)

	// Step 5: total-amount rules.
	if totalErrs := validateRegistrationTotals(r); len(totalErrs) > 0 {
		errs = append(errs, totalErrs...)
	}

	// Step 6: chain-pair presence rule.
	errs = append(errs, validateChainPair("registration", r.Record)...)

	return errs
}

func validateRegistrationTotals(r RegistrationRecord) []FieldError {
	var errs []FieldError

	sumTax, err := sumTaxAmounts(r.Breakdown)
	if err != nil {
		return errs
	}
	declaredTax, err := decimal.NewFromString(r.TotalTaxAmount)
	if err != nil {
		return errs
	}
	if !sumTax.Equal(declaredTax) {
		errs = append(errs, FieldError{"registration.total_tax_amount", "must equal the exact sum of per-line tax amounts"})
	}
	if declaredTax.IsNegative() {
		errs = append(errs, FieldError{"registration.total_tax_amount", "must not be negative, unlike per-line amounts"})
	}

	sumBase := decimal.Zero
	for _, line := range r.Breakdown {
		base, err := decimal.NewFromString(line.Base)
		if err != nil {
			return errs
		}
		sumBase = sumBase.Add(base)
	}
	declaredTotal, err := decimal.NewFromString(r.TotalAmount)
	if err != nil {
		return errs
	}
	expectedTotal := sumBase.Add(sumTax)
	if !withinAbsoluteTolerance(expectedTotal, declaredTotal, "0.02") {
		errs = append(errs, FieldError{"registration.total_amount", "must equal the sum of bases and taxes within ±0.02"})
	}
	if declaredTotal.IsNegative() {
		errs = append(errs, FieldError{"registration.total_amount", "must not be negative, unlike per-line amounts"})
	}

	return errs
}

func withinAbsoluteTolerance(expected, actual decimal.Decimal, tolerance string) bool {
	tol, err := decimal.NewFromString(tolerance)
	if err != nil {
		return expected.Equal(actual)
	}
	diff := expected.Sub(actual).Abs()
	return diff.LessThanOrEqual(tol)
}

func fieldAt(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}
