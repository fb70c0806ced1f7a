package verifactu

import "github.com/shopspring/decimal"

// toleranceOffsets are the cent-level offsets tolerated between a
// declared tax amount and the value recomputed from base×rate/100.
var toleranceOffsets = []string{"0", "-0.01", "0.01", "-0.02", "0.02"}

// BreakdownLine is one line of a record's tax breakdown
// (DesgloseFactura/DetalleDesglose): the tax applied, the operation's
// regime and subjection, and the base/rate/amount for the line.
type BreakdownLine struct {
	Tax       TaxType
	Regime    RegimeType
	Operation OperationType
	Base      string
	Rate      string
	TaxAmount string
}

func validateBreakdownLine(path string, b BreakdownLine) []FieldError {
	var errs []FieldError

	if !b.Tax.IsValid() {
		errs = append(errs, FieldError{path + ".tax", "is not a recognized tax type"})
	}
	if !b.Regime.IsValid() {
		errs = append(errs, FieldError{path + ".regime", "is not a recognized regime code"})
	}
	if !b.Operation.IsValid() {
		errs = append(errs, FieldError{path + ".operation", "is not a recognized operation qualifier"})
	}
	if !ValidAmount(b.Base) {
		errs = append(errs, FieldError{path + ".base", "must match -?\\d{1,12}.\\d{2}"})
	}

	switch {
	case b.Operation.IsSubject():
		if !ValidRate(b.Rate) {
			errs = append(errs, FieldError{path + ".rate", "is required and must match \\d{1,3}.\\d{2} for a subject, non-exempt operation"})
		}
		if !ValidAmount(b.TaxAmount) {
			errs = append(errs, FieldError{path + ".tax_amount", "is required and must match -?\\d{1,12}.\\d{2} for a subject, non-exempt operation"})
		}
		if ValidAmount(b.Base) && ValidRate(b.Rate) && ValidAmount(b.TaxAmount) {
			if !withinTaxTolerance(b.Base, b.Rate, b.TaxAmount) {
				errs = append(errs, FieldError{path + ".tax_amount", "does not match base*rate/100 within tolerance"})
			}
		}
	case b.Operation.IsNonSubject(), b.Operation.IsExempt():
		if b.Rate != "" {
			errs = append(errs, FieldError{path + ".rate", "must be absent for a non-subject or exempt operation"})
		}
		if b.TaxAmount != "" {
			errs = append(errs, FieldError{path + ".tax_amount", "must be absent for a non-subject or exempt operation"})
		}
	}

	return errs
}

// withinTaxTolerance reports whether taxAmount matches base*rate/100
// within the tolerated cent offsets.
func withinTaxTolerance(base, rate, taxAmount string) bool {
	b, err1 := decimal.NewFromString(base)
	r, err2 := decimal.NewFromString(rate)
	t, err3 := decimal.NewFromString(taxAmount)
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	computed := b.Mul(r).Div(decimal.NewFromInt(100)).Round(2)
	for _, off := range toleranceOffsets {
		o, err := decimal.NewFromString(off)
		if err != nil {
			continue
		}
		if computed.Add(o).Equal(t) {
			return true
		}
	}
	return false
}

// sumTaxAmounts adds the tax amounts of every subject, non-exempt line.
// Lines with no tax amount (non-subject/exempt) contribute zero.
func sumTaxAmounts(lines []BreakdownLine) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range lines {
		if !l.Operation.IsSubject() {
			continue
		}
		amt, err := decimal.NewFromString(l.TaxAmount)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amt)
	}
	return total, nil
}
