package verifactu

import "time"

// InvoiceIdentifier identifies an invoice: the issuer's fiscal ID, the
// invoice's series+number, and its issue date. Equality is by value, with
// the issue date compared at day granularity regardless of any attached
// time-of-day or zone.
type InvoiceIdentifier struct {
	IssuerID      string
	InvoiceNumber string
	IssueDate     time.Time
}

// Equals reports whether two identifiers refer to the same invoice.
func (id InvoiceIdentifier) Equals(other InvoiceIdentifier) bool {
	y1, m1, d1 := id.IssueDate.Date()
	y2, m2, d2 := other.IssueDate.Date()
	return id.IssuerID == other.IssuerID &&
		id.InvoiceNumber == other.InvoiceNumber &&
		y1 == y2 && m1 == m2 && d1 == d2
}

func validateInvoiceIdentifier(path string, id InvoiceIdentifier) []FieldError {
	var errs []FieldError
	if !ValidNIF(id.IssuerID) {
		errs = append(errs, FieldError{path + ".issuer_id", "must be exactly 9 characters"})
	}
	if !notBlank(id.InvoiceNumber) {
		errs = append(errs, FieldError{path + ".invoice_number", "cannot be blank"})
	} else if len(id.InvoiceNumber) > 60 {
		errs = append(errs, FieldError{path + ".invoice_number", "must be at most 60 characters"})
	}
	if id.IssueDate.IsZero() {
		errs = append(errs, FieldError{path + ".issue_date", "is required"})
	}
	return errs
}

// FiscalIdentifier is a domestic (Spanish) recipient or issuer identity:
// a name and a 9-character NIF.
type FiscalIdentifier struct {
	Name string
	NIF  string
}

func validateFiscalIdentifier(path string, f FiscalIdentifier) []FieldError {
	var errs []FieldError
	if !notBlank(f.Name) {
		errs = append(errs, FieldError{path + ".name", "cannot be blank"})
	} else if len(f.Name) > 120 {
		errs = append(errs, FieldError{path + ".name", "must be at most 120 characters"})
	}
	if !ValidNIF(f.NIF) {
		errs = append(errs, FieldError{path + ".nif", "must be exactly 9 characters"})
	}
	return errs
}

// ForeignFiscalIdentifier is a non-Spanish recipient identity: a name, an
// ISO 3166-1 alpha-2 country code (never "ES"), a foreign-ID kind, and the
// ID value itself.
type ForeignFiscalIdentifier struct {
	Name    string
	Country string
	Type    ForeignIdType
	Value   string
}

func validateForeignFiscalIdentifier(path string, f ForeignFiscalIdentifier) []FieldError {
	var errs []FieldError
	if !notBlank(f.Name) {
		errs = append(errs, FieldError{path + ".name", "cannot be blank"})
	} else if len(f.Name) > 120 {
		errs = append(errs, FieldError{path + ".name", "must be at most 120 characters"})
	}
	if !ValidCountryCode(f.Country) {
		errs = append(errs, FieldError{path + ".country", "must be a 2-letter uppercase ISO 3166-1 alpha-2 code"})
	} else if f.Country == "ES" {
		errs = append(errs, FieldError{path + ".country", `cannot be "ES"; use FiscalIdentifier instead`})
	}
	if !f.Type.IsValid() {
		errs = append(errs, FieldError{path + ".type", "is not a recognized foreign ID kind"})
	}
	if !notBlank(f.Value) {
		errs = append(errs, FieldError{path + ".value", "cannot be blank"})
	} else if len(f.Value) > 20 {
		errs = append(errs, FieldError{path + ".value", "must be at most 20 characters"})
	}
	return errs
}

// Recipient is either a FiscalIdentifier or a ForeignFiscalIdentifier.
// Exactly one of the two fields is set.
type Recipient struct {
	Domestic *FiscalIdentifier
	Foreign  *ForeignFiscalIdentifier
}

func validateRecipient(path string, r Recipient) []FieldError {
	switch {
	case r.Domestic != nil && r.Foreign == nil:
		return validateFiscalIdentifier(path, *r.Domestic)
	case r.Foreign != nil && r.Domestic == nil:
		return validateForeignFiscalIdentifier(path, *r.Foreign)
	default:
		return []FieldError{{path, "must be exactly one of domestic or foreign"}}
	}
}
