package verifactu

// ComputerSystem describes the software producing the records, reported
// on every submission as SistemaInformatico (spec.md §12).
type ComputerSystem struct {
	VendorName string
	VendorID   string
	Name       string
	Version    string

	// SystemID is the IdSistemaInformatico code assigned by the vendor,
	// at most 2 characters. InstallationID is the NumeroInstalacion, a
	// separate, longer identifier for this particular deployment.
	SystemID       string
	InstallationID string

	// OnlyVerifactu reports whether the system can only ever operate
	// under VERI*FACTU (TipoUsoPosibleSoloVerifactu).
	OnlyVerifactu bool

	// MultipleVendors reports whether the system is capable of serving
	// more than one taxpayer (TipoUsoPosibleMultiOT).
	MultipleVendors bool

	// HasMultipleTaxpayers reports whether this installation currently
	// does serve more than one taxpayer, as opposed to merely being
	// capable of it (IndicadorMultiplesOT).
	HasMultipleTaxpayers bool
}

func validateComputerSystem(path string, c ComputerSystem) []FieldError {
	var errs []FieldError
	if !notBlank(c.VendorName) {
		errs = append(errs, FieldError{path + ".vendor_name", "cannot be blank"})
	}
	if !ValidNIF(c.VendorID) {
		errs = append(errs, FieldError{path + ".vendor_id", "must be exactly 9 characters"})
	}
	if !notBlank(c.Name) {
		errs = append(errs, FieldError{path + ".name", "cannot be blank"})
	} else if len(c.Name) > 30 {
		errs = append(errs, FieldError{path + ".name", "must be at most 30 characters"})
	}
	if !notBlank(c.Version) {
		errs = append(errs, FieldError{path + ".version", "cannot be blank"})
	} else if len(c.Version) > 50 {
		errs = append(errs, FieldError{path + ".version", "must be at most 50 characters"})
	}
	if !notBlank(c.SystemID) {
		errs = append(errs, FieldError{path + ".system_id", "cannot be blank"})
	} else if len(c.SystemID) > 2 {
		errs = append(errs, FieldError{path + ".system_id", "must be at most 2 characters"})
	}
	if !notBlank(c.InstallationID) {
		errs = append(errs, FieldError{path + ".installation_id", "cannot be blank"})
	} else if len(c.InstallationID) > 100 {
		errs = append(errs, FieldError{path + ".installation_id", "must be at most 100 characters"})
	}
	return errs
}
