package verifactu

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

const (
	canonicalDateLayout      = "02-01-2006"
	canonicalTimestampLayout = "2006-01-02T15:04:05-07:00"
)

// canonicalDate formats t as DD-MM-YYYY, per spec.md §4.2.
func canonicalDate(t time.Time) string {
	return t.Format(canonicalDateLayout)
}

// canonicalTimestamp formats t as YYYY-MM-DDTHH:MM:SS±HH:MM with second
// precision. Go's time.Time always carries a location; when that
// location is time.Local (the caller attached no explicit zone), Format
// already resolves the wall-clock offset in effect at that instant,
// DST included — the same outcome spec.md §4.2 calls for when "the
// input timestamp lacks a zone". Callers who want a deterministic
// fingerprint across hosts should attach an explicit fixed-offset
// location to GeneratedAt before sealing.
func canonicalTimestamp(t time.Time) string {
	return t.Format(canonicalTimestampLayout)
}

// seal computes the SHA-256 fingerprint of payload and returns it as
// 64 uppercase hexadecimal characters.
func seal(payload string) string {
	sum := sha256.Sum256([]byte(payload))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// registrationPayload builds the canonical, unescaped fingerprint
// payload for a registration record. Field order is fixed by spec.md
// §4.2; the issuer-name, recipient set, and breakdown never
// participate.
func registrationPayload(r RegistrationRecord) string {
	var b strings.Builder
	b.WriteString("IDEmisorFactura=")
	b.WriteString(r.Invoice.IssuerID)
	b.WriteString("&NumSerieFactura=")
	b.WriteString(r.Invoice.InvoiceNumber)
	b.WriteString("&FechaExpedicionFactura=")
	b.WriteString(canonicalDate(r.Invoice.IssueDate))
	b.WriteString("&TipoFactura=")
	b.WriteString(string(r.InvoiceType))
	b.WriteString("&CuotaTotal=")
	b.WriteString(r.TotalTaxAmount)
	b.WriteString("&ImporteTotal=")
	b.WriteString(r.TotalAmount)
	b.WriteString("&Huella=")
	b.WriteString(r.PreviousFingerprint)
	b.WriteString("&FechaHoraHusoGenRegistro=")
	b.WriteString(canonicalTimestamp(r.GeneratedAt))
	return b.String()
}

// cancellationPayload builds the canonical, unescaped fingerprint
// payload for a cancellation record.
func cancellationPayload(r CancellationRecord) string {
	var b strings.Builder
	b.WriteString("IDEmisorFacturaAnulada=")
	b.WriteString(r.Invoice.IssuerID)
	b.WriteString("&NumSerieFacturaAnulada=")
	b.WriteString(r.Invoice.InvoiceNumber)
	b.WriteString("&FechaExpedicionFacturaAnulada=")
	b.WriteString(canonicalDate(r.Invoice.IssueDate))
	b.WriteString("&Huella=")
	b.WriteString(r.PreviousFingerprint)
	b.WriteString("&FechaHoraHusoGenRegistro=")
	b.WriteString(canonicalTimestamp(r.GeneratedAt))
	return b.String()
}

// SealRegistration validates r, computes its fingerprint, and returns
// an immutable sealed copy with Fingerprint populated.
func SealRegistration(r RegistrationRecord) (*RegistrationRecord, error) {
	sealed, err := NewRegistrationRecord(r)
	if err != nil {
		return nil, err
	}
	sealed.Fingerprint = seal(registrationPayload(*sealed))
	return sealed, nil
}

// SealCancellation validates r, computes its fingerprint, and returns
// an immutable sealed copy with Fingerprint populated.
func SealCancellation(r CancellationRecord) (*CancellationRecord, error) {
	sealed, err := NewCancellationRecord(r)
	if err != nil {
		return nil, err
	}
	sealed.Fingerprint = seal(cancellationPayload(*sealed))
	return sealed, nil
}
