package verifactu

import (
	"errors"
	"fmt"
)

// FieldError is a single invariant violation located at a field path, in
// the same (path, message) shape the validator returns them.
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// InvalidModelError reports that a record or value type violated one or
// more invariants. It is raised locally during construction and never
// surfaces to the wire.
type InvalidModelError struct {
	Errors []FieldError
}

func (e *InvalidModelError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("invalid model: %s", e.Errors[0])
	}
	msg := fmt.Sprintf("invalid model: %d errors", len(e.Errors))
	for _, fe := range e.Errors {
		msg += "\n  - " + fe.String()
	}
	return msg
}

// AsInvalidModelError reports whether err is (or wraps) an
// *InvalidModelError.
func AsInvalidModelError(err error) (*InvalidModelError, bool) {
	var target *InvalidModelError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// ParseError reports that a response payload could not be decoded:
// malformed XML, a missing required element, or an unparseable date.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// AsParseError reports whether err is (or wraps) a *ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var target *ParseError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AeatServerError reports that the server returned a SOAP fault, or a
// payload lacking the expected root element.
type AeatServerError struct {
	FaultString string
}

func (e *AeatServerError) Error() string {
	if e.FaultString != "" {
		return fmt.Sprintf("aeat server error: %s", e.FaultString)
	}
	return "aeat server error: response missing expected root element"
}

// AsAeatServerError reports whether err is (or wraps) an
// *AeatServerError.
func AsAeatServerError(err error) (*AeatServerError, bool) {
	var target *AeatServerError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// TransportError reports an HTTP, TLS, or timeout failure during an RPC.
type TransportError struct {
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// AsTransportError reports whether err is (or wraps) a *TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var target *TransportError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// CertificateError reports that the supplied credential could not be
// read, decrypted, or converted.
type CertificateError struct {
	Message string
	Cause   error
}

func (e *CertificateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("certificate error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("certificate error: %s", e.Message)
}

func (e *CertificateError) Unwrap() error { return e.Cause }

// AsCertificateError reports whether err is (or wraps) a
// *CertificateError.
func AsCertificateError(err error) (*CertificateError, bool) {
	var target *CertificateError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
