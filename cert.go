package verifactu

// SPDX-License-Identifier: MIT
// Copyright (c) 2024 L. D. T. d.o.o.
// Copyright (c) contributors for their respective contributions. See https://github.com/l-d-t/verifactu/graphs/contributors

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"

	"golang.org/x/crypto/pkcs12"
)

// credential holds the mTLS client certificate used to authenticate
// against AEAT, plus the path of any temporary combined PEM staged for
// a PKCS#12 credential. The temporary file, if any, is owned
// exclusively by the credential and removed by Close.
type credential struct {
	cert    tls.Certificate
	tmpPath string
}

// NewCredentialFromPEM builds a credential from a combined PEM
// (certificate followed by an unencrypted private key).
func NewCredentialFromPEM(pemBytes []byte) (*credential, error) {
	cert, err := tls.X509KeyPair(pemBytes, pemBytes)
	if err != nil {
		return nil, &CertificateError{Message: "could not parse combined PEM", Cause: err}
	}
	return &credential{cert: cert}, nil
}

// NewCredentialFromEncryptedPEM builds a credential from a combined PEM
// whose private key block is encrypted with passphrase.
//
// Deprecated PEM encryption (RFC 1423) is what AEAT-issued certificates
// are commonly distributed with; x509.DecryptPEMBlock is used here
// deliberately even though the stdlib has marked it legacy, because the
// credential format itself — not this library — is the legacy party.
func NewCredentialFromEncryptedPEM(pemBytes []byte, passphrase string) (*credential, error) {
	certPEM, keyPEM, err := decryptCombinedPEM(pemBytes, passphrase)
	if err != nil {
		return nil, err
	}
	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, &CertificateError{Message: "could not parse decrypted PEM", Cause: err}
	}
	return &credential{cert: cert}, nil
}

// NewCredentialFromPKCS12 builds a credential from a PKCS#12 bundle,
// staging a temporary combined PEM file for the lifetime of the
// credential. Call Close to remove it.
func NewCredentialFromPKCS12(p12Bytes []byte, passphrase string) (*credential, error) {
	privateKey, leafCert, err := pkcs12.Decode(p12Bytes, passphrase)
	if err != nil {
		return nil, &CertificateError{Message: "could not decode PKCS#12 bundle", Cause: err}
	}

	keyPKCS8, err := marshalPrivateKeyPKCS8(privateKey)
	if err != nil {
		return nil, &CertificateError{Message: "could not marshal PKCS#12 private key", Cause: err}
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: leafCert.Raw})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyPKCS8})
	combined := append(append([]byte{}, certPEM...), keyPEM...)

	tmp, err := os.CreateTemp("", "verifactu-mtls-*.pem")
	if err != nil {
		return nil, &CertificateError{Message: "could not stage temporary PEM", Cause: err}
	}
	defer tmp.Close()
	if _, err := tmp.Write(combined); err != nil {
		os.Remove(tmp.Name())
		return nil, &CertificateError{Message: "could not write temporary PEM", Cause: err}
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		os.Remove(tmp.Name())
		return nil, &CertificateError{Message: "could not parse PKCS#12-derived PEM", Cause: err}
	}

	return &credential{cert: cert, tmpPath: tmp.Name()}, nil
}

// Close removes any temporary PEM staged for this credential. It is
// safe to call on a credential with no staged file.
func (c *credential) Close() error {
	if c.tmpPath == "" {
		return nil
	}
	path := c.tmpPath
	c.tmpPath = ""
	return os.Remove(path)
}

// decryptCombinedPEM walks pemBytes block by block, decrypting an
// encrypted private key block with passphrase and passing the
// certificate block through unchanged.
func decryptCombinedPEM(pemBytes []byte, passphrase string) (certPEM, keyPEM []byte, err error) {
	rest := pemBytes
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		switch {
		case block.Type == "CERTIFICATE":
			certPEM = append(certPEM, pem.EncodeToMemory(block)...)
		case x509.IsEncryptedPEMBlock(block):
			decrypted, derr := x509.DecryptPEMBlock(block, []byte(passphrase))
			if derr != nil {
				return nil, nil, &CertificateError{Message: "could not decrypt private key", Cause: derr}
			}
			keyPEM = append(keyPEM, pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: decrypted})...)
		default:
			keyPEM = append(keyPEM, pem.EncodeToMemory(block)...)
		}
	}
	if len(certPEM) == 0 || len(keyPEM) == 0 {
		return nil, nil, &CertificateError{Message: "combined PEM is missing a certificate or private key block"}
	}
	return certPEM, keyPEM, nil
}

// marshalPrivateKeyPKCS8 re-encodes the private key returned by
// pkcs12.Decode (an RSA or ECDSA key, untyped by that API) into PKCS#8
// DER, the form tls.X509KeyPair's PEM parser expects.
func marshalPrivateKeyPKCS8(key any) ([]byte, error) {
	return x509.MarshalPKCS8PrivateKey(key)
}
