package certs

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"time"
)

// Manager loads and inspects the TLS keypair for the verifier endpoint.
type Manager struct {
	certFile string
	keyFile  string
}

// NewManager creates a Manager for the given cert and key files.
func NewManager(certFile, keyFile string) *Manager {
	return &Manager{certFile: certFile, keyFile: keyFile}
}

// Load reads the keypair and parses the leaf certificate.
func (m *Manager) Load() (tls.Certificate, *x509.Certificate, error) {
	cert, err := tls.LoadX509KeyPair(m.certFile, m.keyFile)
	if err != nil {
		return tls.Certificate{}, nil, err
	}
	if len(cert.Certificate) == 0 {
		return tls.Certificate{}, nil, errors.New("keypair contains no certificate")
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return tls.Certificate{}, nil, err
	}
	return cert, leaf, nil
}

// IsExpired checks if a certificate is expired.
func IsExpired(cert *x509.Certificate, now time.Time) bool {
	return cert.NotAfter.Before(now)
}

// ExpiresWithin reports whether the certificate expires inside the window.
func ExpiresWithin(cert *x509.Certificate, now time.Time, window time.Duration) bool {
	return cert.NotAfter.Before(now.Add(window))
}
