package types

import (
	"time"

	"devcert/client/common"
)

// Files where the certificate and key were written
type Files struct {
	CertFile string
	KeyFile  string
}

// Certificate issued certificate
type Certificate struct {
	ID                 string
	Name               string // base name
	CommonName         string
	DNSNames           []string
	Serial             string
	Fingerprint        string // SHA-256 of DER
	SignatureAlgorithm string
	NotBefore          time.Time
	NotAfter           time.Time
	Status             common.Status
	Cert               []byte // Certificate as PEM
	Key                []byte // Private key as PEM
	CertFile           string
	KeyFile            string
	Created            time.Time
}
