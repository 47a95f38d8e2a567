package x509x

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/hex"
	"encoding/pem"
	"strings"

	"github.com/pkg/errors"
)

const (
	CertificatePEMBlockType   = "CERTIFICATE"
	RsaPrivateKeyPEMBlockType = "RSA PRIVATE KEY"

	pemPrefix = "-----BEGIN "
)

var pemPrefixCertificate = []byte(pemPrefix + CertificatePEMBlockType)

var randReader = rand.Reader

// ParseCertificate parse x509 certificate PEM block or DER bytes
func ParseCertificate(certBytes []byte) (*x509.Certificate, error) {
	if bytes.HasPrefix(bytes.TrimSpace(certBytes), pemPrefixCertificate) {
		p, _ := pem.Decode(certBytes)
		if p == nil {
			return nil, errors.New("invalid PEM")
		}

		certBytes = p.Bytes
	}

	return x509.ParseCertificate(certBytes)
}

// ParseCertificateChain parse all CERTIFICATE blocks in PEM bytes
func ParseCertificateChain(pemBytes []byte) ([]*x509.Certificate, error) {
	certs := make([]*x509.Certificate, 0)
	for {
		p, rest := pem.Decode(pemBytes)
		if p == nil {
			return certs, nil
		}

		if p.Type == CertificatePEMBlockType {
			cert, err := x509.ParseCertificate(p.Bytes)
			if err != nil {
				return nil, errors.Wrap(err, "certificate parse failed")
			}
			certs = append(certs, cert)
		}
		pemBytes = rest
	}
}

// PrivateKey private key which can sign and expose its public part
type PrivateKey interface {
	crypto.PrivateKey
	crypto.Signer
}

// GenerateRSAKey generate RSA private key with modulus size bits
func GenerateRSAKey(bits int) (*rsa.PrivateKey, error) {
	if bits < 1024 {
		return nil, errors.Errorf("key size too small: %d", bits)
	}

	return rsa.GenerateKey(randReader, bits)
}

// ParsePrivateKey parse PKCS#1 RSA private key PEM
func ParsePrivateKey(keyPemBytes []byte) (PrivateKey, error) {
	p, _ := pem.Decode(keyPemBytes)
	if p == nil {
		return nil, errors.New("invalid PEM")
	}

	if p.Type != RsaPrivateKeyPEMBlockType {
		return nil, errors.Errorf("unsupported pem type: %s", p.Type)
	}

	key, err := x509.ParsePKCS1PrivateKey(p.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "fail to parse private key")
	}

	return key, nil
}

func EncodeCertificateToPEM(derBytes []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  CertificatePEMBlockType,
		Bytes: derBytes,
	})
}

// EncodePrivateKeyToPEM encode RSA private key as PKCS#1 like openssl does
func EncodePrivateKeyToPEM(privateKey *rsa.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  RsaPrivateKeyPEMBlockType,
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
}

// SubjectKeyID SHA-1 hash of subjectPublicKey bit string. RFC5280 4.2.1.2 method (1)
func SubjectKeyID(pub crypto.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, errors.Wrap(err, "fail to marshal public key")
	}

	var spki struct {
		Algorithm pkix.AlgorithmIdentifier
		PublicKey asn1.BitString
	}
	if _, err := asn1.Unmarshal(der, &spki); err != nil {
		return nil, errors.Wrap(err, "fail to parse public key")
	}

	sum := sha1.Sum(spki.PublicKey.Bytes)
	return sum[:], nil
}

// Fingerprint SHA-256 fingerprint of DER bytes as lower case hex
func Fingerprint(derBytes []byte) string {
	sum := sha256.Sum256(derBytes)
	return hex.EncodeToString(sum[:])
}

// FormatKeyID format key identifier like openssl; 2A:0F:...
func FormatKeyID(id []byte) string {
	parts := make([]string, len(id))
	for i, b := range id {
		parts[i] = strings.ToUpper(hex.EncodeToString([]byte{b}))
	}
	return strings.Join(parts, ":")
}
