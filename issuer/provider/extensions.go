package provider

import (
	"crypto"
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"

	"github.com/pkg/errors"
	"github.com/whitekid/goxp/fx"

	"devcert/pkg/helper/x509x"
)

var (
	oidExtensionSubjectKeyID     = asn1.ObjectIdentifier{2, 5, 29, 14}
	oidExtensionSubjectAltName   = asn1.ObjectIdentifier{2, 5, 29, 17}
	oidExtensionBasicConstraints = asn1.ObjectIdentifier{2, 5, 29, 19}
	oidExtensionAuthorityKeyID   = asn1.ObjectIdentifier{2, 5, 29, 35}
)

// GeneralName tags
const (
	nameTypeDNS       = 2
	nameTypeDirectory = 4
)

type basicConstraints struct {
	IsCA       bool `asn1:"optional"`
	MaxPathLen int  `asn1:"optional,default:-1"`
}

// RFC 5280 4.2.1.1
type authorityKeyID struct {
	KeyID        []byte          `asn1:"optional,tag:0"`
	Issuer       []asn1.RawValue `asn1:"optional,tag:1"`
	SerialNumber *big.Int        `asn1:"optional,tag:2"`
}

// selfSignedExtensions extensions for self-signed CA certificate in order
// basicConstraints(critical, CA:TRUE), subjectKeyIdentifier, authorityKeyIdentifier(keyid, issuer), subjectAltName
func selfSignedExtensions(pub crypto.PublicKey, rawIssuer []byte, serial *big.Int, dnsNames []string) ([]pkix.Extension, error) {
	basic, err := asn1.Marshal(basicConstraints{IsCA: true, MaxPathLen: -1})
	if err != nil {
		return nil, errors.Wrap(err, "fail to encode basic constraints")
	}

	keyID, err := x509x.SubjectKeyID(pub)
	if err != nil {
		return nil, err
	}

	ski, err := asn1.Marshal(keyID)
	if err != nil {
		return nil, errors.Wrap(err, "fail to encode subject key identifier")
	}

	aki, err := asn1.Marshal(authorityKeyID{
		KeyID:        keyID,
		Issuer:       []asn1.RawValue{{Class: asn1.ClassContextSpecific, Tag: nameTypeDirectory, IsCompound: true, Bytes: rawIssuer}},
		SerialNumber: serial,
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to encode authority key identifier")
	}

	san, err := asn1.Marshal(fx.Map(dnsNames, func(name string) asn1.RawValue {
		return asn1.RawValue{Class: asn1.ClassContextSpecific, Tag: nameTypeDNS, Bytes: []byte(name)}
	}))
	if err != nil {
		return nil, errors.Wrap(err, "fail to encode subject alt name")
	}

	return []pkix.Extension{
		{Id: oidExtensionBasicConstraints, Critical: true, Value: basic},
		{Id: oidExtensionSubjectKeyID, Value: ski},
		{Id: oidExtensionAuthorityKeyID, Value: aki},
		{Id: oidExtensionSubjectAltName, Value: san},
	}, nil
}
