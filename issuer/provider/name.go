package provider

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/whitekid/goxp/fx"
)

var ErrInvalidName = errors.New("invalid name")

// characters which breaks DN string form or file names
const invalidNameChars = `/\,=+"<>;#`

var (
	oidCountry      = asn1.ObjectIdentifier{2, 5, 4, 6}
	oidLocality     = asn1.ObjectIdentifier{2, 5, 4, 7}
	oidOrganization = asn1.ObjectIdentifier{2, 5, 4, 10}
	oidCommonName   = asn1.ObjectIdentifier{2, 5, 4, 3}
)

// ValidateName check base name; all problems are reported together
func ValidateName(name string) error {
	if name == "" {
		return errors.Wrap(ErrInvalidName, "name required")
	}

	var result *multierror.Error
	if strings.HasPrefix(name, "*.") {
		result = multierror.Append(result, errors.New("wildcard is added automatically"))
	}

	if strings.ContainsAny(name, invalidNameChars) {
		result = multierror.Append(result, errors.Errorf("must not contain any of %s", invalidNameChars))
	}

	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		result = multierror.Append(result, errors.New("must not contain white space"))
	}

	if strings.IndexFunc(name, func(r rune) bool { return r > unicode.MaxASCII }) >= 0 {
		result = multierror.Append(result, errors.New("must be ascii"))
	}

	// fully qualified form would end up in SAN and file names
	if strings.HasSuffix(name, ".") {
		result = multierror.Append(result, errors.New("must not end with dot"))
	}

	if _, ok := dns.IsDomainName(name); !ok || strings.Trim(name, ".") == "" {
		result = multierror.Append(result, errors.New("not a domain name"))
	}

	if result == nil {
		return nil
	}

	result.ErrorFormat = func(errs []error) string {
		return strings.Join(fx.Map(errs, func(e error) string { return e.Error() }), "; ")
	}

	return errors.Wrapf(ErrInvalidName, "%q: %s", name, result)
}

// RawSubject DER encoded subject in C, L, O, CN order
// country is PrintableString and others are UTF8String like openssl does
func (req *IssueRequest) RawSubject() ([]byte, error) {
	rdn := pkix.RDNSequence{}

	for _, attr := range []struct {
		oid   asn1.ObjectIdentifier
		tag   int
		value string
	}{
		{oidCountry, asn1.TagPrintableString, req.Country},
		{oidLocality, asn1.TagUTF8String, req.Locality},
		{oidOrganization, asn1.TagUTF8String, req.Organization},
		{oidCommonName, asn1.TagUTF8String, req.CommonName()},
	} {
		if attr.value == "" {
			continue
		}

		rdn = append(rdn, pkix.RelativeDistinguishedNameSET{{
			Type:  attr.oid,
			Value: asn1.RawValue{Tag: attr.tag, Bytes: []byte(attr.value)},
		}})
	}

	return asn1.Marshal(rdn)
}

// SubjectString openssl style subject; /C=DE/L=Munich/O=GrpcDemo/CN=*.example.com
func (req *IssueRequest) SubjectString() string {
	r := req.withDefaults()
	return fmt.Sprintf("/C=%s/L=%s/O=%s/CN=%s", r.Country, r.Locality, r.Organization, r.CommonName())
}
