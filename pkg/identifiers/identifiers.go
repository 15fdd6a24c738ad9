// Package identifiers canonicalizes the URIs used as strong identity keys.
// A raw identifier string is parsed into one of a fixed set of families
// (DOI, ORCID, e-mail, ISSN, arXiv, URN/OAI, plain URL) and rendered in that
// family's single canonical form, so that every spelling of the same
// identifier compares equal. Parsing is idempotent: canonical output parses
// back to itself.
package identifiers

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/mattclark/SHARE/pkg/errors"
)

// IRI is the canonical form of an identifier. Authority is the resolved
// naming authority: the lowercased host for URLs, the registry segment for
// URNs (e.g. "issn"), the mail domain for e-mail addresses. Host and scheme
// are always derived from URI, never carried over from input.
type IRI struct {
	URI       string
	Authority string
	Scheme    string
}

var (
	orcidRe      = regexp.MustCompile(`\b(\d{4})-?(\d{4})-?(\d{4})-?(\d{3}[\dXx])\b`)
	issnRe       = regexp.MustCompile(`^(\d{4})-(\d{3}[\dXx])$`)
	doiRe        = regexp.MustCompile(`^10\.\d{4,9}(?:\.\d+)*/\S+$`)
	arxivNewRe   = regexp.MustCompile(`^\d{4}\.\d{4,5}(?:v\d+)?$`)
	arxivOldRe   = regexp.MustCompile(`^[a-zA-Z-]+(?:\.[A-Z]{2})?/\d{7}(?:v\d+)?$`)
	emailRe      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	urnRe        = regexp.MustCompile(`^(?i)(urn|oai):([A-Za-z0-9][A-Za-z0-9.-]*):(\S+)$`)
	urnIRIRe     = regexp.MustCompile(`^(?i)(urn|oai)://([^/\s]+)/(\S+)$`)
	bareDomainRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)+(:\d+)?(/\S*)?$`)
)

var doiPrefixes = []string{
	"doi:", "info:doi/",
	"http://dx.doi.org/", "https://dx.doi.org/", "dx.doi.org/",
	"http://doi.org/", "https://doi.org/", "doi.org/",
}

var arxivPrefixes = []string{
	"arxiv:", "http://arxiv.org/abs/", "https://arxiv.org/abs/", "arxiv.org/abs/",
}

// Parse canonicalizes a raw identifier string. Families are tried from most
// to least specific; the first recognized family decides the canonical form.
// Unrecognizable input fails with an error matching errors.ErrUnparseable.
func Parse(raw string) (IRI, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return IRI{}, unparseable(raw, "empty identifier")
	}

	if iri, ok, err := parseEmail(s); ok || err != nil {
		return iri, err
	}
	if iri, ok, err := parseORCID(s); ok || err != nil {
		return iri, err
	}
	if iri, ok, err := parseISSN(s); ok || err != nil {
		return iri, err
	}
	if iri, ok := parseDOI(s); ok {
		return iri, nil
	}
	if iri, ok := parseArXiv(s); ok {
		return iri, nil
	}
	if iri, ok := parseURN(s); ok {
		return iri, nil
	}
	if strings.Contains(s, "://") {
		return parseURL(raw, s)
	}
	if bareDomainRe.MatchString(s) && !strings.Contains(s, "@") {
		return parseURL(raw, "http://"+s)
	}
	return IRI{}, unparseable(raw, "no recognized identifier family")
}

// Derive recomputes authority and scheme from a stored canonical URI. The
// persisted host and scheme columns always come from here, never from input,
// so they cannot drift from the URI they describe.
func Derive(uri string) (authority, scheme string, err error) {
	iri, err := Parse(uri)
	if err != nil {
		return "", "", err
	}
	return iri.Authority, iri.Scheme, nil
}

func parseEmail(s string) (IRI, bool, error) {
	addr := s
	if len(s) >= 7 && strings.EqualFold(s[:7], "mailto:") {
		addr = s[7:]
	} else if !strings.Contains(s, "@") {
		return IRI{}, false, nil
	}
	if !emailRe.MatchString(addr) {
		if addr != s {
			return IRI{}, false, unparseable(s, "malformed e-mail address")
		}
		return IRI{}, false, nil
	}
	addr = strings.ToLower(addr)
	domain := addr[strings.LastIndex(addr, "@")+1:]
	return IRI{URI: "mailto:" + addr, Authority: domain, Scheme: "mailto"}, true, nil
}

// parseORCID recognizes a 16-digit ORCID anywhere in the input, with or
// without an orcid.org or orcid: prefix. Undashed digit runs are claimed
// only in explicit orcid context, so arbitrary 16-digit numbers in URLs are
// left alone. A recognized pattern with a bad ISO 7064 11-2 check digit is
// an error, not a fall-through.
func parseORCID(s string) (IRI, bool, error) {
	m := orcidRe.FindStringSubmatch(s)
	if m == nil {
		return IRI{}, false, nil
	}
	if !strings.Contains(m[0], "-") && !strings.Contains(strings.ToLower(s), "orcid") {
		return IRI{}, false, nil
	}
	digits := m[1] + m[2] + m[3] + strings.ToUpper(m[4])
	if !orcidChecksumOK(digits) {
		return IRI{}, false, unparseable(s, "invalid ORCID check digit")
	}
	canonical := fmt.Sprintf("%s-%s-%s-%s", digits[0:4], digits[4:8], digits[8:12], digits[12:16])
	return IRI{
		URI:       "http://orcid.org/" + canonical,
		Authority: "orcid.org",
		Scheme:    "http",
	}, true, nil
}

// orcidChecksumOK validates the final character per ISO 7064 mod 11-2.
func orcidChecksumOK(digits string) bool {
	total := 0
	for _, r := range digits[:15] {
		total = (total + int(r-'0')) * 2
	}
	check := (12 - total%11) % 11
	want := byte('0' + check)
	if check == 10 {
		want = 'X'
	}
	return digits[15] == want
}

// parseISSN recognizes a standalone NNNN-NNNC token, an issn: prefix, or the
// canonical urn://issn/ form. Unlike ORCIDs, an ISSN-shaped token inside a
// larger URL is not claimed.
func parseISSN(s string) (IRI, bool, error) {
	candidate := s
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "urn://issn/"):
		candidate = s[len("urn://issn/"):]
	case strings.HasPrefix(lower, "urn:issn:"):
		candidate = s[len("urn:issn:"):]
	case strings.HasPrefix(lower, "issn:"):
		candidate = strings.TrimSpace(s[len("issn:"):])
	case strings.HasPrefix(lower, "issn "):
		candidate = strings.TrimSpace(s[len("issn "):])
	}
	m := issnRe.FindStringSubmatch(candidate)
	if m == nil {
		if candidate != s {
			return IRI{}, false, unparseable(s, "malformed ISSN")
		}
		return IRI{}, false, nil
	}
	digits := m[1] + strings.ToUpper(m[2])
	if !issnChecksumOK(digits) {
		return IRI{}, false, unparseable(s, "invalid ISSN check digit")
	}
	return IRI{
		URI:       fmt.Sprintf("urn://issn/%s-%s", digits[0:4], digits[4:8]),
		Authority: "issn",
		Scheme:    "urn",
	}, true, nil
}

// issnChecksumOK validates the final character, weights 8 down to 2 mod 11.
func issnChecksumOK(digits string) bool {
	sum := 0
	for i := 0; i < 7; i++ {
		sum += int(digits[i]-'0') * (8 - i)
	}
	check := (11 - sum%11) % 11
	want := byte('0' + check)
	if check == 10 {
		want = 'X'
	}
	return digits[7] == want
}

func parseDOI(s string) (IRI, bool) {
	candidate := s
	lower := strings.ToLower(s)
	for _, p := range doiPrefixes {
		if strings.HasPrefix(lower, p) {
			candidate = s[len(p):]
			break
		}
	}
	if !doiRe.MatchString(candidate) {
		return IRI{}, false
	}
	return IRI{
		URI:       "http://dx.doi.org/" + strings.ToUpper(candidate),
		Authority: "dx.doi.org",
		Scheme:    "http",
	}, true
}

func parseArXiv(s string) (IRI, bool) {
	candidate := ""
	lower := strings.ToLower(s)
	for _, p := range arxivPrefixes {
		if strings.HasPrefix(lower, p) {
			candidate = s[len(p):]
			break
		}
	}
	if candidate == "" {
		return IRI{}, false
	}
	if !arxivNewRe.MatchString(candidate) && !arxivOldRe.MatchString(candidate) {
		return IRI{}, false
	}
	return IRI{
		URI:       "http://arxiv.org/abs/" + candidate,
		Authority: "arxiv.org",
		Scheme:    "http",
	}, true
}

func parseURN(s string) (IRI, bool) {
	m := urnIRIRe.FindStringSubmatch(s)
	if m == nil {
		m = urnRe.FindStringSubmatch(s)
	}
	if m == nil {
		return IRI{}, false
	}
	scheme := strings.ToLower(m[1])
	authority := strings.ToLower(m[2])
	return IRI{
		URI:       fmt.Sprintf("%s://%s/%s", scheme, authority, m[3]),
		Authority: authority,
		Scheme:    scheme,
	}, true
}

// parseURL normalizes a generic http(s)/ftp URL: scheme and host lowercased,
// default port, fragment, userinfo, and trailing slash stripped, path case
// and query preserved.
func parseURL(raw, s string) (IRI, error) {
	u, err := url.Parse(s)
	if err != nil {
		return IRI{}, unparseable(raw, "unparseable URL")
	}
	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "http", "https", "ftp":
	default:
		return IRI{}, unparseable(raw, fmt.Sprintf("unsupported scheme %q", u.Scheme))
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return IRI{}, unparseable(raw, "URL has no host")
	}
	if port := u.Port(); port != "" && !isDefaultPort(scheme, port) {
		host += ":" + port
	}

	path := strings.TrimRight(u.EscapedPath(), "/")
	uri := scheme + "://" + host + path
	if u.RawQuery != "" {
		uri += "?" + u.RawQuery
	}
	return IRI{URI: uri, Authority: strings.ToLower(u.Hostname()), Scheme: scheme}, nil
}

func isDefaultPort(scheme, port string) bool {
	switch scheme {
	case "http":
		return port == "80"
	case "https":
		return port == "443"
	case "ftp":
		return port == "21"
	}
	return false
}

func unparseable(raw, msg string) error {
	return &errors.IdentifierError{URI: raw, Err: errors.New(msg)}
}
