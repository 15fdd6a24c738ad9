package identifiers

import (
	"github.com/mattclark/SHARE/pkg/constants"
	"github.com/mattclark/SHARE/pkg/errors"
)

// Policy decides which well-formed identifiers are acceptable for works.
// Identifier-registry authorities (an ISSN names a journal, an ORCID names a
// person) and person-addressing schemes never identify a creative work, so
// work identifiers resolving to them are rejected. The zero Policy allows
// everything.
type Policy struct {
	disallowedAuthorities map[string]struct{}
	disallowedSchemes     map[string]struct{}
}

// NewPolicy builds a policy from explicit disallow lists.
func NewPolicy(authorities, schemes []string) Policy {
	p := Policy{
		disallowedAuthorities: make(map[string]struct{}, len(authorities)),
		disallowedSchemes:     make(map[string]struct{}, len(schemes)),
	}
	for _, a := range authorities {
		p.disallowedAuthorities[a] = struct{}{}
	}
	for _, s := range schemes {
		p.disallowedSchemes[s] = struct{}{}
	}
	return p
}

// DefaultPolicy returns the standard work-identifier policy: authorities
// issn and orcid.org, scheme mailto.
func DefaultPolicy() Policy {
	return NewPolicy(constants.DisallowedAuthorities, constants.DisallowedSchemes)
}

// Check returns an error matching errors.ErrDisallowed when the identifier's
// authority or scheme is disallowed, nil otherwise.
func (p Policy) Check(iri IRI) error {
	_, badAuthority := p.disallowedAuthorities[iri.Authority]
	_, badScheme := p.disallowedSchemes[iri.Scheme]
	if badAuthority || badScheme {
		return &errors.IdentifierError{
			URI:        iri.URI,
			Authority:  iri.Authority,
			Scheme:     iri.Scheme,
			Disallowed: true,
		}
	}
	return nil
}
