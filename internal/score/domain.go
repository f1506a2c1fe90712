package score

import (
	"sort"
	"strings"

	"github.com/ppiankov/veriabyss/internal/model"
)

// NormalizeDomain upper-cases a domain label; blank labels become GENERAL
func NormalizeDomain(domain string) string {
	d := strings.ToUpper(strings.TrimSpace(domain))
	if d == "" {
		return model.DefaultDomain
	}
	return d
}

// DomainSet is a case-insensitive set of domain labels
type DomainSet map[string]struct{}

// NewDomainSet builds a set from labels in any case
func NewDomainSet(domains []string) DomainSet {
	set := make(DomainSet, len(domains))
	for _, d := range domains {
		if strings.TrimSpace(d) == "" {
			continue
		}
		set[NormalizeDomain(d)] = struct{}{}
	}
	return set
}

// Contains reports whether domain is in the set
func (s DomainSet) Contains(domain string) bool {
	_, ok := s[NormalizeDomain(domain)]
	return ok
}

// Names returns the sorted labels
func (s DomainSet) Names() []string {
	names := make([]string, 0, len(s))
	for d := range s {
		names = append(names, d)
	}
	sort.Strings(names)
	return names
}
