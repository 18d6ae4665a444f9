package validators

import (
	"net"
	"strings"
)

// DomainLookup reports whether mail for domain can be delivered somewhere.
type DomainLookup func(domain string) bool

// ResolveDomain accepts a domain with MX records, or failing that any A/AAAA record.
func ResolveDomain(domain string) bool {
	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}

// EmailDomainOK splits the address and asks lookup about its domain.
// A nil lookup disables the check.
func EmailDomainOK(email string, lookup DomainLookup) bool {
	if lookup == nil {
		return true
	}
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := strings.TrimSuffix(strings.ToLower(email[at+1:]), ".")
	if domain == "" || !strings.Contains(domain, ".") {
		return false
	}
	return lookup(domain)
}
