package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailDomainOK(t *testing.T) {
	var asked []string
	lookup := func(domain string) bool {
		asked = append(asked, domain)
		return domain == "daycare.test"
	}

	tests := []struct {
		email string
		want  bool
	}{
		{"ana@daycare.test", true},
		{"ana@DayCare.Test.", true},
		{"ana@elsewhere.test", false},
		{"ana@", false},
		{"ana", false},
		{"ana@localhost", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, EmailDomainOK(tt.email, lookup))
		})
	}
	assert.Equal(t, []string{"daycare.test", "daycare.test", "elsewhere.test"}, asked)
}

func TestEmailDomainOKWithoutLookup(t *testing.T) {
	assert.True(t, EmailDomainOK("anything", nil))
}
