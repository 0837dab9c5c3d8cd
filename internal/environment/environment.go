// Package environment names the deployment stage the process runs in.
package environment

import (
	"strings"

	"golang.org/x/text/cases"
)

// Name is the environment descriptor, for example "Development" or "Production".
type Name string

// Well-known environments.
const (
	Development Name = "Development"
	Staging     Name = "Staging"
	Production  Name = "Production"
)

// Variables consulted by FromEnv, in order.
var Variables = []string{"APP_ENVIRONMENT", "ENVIRONMENT"}

var known = []Name{Development, Staging, Production}

// Parse returns the environment named by s, trimmed but otherwise kept as
// given. Blank input means Production.
func Parse(s string) Name {
	s = strings.TrimSpace(s)
	if s == "" {
		return Production
	}
	return Name(s)
}

// Canonical returns the well-known spelling of n, or n itself when it is
// not a well-known environment.
func (n Name) Canonical() Name {
	for _, k := range known {
		if n.Is(string(k)) {
			return k
		}
	}
	return n
}

// FromEnv resolves the environment from the process environment using lookup,
// which is normally os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) Name {
	for _, key := range Variables {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return Parse(v)
		}
	}
	return Production
}

// Is reports whether n names the same environment as other, ignoring case.
func (n Name) Is(other string) bool {
	fold := cases.Fold()
	return fold.String(string(n)) == fold.String(strings.TrimSpace(other))
}

// IsDevelopment reports whether n is the Development environment.
func (n Name) IsDevelopment() bool { return n.Is(string(Development)) }

// IsStaging reports whether n is the Staging environment.
func (n Name) IsStaging() bool { return n.Is(string(Staging)) }

// IsProduction reports whether n is the Production environment.
func (n Name) IsProduction() bool { return n.Is(string(Production)) }

func (n Name) String() string { return string(n) }
