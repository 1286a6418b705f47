package quadrature

import (
	"fmt"
	"strings"

	"github.com/san-kum/varint/internal/dynamo"
)

type Family int

const (
	NewtonCotes Family = iota
	Romberg
	Chebyshev
	GaussLegendre
	GaussLobatto
	Fejer1
	Fejer2
	Fejer3
	Fejer4
	ClenshawCurtis
	TakahasiMori
	// Custom marks a user supplied rule. It is not accepted by Lookup.
	Custom
)

var familyNames = [...]string{
	NewtonCotes:    "NewtonCotes",
	Romberg:        "Romberg",
	Chebyshev:      "Chebyshev",
	GaussLegendre:  "GaussLegendre",
	GaussLobatto:   "GaussLobatto",
	Fejer1:         "Fejer1",
	Fejer2:         "Fejer2",
	Fejer3:         "Fejer3",
	Fejer4:         "Fejer4",
	ClenshawCurtis: "ClenshawCurtis",
	TakahasiMori:   "TakahasiMori",
	Custom:         "Custom",
}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// Families lists the built-in families in catalog order.
func Families() []Family {
	out := make([]Family, 0, int(Custom))
	for f := NewtonCotes; f < Custom; f++ {
		out = append(out, f)
	}
	return out
}

// ParseFamily matches a family tag ignoring case, dashes and underscores.
func ParseFamily(tag string) (Family, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(tag))
	for f := NewtonCotes; f < Custom; f++ {
		if strings.ToLower(familyNames[f]) == norm {
			return f, nil
		}
	}
	return 0, dynamo.Configf(tag, 0, "unknown quadrature family")
}

// Validate checks the node count constraints of f.
func (f Family) Validate(n int) error {
	if f < 0 || f >= Custom {
		return dynamo.Configf(f.String(), n, "not a built-in family")
	}
	if n < 2 {
		return dynamo.Configf(f.String(), n, "at least 2 nodes are required")
	}
	switch f {
	case Romberg:
		if m := n - 1; m&(m-1) != 0 {
			return dynamo.Configf(f.String(), n, "n-1 must be a power of two")
		}
	case TakahasiMori:
		if n < 3 || n%2 == 0 {
			return dynamo.Configf(f.String(), n, "n must be odd and at least 3")
		}
	case Chebyshev:
		if n == 8 || n > 9 {
			return dynamo.Configf(f.String(), n, "equal-weight nodes are complex for this n")
		}
	}
	return nil
}

func (f Family) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Family) UnmarshalText(b []byte) error {
	if string(b) == Custom.String() {
		*f = Custom
		return nil
	}
	v, err := ParseFamily(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
