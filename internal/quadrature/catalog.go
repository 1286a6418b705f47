package quadrature

import "github.com/san-kum/varint/internal/dynamo"

// Lookup returns the n-node rule of family f on [-1, 1].
func Lookup(f Family, n int) (*Rule, error) {
	if err := f.Validate(n); err != nil {
		return nil, err
	}
	switch f {
	case NewtonCotes:
		return newtonCotes(n)
	case Romberg:
		return romberg(n), nil
	case Chebyshev:
		return chebyshev(n)
	case GaussLegendre:
		return gaussLegendre(n), nil
	case GaussLobatto:
		return gaussLobatto(n)
	case Fejer1:
		return fejer1(n), nil
	case Fejer2:
		return fejer2(n), nil
	case Fejer3:
		return fejer3(n)
	case Fejer4:
		return fejer4(n)
	case ClenshawCurtis:
		return clenshawCurtis(n), nil
	case TakahasiMori:
		return takahasiMori(n), nil
	}
	return nil, dynamo.Configf(f.String(), n, "no catalog entry")
}
