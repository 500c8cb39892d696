package domain

// Authority is a role granted to an authenticated principal.
type Authority string

// RoleUser is the single authority every authenticated API caller holds.
const RoleUser Authority = "ROLE_USER"

// Principal is an authenticated API caller. Name doubles as the login
// identifier (an email address). SecretKey is the shared secret used for
// signing or password validation; it is stored plaintext when the HMAC
// strategy must recompute signatures and bcrypt-hashed otherwise. It must
// never be logged.
type Principal struct {
	Name        string
	SecretKey   string
	Active      bool
	Authorities []Authority
}

// HasAuthority reports whether the principal holds the given role.
func (p *Principal) HasAuthority(a Authority) bool {
	for _, have := range p.Authorities {
		if have == a {
			return true
		}
	}
	return false
}

// NewPrincipal returns an active principal with the fixed user role.
func NewPrincipal(name, secretKey string) *Principal {
	return &Principal{
		Name:        name,
		SecretKey:   secretKey,
		Active:      true,
		Authorities: []Authority{RoleUser},
	}
}
