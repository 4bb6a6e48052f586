// Package session carries the identity of the operator using the console.
// The profile is injected at composition time instead of being hard-coded
// in views, so tests can substitute any identity.
package session

import (
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/config"
)

// Profile identifies the logged-in operator shown in the console header and
// stamped on every sale as the cashier.
type Profile struct {
	Name string
	Role string
}

// FromConfig builds the profile from configuration, falling back to a
// development default when unset.
func FromConfig(cfg *config.Config) Profile {
	p := Profile{Name: cfg.SessionName, Role: cfg.SessionRole}
	if p.Name == "" {
		p.Name = "Dev Operator"
	}
	if p.Role == "" {
		p.Role = "Pharmacist"
	}
	return p
}
