package access

import "acc-portal/internal/domain/users"

// Policy is what the console and /auth/me expose about a signed-in user.
type Policy struct {
	Role         users.Role   `json:"role"`
	Capabilities []Capability `json:"capabilities"`
}

func ComputePolicy(role users.Role) Policy {
	return Policy{
		Role:         role,
		Capabilities: CapabilitiesFor(role),
	}
}
