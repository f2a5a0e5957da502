package model

// RolePrefix marks role authorities, distinguishing them from other
// authority strings granted to a principal.
const RolePrefix = "ROLE_"

const (
	RoleOwner = RolePrefix + "OWNER"
	RoleGuest = RolePrefix + "GUEST"
)
