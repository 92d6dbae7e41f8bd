package domain

// Role is the role a user holds inside a group.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	}
	return false
}

// JoinRequestStatus is the lifecycle state of a JoinRequest. APPROVED and
// REJECTED are terminal; cancellation deletes the row while PENDING.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "PENDING"
	JoinRequestApproved JoinRequestStatus = "APPROVED"
	JoinRequestRejected JoinRequestStatus = "REJECTED"
)

// Terminal reports whether no further transition is possible from s.
func (s JoinRequestStatus) Terminal() bool {
	return s == JoinRequestApproved || s == JoinRequestRejected
}

// MadeBy identifies which side opened a JoinRequest.
//   - MadeByUser:  the user asked to join the group.
//   - MadeByGroup: a group manager invited the user.
type MadeBy string

const (
	MadeByUser  MadeBy = "USER"
	MadeByGroup MadeBy = "GROUP"
)

// Valid reports whether m is a known origin.
func (m MadeBy) Valid() bool {
	switch m {
	case MadeByUser, MadeByGroup:
		return true
	}
	return false
}
