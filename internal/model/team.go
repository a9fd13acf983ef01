package model

import "time"

// Subscription tiers. Invitations are gated on the paid tier.
const (
	TierFree = "free"
	TierPaid = "paid"
)

// Team lifecycle states. Archiving replaces hard deletion so membership and
// equipment history stay referenceable.
const (
	TeamActive   = "active"
	TeamArchived = "archived"
)

// Membership roles, in decreasing order of privilege.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ValidRole reports whether s is a known membership role.
func ValidRole(s string) bool {
	return s == RoleOwner || s == RoleAdmin || s == RoleMember
}

// ValidTier reports whether s is a known subscription tier.
func ValidTier(s string) bool {
	return s == TierFree || s == TierPaid
}

// Team mirrors the `teams` table.
type Team struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	SubscriptionTier string    `json:"subscription_tier"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TeamMembership mirrors the `team_memberships` table. The (team, user) pair
// is unique; every active team keeps at least one owner row.
type TeamMembership struct {
	ID       uint64    `json:"id"`
	TeamID   uint64    `json:"team_id"`
	UserID   uint64    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// TeamInvitation mirrors the `team_invitations` table. An invitation is
// pending until it is accepted (terminal), expires (implicit, by timestamp)
// or is cancelled (row deleted).
type TeamInvitation struct {
	ID         uint64     `json:"id"`
	TeamID     uint64     `json:"team_id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Token      string     `json:"token"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	IsAccepted bool       `json:"is_accepted"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	InvitedBy  uint64     `json:"invited_by"`
}

// Expired reports whether the invitation's validity window has passed.
func (i *TeamInvitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Pending reports whether the invitation can still be accepted.
func (i *TeamInvitation) Pending(now time.Time) bool {
	return !i.IsAccepted && !i.Expired(now)
}
