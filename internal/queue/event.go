// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// InviteQueueName is the durable queue invitation events are published to.
const InviteQueueName = "invite.created"

// InviteCreatedEvent is published after an invitation row is committed. It
// carries enough for a downstream mailer or analytics consumer to act
// without querying the primary database. The token itself is included
// because the invite link cannot be built without it.
type InviteCreatedEvent struct {
	InvitationID uint64 `json:"invitation_id"`
	TeamID       uint64 `json:"team_id"`
	TeamName     string `json:"team_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Token        string `json:"token"`
	InvitedBy    uint64 `json:"invited_by"`
	InviterName  string `json:"inviter_name"`
	ExpiresAt    string `json:"expires_at"`
	CreatedAt    string `json:"created_at"`
}
