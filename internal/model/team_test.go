package model

import (
	"testing"
	"time"
)

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleOwner, RoleAdmin, RoleMember} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false", r)
		}
	}
	for _, r := range []string{"", "OWNER", "superuser"} {
		if ValidRole(r) {
			t.Errorf("ValidRole(%q) = true", r)
		}
	}
}

func TestValidTier(t *testing.T) {
	if !ValidTier(TierFree) || !ValidTier(TierPaid) {
		t.Fatal("known tiers rejected")
	}
	if ValidTier("premium") || ValidTier("") {
		t.Fatal("unknown tier accepted")
	}
}

func TestInvitationWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := TeamInvitation{ExpiresAt: now.Add(7 * 24 * time.Hour)}

	if inv.Expired(now) {
		t.Fatal("fresh invitation reported expired")
	}
	if !inv.Pending(now) {
		t.Fatal("fresh invitation not pending")
	}

	after := inv.ExpiresAt.Add(time.Second)
	if !inv.Expired(after) {
		t.Fatal("past-window invitation not expired")
	}
	if inv.Pending(after) {
		t.Fatal("past-window invitation still pending")
	}

	inv.IsAccepted = true
	if inv.Pending(now) {
		t.Fatal("accepted invitation still pending")
	}
}

func TestInvitationExpiryBoundary(t *testing.T) {
	at := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC)
	inv := TeamInvitation{ExpiresAt: at}
	// Exactly at the deadline the invitation is still usable.
	if inv.Expired(at) {
		t.Fatal("invitation expired exactly at its deadline")
	}
}
