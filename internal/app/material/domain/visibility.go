package domain

// CanView reports whether caller may see a material with the given owner
// and status. Approved materials are public; anything else is visible only
// to its owner and to administrators.
func CanView(caller Caller, ownerID string, status ModerationStatus) bool {
	if status.IsPublic() {
		return true
	}
	return caller.IsAdmin() || caller.Owns(ownerID)
}

// MaySeeRejectReason reports whether caller may read the moderation note.
func MaySeeRejectReason(caller Caller, ownerID string) bool {
	return caller.IsAdmin() || caller.Owns(ownerID)
}

// MayChooseStatus reports whether a caller-supplied status filter is honored.
// ownerScope is true when the listing is restricted to the caller's own
// materials.
func MayChooseStatus(caller Caller, ownerScope bool) bool {
	if caller.IsAdmin() {
		return true
	}
	return ownerScope && caller.IsAuthenticated()
}

// MayDelete reports whether caller may remove a material.
func MayDelete(caller Caller, ownerID string) bool {
	return caller.IsAdmin() || caller.Owns(ownerID)
}
