package domain

// NotificationCounts is the advisory badge aggregate for one user.
type NotificationCounts struct {
	PendingInvitations int
	PendingSuggestions int
	RecentApprovals    int
	RecentRejections   int
	Total              int
}

// Normalize returns a copy whose Total is the sum of the other counters.
func (c NotificationCounts) Normalize() NotificationCounts {
	c.Total = c.PendingInvitations + c.PendingSuggestions + c.RecentApprovals + c.RecentRejections
	return c
}

// NotificationDetails lists the items behind the counts.
type NotificationDetails struct {
	// Suggestions awaiting the caller's review, oldest first.
	PendingSuggestions []Experience
	// The caller's own suggestions reviewed recently, newest first.
	RecentResponses []Experience
}
