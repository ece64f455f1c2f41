package domain

import "fmt"

// Capability names an operation guarded by the role policy.
type Capability string

const (
	CapInvite                 Capability = "invite"
	CapRemoveCollaborator     Capability = "remove_collaborator"
	CapReviewSuggestion       Capability = "review_suggestion"
	CapListPendingSuggestions Capability = "list_pending_suggestions"
	CapProposeExperience      Capability = "propose_experience"
	CapEditOwnSuggestion      Capability = "edit_own_suggestion"
	CapWithdrawOwnSuggestion  Capability = "withdraw_own_suggestion"
	CapViewApproved           Capability = "view_approved"
	CapViewActivity           Capability = "view_activity"
)

// Can reports whether role grants capability.
func Can(role Role, c Capability) bool {
	switch role {
	case RoleOwner:
		switch c {
		case CapInvite, CapRemoveCollaborator, CapReviewSuggestion,
			CapListPendingSuggestions, CapProposeExperience, CapViewApproved, CapViewActivity:
			return true
		}
	case RoleContributor:
		switch c {
		case CapProposeExperience, CapEditOwnSuggestion, CapWithdrawOwnSuggestion, CapViewApproved, CapViewActivity:
			return true
		}
	}
	return false
}

// Authorize checks that member holds capability on its journey.
// A nil member means the caller is not on the journey at all.
func Authorize(member *Collaborator, c Capability) error {
	if member == nil {
		return fmt.Errorf("%w: not a collaborator of this journey", ErrForbidden)
	}
	role, ok := member.ActiveRole()
	if !ok {
		return fmt.Errorf("%w: invitation is %s", ErrForbidden, member.Status)
	}
	if !Can(role, c) {
		return fmt.Errorf("%w: %s cannot %s", ErrForbidden, role, c)
	}
	return nil
}
