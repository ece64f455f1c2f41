package domain

// Role is the closed set of roles a collaborator may hold on a journey.
type Role string

const (
	RoleOwner       Role = "OWNER"
	RoleContributor Role = "CONTRIBUTOR"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleContributor:
		return true
	}
	return false
}

// CollaboratorStatus is the invitation state of a collaborator row.
type CollaboratorStatus string

const (
	CollaboratorStatusPending  CollaboratorStatus = "PENDING"
	CollaboratorStatusAccepted CollaboratorStatus = "ACCEPTED"
	CollaboratorStatusDeclined CollaboratorStatus = "DECLINED"
)

func (s CollaboratorStatus) String() string { return string(s) }

func (s CollaboratorStatus) IsValid() bool {
	switch s {
	case CollaboratorStatusPending, CollaboratorStatusAccepted, CollaboratorStatusDeclined:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s CollaboratorStatus) IsTerminal() bool {
	return s == CollaboratorStatusAccepted || s == CollaboratorStatusDeclined
}

// ApprovalStatus is the review state of an experience.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

func (s ApprovalStatus) String() string { return string(s) }

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// InvitationDecision is the invitee's answer to an invitation.
type InvitationDecision string

const (
	DecisionAccept  InvitationDecision = "ACCEPT"
	DecisionDecline InvitationDecision = "DECLINE"
)

func (d InvitationDecision) String() string { return string(d) }

func (d InvitationDecision) IsValid() bool {
	return d == DecisionAccept || d == DecisionDecline
}

// Status returns the collaborator status the decision leads to.
func (d InvitationDecision) Status() CollaboratorStatus {
	if d == DecisionAccept {
		return CollaboratorStatusAccepted
	}
	return CollaboratorStatusDeclined
}

// ReviewAction is the owner's verdict on a pending suggestion.
type ReviewAction string

const (
	ReviewApprove ReviewAction = "APPROVE"
	ReviewReject  ReviewAction = "REJECT"
)

func (a ReviewAction) String() string { return string(a) }

func (a ReviewAction) IsValid() bool {
	return a == ReviewApprove || a == ReviewReject
}

// Status returns the approval status the action leads to.
func (a ReviewAction) Status() ApprovalStatus {
	if a == ReviewApprove {
		return ApprovalStatusApproved
	}
	return ApprovalStatusRejected
}
