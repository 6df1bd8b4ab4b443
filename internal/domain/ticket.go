package domain

import "strings"

// Status values that drive the approval marker. Matching is exact.
const (
	ComplianceApproved = "Approved"
	FinanceValidated   = "Validated"
)

// Ticket is the view model for one record of the tickets table.
// Dates are kept as the raw strings returned by the record store.
type Ticket struct {
	ID               string
	Key              string
	Summary          string
	Status           string
	CreatedDate      string
	UpdatedDate      string
	ResolvedDate     string
	ComplianceStatus string
	FinanceStatus    string
	CommentIDs       []string
}

// Approval returns the approval marker derived from compliance and finance status.
func (t Ticket) Approval() Approval {
	return ApprovalOf(t.ComplianceStatus, t.FinanceStatus)
}

// IsResolved reports whether the ticket carries a resolved date.
func (t Ticket) IsResolved() bool {
	return strings.TrimSpace(t.ResolvedDate) != ""
}

// HasComments reports whether the ticket links to any comment records.
func (t Ticket) HasComments() bool {
	return len(t.CommentIDs) > 0
}

// Approval enumerates the states of the middle timeline marker.
type Approval string

const (
	ApprovalNone Approval = "none"
	ApprovalHalf Approval = "half"
	ApprovalFull Approval = "full"
)

// ApprovalOf computes the marker: both approvals give full, exactly one gives half.
func ApprovalOf(compliance, finance string) Approval {
	complianceOK := compliance == ComplianceApproved
	financeOK := finance == FinanceValidated
	switch {
	case complianceOK && financeOK:
		return ApprovalFull
	case complianceOK || financeOK:
		return ApprovalHalf
	default:
		return ApprovalNone
	}
}

// CSSClass returns the marker class used by the timeline.
func (a Approval) CSSClass() string {
	switch a {
	case ApprovalFull:
		return "full-approved"
	case ApprovalHalf:
		return "half-approved"
	default:
		return ""
	}
}
