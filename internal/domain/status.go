package domain

import "strings"

// StatusVariant is the closed set of display variants for free-text statuses.
type StatusVariant string

const (
	VariantOpen       StatusVariant = "open"
	VariantInProgress StatusVariant = "inprogress"
	VariantPending    StatusVariant = "pending"
	VariantBlocked    StatusVariant = "blocked"
	VariantResolved   StatusVariant = "resolved"
	VariantClosed     StatusVariant = "closed"
	VariantApproved   StatusVariant = "approved"
	VariantValidated  StatusVariant = "validated"
	VariantRejected   StatusVariant = "rejected"
	VariantUnknown    StatusVariant = "unknown"
)

var variantsByToken = map[string]StatusVariant{
	"open":        VariantOpen,
	"new":         VariantOpen,
	"todo":        VariantOpen,
	"backlog":     VariantOpen,
	"inprogress":  VariantInProgress,
	"inreview":    VariantInProgress,
	"review":      VariantInProgress,
	"pending":     VariantPending,
	"waiting":     VariantPending,
	"onhold":      VariantPending,
	"notstarted":  VariantPending,
	"blocked":     VariantBlocked,
	"resolved":    VariantResolved,
	"done":        VariantResolved,
	"closed":      VariantClosed,
	"cancelled":   VariantClosed,
	"canceled":    VariantClosed,
	"approved":    VariantApproved,
	"validated":   VariantValidated,
	"rejected":    VariantRejected,
	"declined":    VariantRejected,
	"denied":      VariantRejected,
	"notapproved": VariantRejected,
}

// VariantOf maps a free-text status onto its display variant.
func VariantOf(status string) StatusVariant {
	if v, ok := variantsByToken[statusToken(status)]; ok {
		return v
	}
	return VariantUnknown
}

// CSSClass returns the class applied to rows and pills.
func (v StatusVariant) CSSClass() string {
	return "status-" + string(v)
}

func statusToken(status string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(status) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
