package resource

import "github.com/edubridge/admingate/internal/domain"

// Leads describes the leads collection. Older backend records carry the
// lead's name under "customerName"; the canonical "name" wins when both are
// present.
var Leads = Descriptor[domain.Lead]{
	Name:         "lead",
	Plural:       "leads",
	Path:         "leads",
	PageSize:     20,
	SearchFields: []string{"name", "email", "phone", "course"},
	FilterFields: []string{"status", "priority", "source"},
	Normalize:    normalizeLead,
	ID:           func(l domain.Lead) string { return l.ID },
	DeriveStats:  leadStats,
}

func normalizeLead(r Raw) domain.Lead {
	return domain.Lead{
		ID:        id(r),
		Name:      str(r, "name", "customerName"),
		Email:     str(r, "email"),
		Phone:     str(r, "phone"),
		Source:    str(r, "source"),
		Course:    str(r, "course"),
		Priority:  strOr(r, "low", "priority"),
		Status:    strOr(r, "new", "status"),
		Notes:     str(r, "notes"),
		CreatedAt: createdAt(r),
	}
}

func leadStats(items []domain.Lead) map[string]float64 {
	stats := map[string]float64{
		"total":     float64(len(items)),
		"new":       0,
		"contacted": 0,
		"converted": 0,
		"lost":      0,
	}
	for _, l := range items {
		if _, ok := stats[l.Status]; ok {
			stats[l.Status]++
		}
	}
	return stats
}
