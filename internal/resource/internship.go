package resource

import "github.com/edubridge/admingate/internal/domain"

// Internships describes the internships collection.
var Internships = Descriptor[domain.Internship]{
	Name:         "internship",
	Plural:       "internships",
	Path:         "internships",
	PageSize:     12,
	SearchFields: []string{"title", "company", "location"},
	FilterFields: []string{"type", "status", "location"},
	Normalize:    normalizeInternship,
	ID:           func(i domain.Internship) string { return i.ID },
	DeriveStats:  internshipStats,
}

func normalizeInternship(r Raw) domain.Internship {
	return domain.Internship{
		ID:            id(r),
		Title:         str(r, "title"),
		Company:       str(r, "company"),
		Location:      str(r, "location"),
		Type:          strOr(r, "onsite", "type"),
		Stipend:       num(r, "stipend"),
		DurationWeeks: num(r, "durationWeeks", "duration_weeks"),
		Skills:        strs(r, "skills"),
		Status:        strOr(r, "open", "status"),
		CreatedAt:     createdAt(r),
	}
}

func internshipStats(items []domain.Internship) map[string]float64 {
	stats := map[string]float64{"total": float64(len(items)), "open": 0, "closed": 0}
	for _, i := range items {
		if _, ok := stats[i.Status]; ok {
			stats[i.Status]++
		}
	}
	return stats
}
