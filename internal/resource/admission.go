package resource

import "github.com/edubridge/admingate/internal/domain"

// AdmissionRequests describes the admission-requests collection.
// Free text searches name/email/course/university; status defaults to
// "pending" for new requests.
var AdmissionRequests = Descriptor[domain.AdmissionRequest]{
	Name:         "admission request",
	Plural:       "admission-requests",
	Path:         "admission-requests",
	PageSize:     12,
	SearchFields: []string{"name", "email", "course", "university"},
	FilterFields: []string{"status", "university"},
	Normalize:    normalizeAdmission,
	ID:           func(a domain.AdmissionRequest) string { return a.ID },
	DeriveStats:  admissionStats,
}

func normalizeAdmission(r Raw) domain.AdmissionRequest {
	return domain.AdmissionRequest{
		ID:         id(r),
		Name:       str(r, "name"),
		Email:      str(r, "email"),
		Phone:      str(r, "phone"),
		Course:     str(r, "course"),
		University: str(r, "university"),
		Message:    str(r, "message"),
		Status:     strOr(r, "pending", "status"),
		CreatedAt:  createdAt(r),
	}
}

func admissionStats(items []domain.AdmissionRequest) map[string]float64 {
	stats := map[string]float64{
		"total":    float64(len(items)),
		"pending":  0,
		"approved": 0,
		"rejected": 0,
	}
	for _, a := range items {
		if _, ok := stats[a.Status]; ok {
			stats[a.Status]++
		}
	}
	return stats
}
