package resource

import "github.com/edubridge/admingate/internal/domain"

// Accounts describes the platform user accounts collection. Accounts default
// to unverified and active.
var Accounts = Descriptor[domain.Account]{
	Name:         "user",
	Plural:       "users",
	Path:         "users",
	PageSize:     20,
	SearchFields: []string{"name", "email"},
	FilterFields: []string{"role", "verified", "active"},
	Normalize:    normalizeAccount,
	ID:           func(a domain.Account) string { return a.ID },
	DeriveStats:  accountStats,
}

func normalizeAccount(r Raw) domain.Account {
	return domain.Account{
		ID:        id(r),
		Name:      str(r, "name"),
		Email:     str(r, "email"),
		Role:      strOr(r, "user", "role"),
		Verified:  boolOr(r, false, "verified"),
		Active:    boolOr(r, true, "active"),
		CreatedAt: createdAt(r),
	}
}

func accountStats(items []domain.Account) map[string]float64 {
	stats := map[string]float64{"total": float64(len(items)), "verified": 0, "active": 0}
	for _, a := range items {
		if a.Verified {
			stats["verified"]++
		}
		if a.Active {
			stats["active"]++
		}
	}
	return stats
}
