package resource

import "github.com/edubridge/admingate/internal/domain"

// Testimonials describes the testimonials collection. The quote body is
// canonically "testimonial" with a legacy "text" alias, and testimonials
// default to verified (they were historically entered by staff), unlike
// platform accounts which default to unverified.
var Testimonials = Descriptor[domain.Testimonial]{
	Name:         "testimonial",
	Plural:       "testimonials",
	Path:         "testimonials",
	PageSize:     12,
	SearchFields: []string{"author", "role", "testimonial"},
	FilterFields: []string{"verified", "rating"},
	Normalize:    normalizeTestimonial,
	ID:           func(t domain.Testimonial) string { return t.ID },
}

func normalizeTestimonial(r Raw) domain.Testimonial {
	return domain.Testimonial{
		ID:        id(r),
		Author:    str(r, "author", "name"),
		Role:      str(r, "role"),
		Text:      str(r, "testimonial", "text"),
		Rating:    num(r, "rating"),
		Verified:  boolOr(r, true, "verified"),
		CreatedAt: createdAt(r),
	}
}
