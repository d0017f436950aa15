package resource

import "github.com/edubridge/admingate/internal/domain"

// BlogCategories describes the blog-categories collection. A category
// submitted without a slug gets one derived from its name; categories are
// active unless the backend says otherwise.
var BlogCategories = Descriptor[domain.BlogCategory]{
	Name:          "blog category",
	Plural:        "blog-categories",
	Path:          "blog-categories",
	PageSize:      20,
	SearchFields:  []string{"name", "description", "slug"},
	FilterFields:  []string{"active"},
	Normalize:     normalizeCategory,
	ID:            func(c domain.BlogCategory) string { return c.ID },
	PrepareCreate: prepareCategoryCreate,
}

func normalizeCategory(r Raw) domain.BlogCategory {
	name := str(r, "name")
	return domain.BlogCategory{
		ID:          id(r),
		Name:        name,
		Slug:        strOr(r, Slugify(name), "slug"),
		Description: str(r, "description"),
		PostCount:   num(r, "postCount", "post_count"),
		Active:      boolOr(r, true, "active"),
		CreatedAt:   createdAt(r),
	}
}

// prepareCategoryCreate fills in a derived slug before submission when the
// form left it blank.
func prepareCategoryCreate(payload Raw) Raw {
	if str(payload, "slug") == "" {
		payload["slug"] = Slugify(str(payload, "name"))
	}
	return payload
}
