package resource

import "github.com/edubridge/admingate/internal/domain"

// CampusCourses describes the campus-courses collection.
var CampusCourses = Descriptor[domain.CampusCourse]{
	Name:         "campus course",
	Plural:       "campus-courses",
	Path:         "campus-courses",
	PageSize:     12,
	SearchFields: []string{"title", "university", "category"},
	FilterFields: []string{"category", "mode", "university"},
	Normalize:    normalizeCampusCourse,
	ID:           func(c domain.CampusCourse) string { return c.ID },
}

func normalizeCampusCourse(r Raw) domain.CampusCourse {
	return domain.CampusCourse{
		ID:             id(r),
		Title:          str(r, "title"),
		University:     str(r, "university"),
		Category:       str(r, "category"),
		Mode:           strOr(r, "on-campus", "mode"),
		DurationMonths: num(r, "durationMonths", "duration_months"),
		Fee:            num(r, "fee"),
		Brochure:       str(r, "brochure"),
		Active:         boolOr(r, true, "active"),
		CreatedAt:      createdAt(r),
	}
}

// SkillsCourses describes the skills-courses collection. New courses are
// unpublished until an admin flips them live.
var SkillsCourses = Descriptor[domain.SkillsCourse]{
	Name:         "skills course",
	Plural:       "skills-courses",
	Path:         "skills-courses",
	PageSize:     12,
	SearchFields: []string{"title", "category"},
	FilterFields: []string{"category", "level"},
	Normalize:    normalizeSkillsCourse,
	ID:           func(c domain.SkillsCourse) string { return c.ID },
}

func normalizeSkillsCourse(r Raw) domain.SkillsCourse {
	return domain.SkillsCourse{
		ID:        id(r),
		Title:     str(r, "title"),
		Category:  str(r, "category"),
		Level:     strOr(r, "beginner", "level"),
		Lessons:   num(r, "lessons"),
		Price:     num(r, "price"),
		Tags:      strs(r, "tags"),
		Published: boolOr(r, false, "published"),
		CreatedAt: createdAt(r),
	}
}
