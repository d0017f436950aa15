package domain

// Client-shape records for the eight dashboard collections. Every field is
// guaranteed populated after normalization: view code never branches on a
// missing field, and ID is always present regardless of whether the backend
// sent "_id" or "id".

// AdmissionRequest is a prospective student's request to be contacted about
// a campus course.
type AdmissionRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Course     string `json:"course"`
	University string `json:"university"`
	Message    string `json:"message"`
	Status     string `json:"status"` // pending | approved | rejected
	CreatedAt  string `json:"createdAt"`
}

// BlogCategory groups blog posts on the marketing site.
type BlogCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	PostCount   int    `json:"postCount"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"createdAt"`
}

// CampusCourse is an on-campus degree program offered through a partner
// university.
type CampusCourse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	University     string `json:"university"`
	Category       string `json:"category"`
	Mode           string `json:"mode"` // on-campus | hybrid
	DurationMonths int    `json:"durationMonths"`
	Fee            int    `json:"fee"`
	Brochure       string `json:"brochure"`
	Active         bool   `json:"active"`
	CreatedAt      string `json:"createdAt"`
}

// SkillsCourse is a self-paced skills-based online course.
type SkillsCourse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Level     string   `json:"level"` // beginner | intermediate | advanced
	Lessons   int      `json:"lessons"`
	Price     int      `json:"price"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
	CreatedAt string   `json:"createdAt"`
}

// Internship is a posted internship opening.
type Internship struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Type          string   `json:"type"` // onsite | remote | hybrid
	Stipend       int      `json:"stipend"`
	DurationWeeks int      `json:"durationWeeks"`
	Skills        []string `json:"skills"`
	Status        string   `json:"status"` // open | closed
	CreatedAt     string   `json:"createdAt"`
}

// Lead is a sales lead captured from marketing pages.
type Lead struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Source    string `json:"source"`
	Course    string `json:"course"`
	Priority  string `json:"priority"` // low | medium | high
	Status    string `json:"status"`   // new | contacted | converted | lost
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
}

// Testimonial is a student/alumni quote shown on the marketing site.
type Testimonial struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Role      string `json:"role"`
	Text      string `json:"testimonial"`
	Rating    int    `json:"rating"`
	Verified  bool   `json:"verified"`
	CreatedAt string `json:"createdAt"`
}

// Account is a platform user account (not a gateway session).
type Account struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"` // user | counselor | admin
	Verified  bool   `json:"verified"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

// AuthUser is the upstream user object returned by /auth/login.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
