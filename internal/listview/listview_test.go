package listview

import (
	"strings"
	"testing"

	"github.com/edubridge/admingate/internal/domain"
)

var leadSpec = Spec{
	SearchFields: []string{"name", "email", "course"},
	PageSize:     2,
}

func sampleLeads() []domain.Lead {
	return []domain.Lead{
		{ID: "1", Name: "Asha Verma", Email: "asha@example.com", Course: "MBA", Status: "new", Priority: "high"},
		{ID: "2", Name: "Ravi Kumar", Email: "ravi@example.com", Course: "BTech", Status: "contacted", Priority: "low"},
		{ID: "3", Name: "Meera Shah", Email: "meera@other.org", Course: "MBA", Status: "new", Priority: "low"},
		{ID: "4", Name: "John Doe", Email: "john@example.com", Course: "Design", Status: "lost", Priority: "medium"},
		{ID: "5", Name: "Asha Patel", Email: "patel@other.org", Course: "MBA", Status: "converted", Priority: "high"},
	}
}

func TestFilter_TextQuery(t *testing.T) {
	t.Run("case-insensitive substring across search fields", func(t *testing.T) {
		got := Filter(sampleLeads(), "ASHA", nil, leadSpec.SearchFields)
		if len(got) != 2 {
			t.Fatalf("got %d leads; want 2", len(got))
		}
		for _, l := range got {
			if !strings.Contains(strings.ToLower(l.Name), "asha") {
				t.Errorf("lead %s does not match query", l.ID)
			}
		}
	})

	t.Run("matches any search field", func(t *testing.T) {
		got := Filter(sampleLeads(), "other.org", nil, leadSpec.SearchFields)
		if len(got) != 2 {
			t.Fatalf("got %d leads; want 2 matched on email", len(got))
		}
	})

	t.Run("no match", func(t *testing.T) {
		got := Filter(sampleLeads(), "zzz", nil, leadSpec.SearchFields)
		if len(got) != 0 {
			t.Fatalf("got %d leads; want 0", len(got))
		}
	})
}

func TestFilter_Categorical(t *testing.T) {
	t.Run("exact equality, wildcard ignored", func(t *testing.T) {
		got := Filter(sampleLeads(), "", map[string]string{
			"status":   "new",
			"priority": domain.FilterAll,
		}, leadSpec.SearchFields)
		if len(got) != 2 {
			t.Fatalf("got %d leads; want 2", len(got))
		}
		for _, l := range got {
			if l.Status != "new" {
				t.Errorf("lead %s has status %q; want %q", l.ID, l.Status, "new")
			}
		}
	})

	t.Run("filters AND together", func(t *testing.T) {
		got := Filter(sampleLeads(), "", map[string]string{
			"status":   "new",
			"priority": "low",
		}, leadSpec.SearchFields)
		if len(got) != 1 || got[0].ID != "3" {
			t.Fatalf("got %+v; want only lead 3", got)
		}
	})

	t.Run("query ANDs with filters", func(t *testing.T) {
		got := Filter(sampleLeads(), "asha", map[string]string{"status": "converted"}, leadSpec.SearchFields)
		if len(got) != 1 || got[0].ID != "5" {
			t.Fatalf("got %+v; want only lead 5", got)
		}
	})

	t.Run("empty filter value means no constraint", func(t *testing.T) {
		got := Filter(sampleLeads(), "", map[string]string{"status": ""}, leadSpec.SearchFields)
		if len(got) != len(sampleLeads()) {
			t.Fatalf("got %d leads; want all %d", len(got), len(sampleLeads()))
		}
	})
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := sampleLeads()
	Filter(items, "asha", map[string]string{"status": "new"}, leadSpec.SearchFields)
	if items[0].ID != "1" || len(items) != 5 {
		t.Error("input slice mutated by Filter")
	}
}

func TestPaginate_Properties(t *testing.T) {
	items := sampleLeads() // 5 items, page size 2 → 3 pages

	t.Run("total pages", func(t *testing.T) {
		pr := Paginate(items, 1, 2)
		if pr.TotalPages != 3 {
			t.Errorf("TotalPages = %d; want 3", pr.TotalPages)
		}
		if pr.Total != 5 {
			t.Errorf("Total = %d; want 5", pr.Total)
		}
	})

	t.Run("page slices partition the result", func(t *testing.T) {
		sum := 0
		seen := map[string]bool{}
		for page := 1; page <= 3; page++ {
			pr := Paginate(items, page, 2)
			sum += len(pr.Items)
			for _, l := range pr.Items {
				if seen[l.ID] {
					t.Errorf("lead %s appears on multiple pages", l.ID)
				}
				seen[l.ID] = true
			}
		}
		if sum != 5 {
			t.Errorf("page slice lengths sum to %d; want 5", sum)
		}
	})

	t.Run("last page is short", func(t *testing.T) {
		pr := Paginate(items, 3, 2)
		if len(pr.Items) != 1 {
			t.Errorf("last page has %d items; want 1", len(pr.Items))
		}
	})

	t.Run("empty result still has one page", func(t *testing.T) {
		pr := Paginate([]domain.Lead{}, 1, 2)
		if pr.TotalPages != 1 {
			t.Errorf("TotalPages = %d; want 1", pr.TotalPages)
		}
		if len(pr.Items) != 0 {
			t.Errorf("items = %d; want 0", len(pr.Items))
		}
	})

	t.Run("out-of-range page clamps to last", func(t *testing.T) {
		pr := Paginate(items, 99, 2)
		if pr.Page != 3 {
			t.Errorf("Page = %d; want clamped to 3", pr.Page)
		}
		if len(pr.Items) != 1 {
			t.Errorf("clamped page has %d items; want 1", len(pr.Items))
		}
	})

	t.Run("page below one clamps to first", func(t *testing.T) {
		pr := Paginate(items, 0, 2)
		if pr.Page != 1 {
			t.Errorf("Page = %d; want 1", pr.Page)
		}
	})
}

func TestApply_Deterministic(t *testing.T) {
	filters := map[string]string{"course": "MBA"}

	first := Apply(sampleLeads(), "", filters, 1, leadSpec)
	second := Apply(sampleLeads(), "", filters, 1, leadSpec)

	if first.Total != second.Total || len(first.Items) != len(second.Items) {
		t.Fatalf("same inputs produced different pages: %+v vs %+v", first, second)
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID {
			t.Errorf("item %d differs between runs", i)
		}
	}
}

// Boolean fields filter through their string form so query-string values
// like active=true work.
func TestFilter_BooleanField(t *testing.T) {
	cats := []domain.BlogCategory{
		{ID: "1", Name: "Tech", Active: true},
		{ID: "2", Name: "Old", Active: false},
	}
	got := Filter(cats, "", map[string]string{"active": "true"}, []string{"name"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %+v; want only active category", got)
	}
}
