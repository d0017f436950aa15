package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/edubridge/admingate/internal/domain"
)

func parseFromURL(t *testing.T, rawURL string) domain.ViewRequest {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, rawURL, nil)
	return ParseViewRequest(c)
}

func TestParseViewRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		vr := parseFromURL(t, "/leads")
		if vr.Page != 1 || vr.Query != "" || vr.Refresh || len(vr.Filters) != 0 {
			t.Errorf("got %+v; want zero view request with page 1", vr)
		}
	})

	t.Run("reserved params are not filters", func(t *testing.T) {
		vr := parseFromURL(t, "/leads?page=3&query=asha&refresh=true&status=new")
		if vr.Page != 3 {
			t.Errorf("page = %d; want 3", vr.Page)
		}
		if vr.Query != "asha" {
			t.Errorf("query = %q; want asha", vr.Query)
		}
		if !vr.Refresh {
			t.Error("refresh flag not parsed")
		}
		if len(vr.Filters) != 1 || vr.Filters["status"] != "new" {
			t.Errorf("filters = %v; want only status=new", vr.Filters)
		}
	})

	t.Run("page below one clamps", func(t *testing.T) {
		vr := parseFromURL(t, "/leads?page=-2")
		if vr.Page != 1 {
			t.Errorf("page = %d; want 1", vr.Page)
		}
	})

	t.Run("non-numeric page falls back to one", func(t *testing.T) {
		vr := parseFromURL(t, "/leads?page=abc")
		if vr.Page != 1 {
			t.Errorf("page = %d; want 1", vr.Page)
		}
	})

	t.Run("empty filter values dropped", func(t *testing.T) {
		vr := parseFromURL(t, "/leads?status=")
		if len(vr.Filters) != 0 {
			t.Errorf("filters = %v; want empty", vr.Filters)
		}
	})
}
