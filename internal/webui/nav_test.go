package webui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/errdex/errdex/internal/catalog"
)

func records(n int) []catalog.ErrorRecord {
	out := make([]catalog.ErrorRecord, n)
	for i := range out {
		out[i] = catalog.ErrorRecord{Code: string(rune('A' + i))}
	}
	return out
}

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		total, page int
		want        int
	}{
		{0, 1, 0},
		{1, 1, 0},
		{6, 1, 0},  // exactly one page: no controls
		{7, 1, 2},  // ceil(7/6)
		{12, 2, 2}, // ceil(12/6)
		{13, 1, 3}, // ceil(13/6)
		{100, 5, 17},
	}
	for _, tt := range tests {
		controls := BuildPagination(tt.total, tt.page, PageSize)
		if len(controls) != tt.want {
			t.Errorf("BuildPagination(%d, %d, 6): %d controls, want %d",
				tt.total, tt.page, len(controls), tt.want)
		}
		for _, c := range controls {
			if c.Active != (c.Number == tt.page) {
				t.Errorf("BuildPagination(%d, %d, 6): control %d active=%v",
					tt.total, tt.page, c.Number, c.Active)
			}
		}
	}
}

func TestPaginate(t *testing.T) {
	recs := records(13)

	page1 := Paginate(recs, 1, PageSize)
	if len(page1) != 6 || page1[0].Code != "A" {
		t.Errorf("unexpected page 1: %+v", page1)
	}
	page3 := Paginate(recs, 3, PageSize)
	if len(page3) != 1 || page3[0].Code != "M" {
		t.Errorf("unexpected page 3: %+v", page3)
	}
	if got := Paginate(recs, 4, PageSize); got != nil {
		t.Errorf("expected nil past the end, got %+v", got)
	}
	// Page zero is treated as page one.
	if got := Paginate(recs, 0, PageSize); len(got) != 6 {
		t.Errorf("expected page 0 to behave as page 1, got %d records", len(got))
	}
}

func TestBreadcrumbs(t *testing.T) {
	cat := catalog.Category{ID: "os", Name: "OS"}
	sub := catalog.Subcategory{ID: "boot", Name: "Boot"}
	rec := catalog.ErrorRecord{Code: "E1"}

	if got := (NavState{View: ViewCategories}).Breadcrumbs(); len(got) != 0 {
		t.Errorf("expected no crumbs on landing view, got %+v", got)
	}

	crumbs := NavState{View: ViewErrors, Category: cat, Subcategory: sub}.Breadcrumbs()
	if len(crumbs) != 3 {
		t.Fatalf("expected 3 crumbs, got %+v", crumbs)
	}
	if crumbs[1].URL != "/c/os" {
		t.Errorf("expected category crumb link, got %q", crumbs[1].URL)
	}
	if crumbs[2].URL != "" {
		t.Error("expected last crumb to have no link")
	}

	crumbs = NavState{View: ViewDetail, Category: cat, Record: &rec}.Breadcrumbs()
	if len(crumbs) != 3 || crumbs[2].Label != "E1" {
		t.Errorf("unexpected detail crumbs: %+v", crumbs)
	}
}

func TestValidCode(t *testing.T) {
	valid := []string{"E1", "E-NET-001", "0x80070057", "ERR_CONN.RESET", "a:b"}
	for _, code := range valid {
		if !ValidCode(code) {
			t.Errorf("expected %q to be valid", code)
		}
	}

	long := "E"
	for len(long) <= MaxCodeLen {
		long += "0"
	}
	invalid := []string{"", " ", "E 1", "<script>", "кодошибки", "-leading", long}
	for _, code := range invalid {
		if ValidCode(code) {
			t.Errorf("expected %q to be invalid", code)
		}
	}
}

func TestValidQuery(t *testing.T) {
	if !ValidQuery("boot loop") {
		t.Error("expected normal query to be valid")
	}
	if ValidQuery("   ") {
		t.Error("expected blank query to be invalid")
	}
	long := strings.Repeat("q", MaxQueryLen+1)
	if ValidQuery(long) {
		t.Error("expected over-long query to be invalid")
	}

	// The cap counts characters, not bytes.
	cyrillic := strings.Repeat("д", MaxQueryLen)
	if !ValidQuery(cyrillic) {
		t.Errorf("expected %d-character Cyrillic query to be valid", MaxQueryLen)
	}
	if ValidQuery(cyrillic + "д") {
		t.Error("expected over-long Cyrillic query to be invalid")
	}
}

func TestTruncateDescription(t *testing.T) {
	short := "fits"
	if got := truncateDescription(short, 160); got != short {
		t.Errorf("expected short description untouched, got %q", got)
	}

	long := strings.Repeat("описание сбоя ", 20)
	got := truncateDescription(long, 160)
	if !utf8.ValidString(got) {
		t.Errorf("truncated description is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 160 {
		t.Errorf("expected 160 characters, got %d", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}
