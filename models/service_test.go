package models

import "testing"

func TestArchiveIsIdempotent(t *testing.T) {
	s := Service{Status: ServiceActive}
	if !s.Archive() {
		t.Fatal("first archive should succeed")
	}
	if s.Status != ServiceArchived {
		t.Fatalf("expected archived status, got %q", s.Status)
	}
	if s.Archive() {
		t.Fatal("second archive should report already archived")
	}
}

func TestMergeCategoryCountsIncludesZeroCategories(t *testing.T) {
	stats := MergeCategoryCounts(map[string]int64{
		"photocopy":       3,
		"web_development": 1,
	})
	if len(stats) != len(ServiceCategories) {
		t.Fatalf("expected %d categories, got %d", len(ServiceCategories), len(stats))
	}

	byValue := make(map[string]CategoryStat, len(stats))
	for _, s := range stats {
		byValue[s.Value] = s
	}
	if byValue["photocopy"].Count != 3 {
		t.Fatalf("photocopy: expected 3, got %d", byValue["photocopy"].Count)
	}
	if byValue["web_development"].Count != 1 {
		t.Fatalf("web_development: expected 1, got %d", byValue["web_development"].Count)
	}
	if byValue["marketing"].Count != 0 {
		t.Fatalf("marketing: expected 0, got %d", byValue["marketing"].Count)
	}

	// Order follows the fixed category list.
	for i, s := range stats {
		if s.Value != ServiceCategories[i] {
			t.Fatalf("position %d: expected %q, got %q", i, ServiceCategories[i], s.Value)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	cases := map[string]string{
		"photocopy":         "Photocopy",
		"computer_training": "Computer Training",
		"web_development":   "Web Development",
		"other":             "Other",
	}
	for in, want := range cases {
		if got := CategoryLabel(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestValidServiceCategory(t *testing.T) {
	if !ValidServiceCategory("digital_marketing") {
		t.Fatal("digital_marketing rejected")
	}
	if ValidServiceCategory("catering") {
		t.Fatal("unknown category accepted")
	}
}
