package catalog

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestValidate_SeedCatalogPasses(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed catalog validation failed: %v", err)
	}
}

func TestValidateSubjects_DetectsProblems(t *testing.T) {
	subjects := []Subject{
		{Name: "Math", Categories: []Category{{Name: "only", Topics: []Topic{{"A", "A"}, {"A", "A"}}}}},
		{Name: "math"},
	}
	err := validateSubjects(subjects)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"duplicate subject", "categories", "topics", "twice"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestSubjectNames(t *testing.T) {
	got := SubjectNames()
	want := []string{"Mathematics", "Reading", "Science", "Social Studies", "Arts", "Language"}
	if len(got) != len(want) {
		t.Fatalf("got %d subjects, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("subject %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookupIgnoresCase(t *testing.T) {
	s, ok := Lookup("  social studies ")
	if !ok || s.Name != "Social Studies" {
		t.Fatalf("Lookup = %+v, %v", s, ok)
	}
	if _, ok := Lookup("Astrology"); ok {
		t.Fatal("unknown subject should not resolve")
	}
}

func TestSampleDistinctAndFromSubject(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	math, _ := Lookup("Mathematics")
	inMath := make(map[string]bool)
	for _, tp := range math.Topics() {
		inMath[tp.Name] = true
	}

	for i := 0; i < 50; i++ {
		got := Sample("Mathematics", 4, rng)
		if len(got) != 4 {
			t.Fatalf("len = %d, want 4", len(got))
		}
		seen := make(map[string]bool)
		for _, tp := range got {
			if !inMath[tp.Name] {
				t.Fatalf("%q is not a math topic", tp.Name)
			}
			if seen[tp.Name] {
				t.Fatalf("duplicate topic %q", tp.Name)
			}
			seen[tp.Name] = true
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	a := Sample("Science", 3, rand.New(rand.NewPCG(7, 7)))
	b := Sample("Science", 3, rand.New(rand.NewPCG(7, 7)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed gave different samples: %v vs %v", a, b)
		}
	}
}

func TestSampleEdgeCases(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	if got := Sample("Arts", 0, rng); got != nil {
		t.Errorf("n=0 should return nil, got %v", got)
	}
	arts, _ := Lookup("Arts")
	if got := Sample("Arts", 100, rng); len(got) != len(arts.Topics()) {
		t.Errorf("oversized n should cap at %d, got %d", len(arts.Topics()), len(got))
	}
	if got := Sample("Underwater Basket Weaving", 5, rng); len(got) != 5 {
		t.Errorf("unknown subject should sample every subject, got %d", len(got))
	}
}

func TestFlag(t *testing.T) {
	if got := Flag("Kenya"); got != "🇰🇪" {
		t.Errorf("Flag(Kenya) = %q", got)
	}
	if got := Flag("bangladesh"); got != "🇧🇩" {
		t.Errorf("Flag(bangladesh) = %q", got)
	}
	if got := Flag("Atlantis"); got != "🌍" {
		t.Errorf("Flag(Atlantis) = %q", got)
	}
}

func TestFixedChoices(t *testing.T) {
	if len(AgeBuckets()) != 6 || AgeBuckets()[0] != "5-7" {
		t.Errorf("AgeBuckets = %v", AgeBuckets())
	}
	if d := Durations(); len(d) != 4 || d[1] != 45 {
		t.Errorf("Durations = %v", d)
	}
	if len(Countries()) != 5 {
		t.Errorf("Countries = %v", Countries())
	}
}
