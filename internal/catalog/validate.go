package catalog

import (
	"fmt"
	"strings"
)

const (
	minCategories = 2
	minTopics     = 4
)

// Validate checks the built-in catalog.
func Validate() error {
	return validateSubjects(c.subjects)
}

func validateSubjects(subjects []Subject) error {
	var errs []string
	seen := make(map[string]bool, len(subjects))

	for _, s := range subjects {
		key := strings.ToLower(s.Name)
		if seen[key] {
			errs = append(errs, fmt.Sprintf("duplicate subject %q", s.Name))
		}
		seen[key] = true

		if len(s.Categories) < minCategories {
			errs = append(errs, fmt.Sprintf("subject %q has %d categories, want at least %d", s.Name, len(s.Categories), minCategories))
		}
		topics := make(map[string]bool)
		for _, cat := range s.Categories {
			if len(cat.Topics) < minTopics {
				errs = append(errs, fmt.Sprintf("category %q of %q has %d topics, want at least %d", cat.Name, s.Name, len(cat.Topics), minTopics))
			}
			for _, t := range cat.Topics {
				if t.Name == "" || t.Label == "" {
					errs = append(errs, fmt.Sprintf("subject %q has a topic with an empty name or label", s.Name))
				}
				if topics[t.Name] {
					errs = append(errs, fmt.Sprintf("subject %q lists %q twice", s.Name, t.Name))
				}
				topics[t.Name] = true
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
