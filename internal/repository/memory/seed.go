package memory

import (
	"fmt"

	"github.com/dtroode/studyprofile-server/internal/model"
)

// Seed is reference data and profiles to load into a Store.
type Seed struct {
	Cities    []CitySeed
	Languages []string
	Styles    []string
	Courses   []string
	Profiles  []model.Profile
}

// CitySeed is a city row.
type CitySeed struct {
	Name    string
	Country string
}

// DefaultSeed is the development data set used with DATABASE_DRIVER=memory.
// Its single profile gets ID 1 when loaded into an empty store.
func DefaultSeed() Seed {
	return Seed{
		Profiles: []model.Profile{{
			Name:     "Demo Student",
			Username: "demo",
			Email:    "demo@example.com",
			Phone:    "+15550100",
			Gender:   "Prefer Not To Say",
		}},
		Cities: []CitySeed{
			{Name: "Berlin", Country: "Germany"},
			{Name: "London", Country: "United Kingdom"},
			{Name: "Madrid", Country: "Spain"},
			{Name: "New York", Country: "United States"},
			{Name: "Paris", Country: "France"},
		},
		Languages: []string{"English", "French", "German", "Italian", "Spanish"},
		Styles:    model.LearningStyles,
		Courses: []string{
			"Calculus I",
			"Data Structures",
			"Introduction to Programming",
			"Linear Algebra",
			"Operating Systems",
		},
	}
}

// Load inserts seed into s. Profiles come first so IDs are predictable.
func (s *Store) Load(seed Seed) error {
	for _, p := range seed.Profiles {
		if _, err := s.AddProfile(p); err != nil {
			return fmt.Errorf("failed to seed profile %q: %w", p.Username, err)
		}
	}
	for _, c := range seed.Cities {
		if _, err := s.AddReference(model.EntityCity, c.Name, c.Country); err != nil {
			return fmt.Errorf("failed to seed city: %w", err)
		}
	}

	refs := []struct {
		kind  model.EntityKind
		names []string
	}{
		{model.EntityLanguage, seed.Languages},
		{model.EntityLearningStyle, seed.Styles},
		{model.EntityCourse, seed.Courses},
	}
	for _, r := range refs {
		for _, name := range r.names {
			if _, err := s.AddReference(r.kind, name, ""); err != nil {
				return fmt.Errorf("failed to seed %s: %w", r.kind, err)
			}
		}
	}

	return nil
}
