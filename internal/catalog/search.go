package catalog

import "strings"

// Search matches query case-insensitively against name, description,
// category, tags and hair type. A blank query returns the whole catalog.
func (s *Store) Search(query string) []Product {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return s.ListAll()
	}
	out := make([]Product, 0)
	for _, p := range s.products {
		if matchesTerm(p, term) {
			out = append(out, p)
		}
	}
	return out
}

func matchesTerm(p Product, term string) bool {
	if containsFold(p.Name, term) || containsFold(p.Description, term) || containsFold(p.Category.String(), term) {
		return true
	}
	for _, tag := range p.Tags {
		if containsFold(tag, term) {
			return true
		}
	}
	return containsFold(p.HairType(), term)
}

func containsFold(s, lowerTerm string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), lowerTerm)
}
