// Package hierarchy answers ancestor-chain questions about indicators:
// hierarchical titles, overview images and default resolutions.
package hierarchy

import (
	"strings"

	"github.com/adaptabrasil/adapta-metadata/catalog"
	"github.com/adaptabrasil/adapta-metadata/model"
)

// Resolver walks parent pointers of a catalog. It never fails: a missing
// ancestor or malformed record degrades to a partial result or fallback.
type Resolver struct {
	catalog *catalog.Catalog
}

// New creates a resolver over the given catalog
func New(cat *catalog.Catalog) *Resolver {
	return &Resolver{catalog: cat}
}

// walk visits id and then each ancestor in turn. It stops on a missing id, a
// repeated id, a missing parent, or when visit returns false.
func (r *Resolver) walk(id int, visit func(model.Indicator) bool) {
	visited := make(map[int]bool)
	current := &id
	for current != nil {
		if visited[*current] {
			return
		}
		visited[*current] = true

		indicator, ok := r.catalog.Lookup(*current)
		if !ok {
			return
		}
		if !visit(indicator) {
			return
		}
		current = indicator.ParentID
	}
}

// HierarchyTitle returns "AdaptaBrasil: " followed by the titles of the level
// 1 and 2 ancestors (root first) and the indicator's own title, joined by " - "
func (r *Resolver) HierarchyTitle(id int) string {
	var titles []string
	contains := func(title string) bool {
		for _, t := range titles {
			if t == title {
				return true
			}
		}
		return false
	}

	r.walk(id, func(indicator model.Indicator) bool {
		title := indicator.DisplayTitle()
		if indicator.Level <= 2 && !contains(title) {
			titles = append([]string{title}, titles...)
		}
		return true
	})

	if original, ok := r.catalog.Lookup(id); ok && !contains(original.DisplayTitle()) {
		titles = append(titles, original.DisplayTitle())
	}

	return model.PlatformLabel + ": " + strings.Join(titles, model.TitleSeparator)
}

// topLevel returns the first level-1 indicator on the chain starting at id
func (r *Resolver) topLevel(id int) (model.Indicator, bool) {
	var (
		top   model.Indicator
		found bool
	)
	r.walk(id, func(indicator model.Indicator) bool {
		if indicator.Level == 1 {
			top, found = indicator, true
			return false
		}
		return true
	})
	return top, found
}

// OverviewImage returns the image URL of the level-1 ancestor, or an empty
// string when there is none
func (r *Resolver) OverviewImage(id int) string {
	if top, ok := r.topLevel(id); ok {
		return top.ImageURL
	}
	return ""
}

// DefaultResolution returns the default resolution declared by the level-1
// ancestor, or model.FallbackResolution
func (r *Resolver) DefaultResolution(id int) string {
	if top, ok := r.topLevel(id); ok {
		if resolution, ok := top.DefaultResolution(); ok {
			return resolution
		}
	}
	return model.FallbackResolution
}
