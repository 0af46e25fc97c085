package hierarchy

import (
	"slices"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// Stats summarizes a component snapshot for dashboards and the CLI.
type Stats struct {
	TotalComponents int                    `json:"totalComponents"`
	MaxDepth        int                    `json:"maxDepth"`
	CountsByType    map[component.Type]int `json:"countsByType"`
	// OrphanedComponentIDs lists components whose ParentID points at a
	// record that no longer exists, sorted for stable output.
	OrphanedComponentIDs []string `json:"orphanedComponentIds,omitempty"`
}

// Statistics computes summary figures over the snapshot. Depth is measured
// along parent links with a cycle guard, so corrupt chains contribute their
// walkable prefix instead of hanging.
func (m *Manager) Statistics(components component.Map) Stats {
	stats := Stats{
		TotalComponents: len(components),
		CountsByType:    make(map[component.Type]int),
	}

	for id, rec := range components {
		stats.CountsByType[rec.Type]++

		if rec.ParentID != "" {
			if _, exists := components[rec.ParentID]; !exists {
				stats.OrphanedComponentIDs = append(stats.OrphanedComponentIDs, id)
			}
		}

		if depth, ok := depthOf(components, id); ok && depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
	}

	slices.Sort(stats.OrphanedComponentIDs)
	return stats
}
