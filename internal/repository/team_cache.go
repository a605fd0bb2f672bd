package repository

import (
	"sort"
	"strings"
	"sync"

	"playbook/internal/models"
)

// TeamCache provides thread-safe in-memory lookups of MLB team ids by name
type TeamCache struct {
	mu    sync.RWMutex
	cache map[string]models.Team // normalized team name -> team
}

func NewTeamCache() *TeamCache {
	return &TeamCache{
		cache: make(map[string]models.Team),
	}
}

func normalizeTeamName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Get resolves a team by name, ignoring case and extra whitespace
func (c *TeamCache) Get(name string) (models.Team, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	team, found := c.cache[normalizeTeamName(name)]
	return team, found
}

// LoadAll replaces the cached teams
func (c *TeamCache) LoadAll(teams []models.Team) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]models.Team, len(teams))
	for _, t := range teams {
		c.cache[normalizeTeamName(t.Name)] = t
	}
}

// All returns the cached teams sorted by name
func (c *TeamCache) All() []models.Team {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Team, 0, len(c.cache))
	for _, t := range c.cache {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *TeamCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
