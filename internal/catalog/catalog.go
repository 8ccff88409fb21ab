// Package catalog holds the immutable course content: pillars, curriculums,
// topics and quiz steps. A Catalog is built once at startup and never
// mutated afterwards.
package catalog

import (
	"fmt"
	"sort"
)

// Catalog indexes curriculums by id, pillar and topic.
type Catalog struct {
	pillars      []Pillar
	curriculums  []Curriculum
	news         []NewsItem
	byID         map[string]int
	byPillar     map[string][]int
	topicToCurr  map[string]string
	pillarByID   map[string]Pillar
	pillarByName map[string]Pillar
}

// New validates the content and builds the indices. Curriculums are kept
// sorted by Order.
func New(pillars []Pillar, curriculums []Curriculum, news []NewsItem) (*Catalog, error) {
	if err := validateContent(pillars, curriculums); err != nil {
		return nil, err
	}

	currs := make([]Curriculum, len(curriculums))
	copy(currs, curriculums)
	sort.SliceStable(currs, func(i, j int) bool { return currs[i].Order < currs[j].Order })

	c := &Catalog{
		pillars:      pillars,
		curriculums:  currs,
		news:         news,
		byID:         make(map[string]int, len(currs)),
		byPillar:     make(map[string][]int),
		topicToCurr:  make(map[string]string),
		pillarByID:   make(map[string]Pillar, len(pillars)),
		pillarByName: make(map[string]Pillar, len(pillars)),
	}
	for _, p := range pillars {
		c.pillarByID[p.ID] = p
		c.pillarByName[p.Name] = p
	}
	for i := range c.curriculums {
		cur := &c.curriculums[i]
		if cur.PillarName == "" {
			cur.PillarName = c.pillarByID[cur.Pillar].Name
		}
		c.byID[cur.ID] = i
		c.byPillar[cur.Pillar] = append(c.byPillar[cur.Pillar], i)
		for _, t := range cur.Topics {
			c.topicToCurr[t.ID] = cur.ID
		}
	}
	return c, nil
}

// MustNew is New that panics on invalid content. Only for static content
// and tests.
func MustNew(pillars []Pillar, curriculums []Curriculum, news []NewsItem) *Catalog {
	c, err := New(pillars, curriculums, news)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Pillars returns all pillars in display order.
func (c *Catalog) Pillars() []Pillar { return c.pillars }

// Pillar looks up a pillar by id.
func (c *Catalog) Pillar(id string) (Pillar, bool) {
	p, ok := c.pillarByID[id]
	return p, ok
}

// PillarByName looks up a pillar by display name.
func (c *Catalog) PillarByName(name string) (Pillar, bool) {
	p, ok := c.pillarByName[name]
	return p, ok
}

// Curriculums returns every curriculum ordered by Order.
func (c *Catalog) Curriculums() []Curriculum { return c.curriculums }

// Curriculum looks up a curriculum by id.
func (c *Catalog) Curriculum(id string) (Curriculum, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Curriculum{}, false
	}
	return c.curriculums[i], true
}

// ByPillar returns the curriculums of one pillar. An empty pillar id
// returns every curriculum.
func (c *Catalog) ByPillar(pillarID string) []Curriculum {
	if pillarID == "" {
		return c.curriculums
	}
	idx := c.byPillar[pillarID]
	out := make([]Curriculum, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.curriculums[i])
	}
	return out
}

// CurriculumOf returns the curriculum that owns topicID.
func (c *Catalog) CurriculumOf(topicID string) (Curriculum, bool) {
	id, ok := c.topicToCurr[topicID]
	if !ok {
		return Curriculum{}, false
	}
	return c.Curriculum(id)
}

// Topic looks up a topic and its owning curriculum.
func (c *Catalog) Topic(topicID string) (Curriculum, Topic, bool) {
	cur, ok := c.CurriculumOf(topicID)
	if !ok {
		return Curriculum{}, Topic{}, false
	}
	t, ok := cur.Topic(topicID)
	return cur, t, ok
}

// News returns the dashboard headlines.
func (c *Catalog) News() []NewsItem { return c.news }

// TopicCount returns the number of topics across all curriculums.
func (c *Catalog) TopicCount() int {
	return len(c.topicToCurr)
}
