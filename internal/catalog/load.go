package catalog

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/pillars.yaml
var defaultContent []byte

type document struct {
	Templates struct {
		Articles []string       `yaml:"articles"`
		Quiz     []stepTemplate `yaml:"quiz"`
	} `yaml:"templates"`
	Pillars []pillarEntry `yaml:"pillars"`
	News    []newsEntry   `yaml:"news"`
}

type stepTemplate struct {
	Type    StepType `yaml:"type"`
	Content string   `yaml:"content"`
	Options []string `yaml:"options"`
	Answer  string   `yaml:"answer"`
}

type pillarEntry struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Trending bool     `yaml:"trending"`
	Chapters []string `yaml:"chapters"`
}

type newsEntry struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Date    string `yaml:"date"`
}

// Default loads the content bundled with the binary.
func Default() (*Catalog, error) {
	return Parse(defaultContent)
}

// Parse decodes a content document, validates it, and expands each pillar's
// chapters into a curriculum of topics.
func Parse(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	pillars := make([]Pillar, 0, len(doc.Pillars))
	curriculums := make([]Curriculum, 0, len(doc.Pillars))
	for i, pe := range doc.Pillars {
		pillars = append(pillars, Pillar{ID: pe.ID, Name: pe.Name})
		cur, err := expandPillar(i, pe, doc.Templates.Articles, doc.Templates.Quiz)
		if err != nil {
			return nil, err
		}
		curriculums = append(curriculums, cur)
	}

	news := make([]NewsItem, 0, len(doc.News))
	for _, n := range doc.News {
		news = append(news, NewsItem{ID: n.ID, Title: n.Title, Summary: n.Summary, Date: n.Date})
	}

	return New(pillars, curriculums, news)
}

func expandPillar(index int, pe pillarEntry, articles []string, quiz []stepTemplate) (Curriculum, error) {
	chapters := pe.Chapters
	if len(chapters) == 0 {
		chapters = []string{"General Mastery Overview"}
	}

	cur := Curriculum{
		ID:            "curr-" + pe.ID,
		Title:         pe.Name + " Mastery",
		Pillar:        pe.ID,
		PillarName:    pe.Name,
		Difficulty:    curriculumDifficulty(index),
		Order:         index + 1,
		Description:   fmt.Sprintf("The complete syllabus for %s, from first principles to advanced practice.", pe.Name),
		EstimatedTime: fmt.Sprintf("%dh", 15+index),
		Trending:      pe.Trending,
	}

	for idx, chapter := range chapters {
		t := Topic{
			ID:            fmt.Sprintf("topic-%s-%d", pe.ID, idx),
			Title:         chapter,
			Pillar:        pe.ID,
			Description:   fmt.Sprintf("A working deep-dive into %s with frameworks you can apply.", chapter),
			Difficulty:    topicDifficulty(idx, len(chapters)),
			EstimatedTime: "45m",
		}
		for _, a := range articles {
			t.Articles = append(t.Articles, fill(a, chapter))
		}
		for n, st := range quiz {
			step, err := expandStep(st, fmt.Sprintf("q-%s-%d-%d", pe.ID, idx, n+1), chapter)
			if err != nil {
				return Curriculum{}, err
			}
			t.QuizSteps = append(t.QuizSteps, step)
		}
		cur.Topics = append(cur.Topics, t)
	}
	return cur, nil
}

func expandStep(st stepTemplate, id, chapter string) (QuizStep, error) {
	step := QuizStep{
		ID:      id,
		Type:    st.Type,
		Content: fill(st.Content, chapter),
	}
	switch st.Type {
	case MultipleChoice:
		idx, err := strconv.Atoi(strings.TrimSpace(st.Answer))
		if err != nil {
			return QuizStep{}, fmt.Errorf("step %s: multiple-choice answer %q is not an index", id, st.Answer)
		}
		step.Options = append([]string(nil), st.Options...)
		step.CorrectIndex = idx
	case FillInBlank:
		step.CorrectText = strings.TrimSpace(st.Answer)
	}
	return step, nil
}

func fill(tmpl, chapter string) string {
	return strings.ReplaceAll(tmpl, "{chapter}", chapter)
}

func curriculumDifficulty(index int) Difficulty {
	switch {
	case index < 5:
		return Beginner
	case index < 12:
		return Intermediate
	default:
		return Advanced
	}
}

func topicDifficulty(idx, n int) Difficulty {
	switch {
	case idx == 0:
		return Beginner
	case float64(idx) < float64(n)/2:
		return Intermediate
	default:
		return Advanced
	}
}
