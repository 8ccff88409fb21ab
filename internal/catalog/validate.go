package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// validateContent performs the structural checks on built content.
// Returns a combined error describing all problems found, or nil if valid.
func validateContent(pillars []Pillar, curriculums []Curriculum) error {
	var errs []string

	pillarSet := make(map[string]bool, len(pillars))
	for _, p := range pillars {
		if pillarSet[p.ID] {
			errs = append(errs, fmt.Sprintf("duplicate pillar ID: %q", p.ID))
		}
		pillarSet[p.ID] = true
	}

	currSet := make(map[string]bool, len(curriculums))
	topicSet := make(map[string]bool)
	stepSet := make(map[string]bool)

	for _, c := range curriculums {
		if currSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate curriculum ID: %q", c.ID))
		}
		currSet[c.ID] = true

		if len(pillars) > 0 && !pillarSet[c.Pillar] {
			errs = append(errs, fmt.Sprintf("curriculum %q references unknown pillar %q", c.ID, c.Pillar))
		}
		if len(c.Topics) == 0 {
			errs = append(errs, fmt.Sprintf("curriculum %q has no topics", c.ID))
		}

		for _, t := range c.Topics {
			if topicSet[t.ID] {
				errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
			}
			topicSet[t.ID] = true

			if len(t.Articles) == 0 {
				errs = append(errs, fmt.Sprintf("topic %q has no articles", t.ID))
			}
			if len(t.QuizSteps) == 0 {
				errs = append(errs, fmt.Sprintf("topic %q has no quiz steps", t.ID))
			}

			for _, q := range t.QuizSteps {
				if stepSet[q.ID] {
					errs = append(errs, fmt.Sprintf("duplicate quiz step ID: %q", q.ID))
				}
				stepSet[q.ID] = true
				errs = append(errs, validateStep(q)...)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateStep(q QuizStep) []string {
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) < 2 {
			return []string{fmt.Sprintf("step %q needs at least two options", q.ID)}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return []string{fmt.Sprintf("step %q correct index %d out of range", q.ID, q.CorrectIndex)}
		}
	case FillInBlank:
		if strings.TrimSpace(q.CorrectText) == "" {
			return []string{fmt.Sprintf("step %q has an empty answer", q.ID)}
		}
	default:
		return []string{fmt.Sprintf("step %q has unknown type %q", q.ID, q.Type)}
	}
	return nil
}

// documentSchema constrains the shape of the content file before it is
// expanded into curriculums.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"templates", "pillars"},
	"properties": map[string]any{
		"templates": map[string]any{
			"type":     "object",
			"required": []any{"articles", "quiz"},
			"properties": map[string]any{
				"articles": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": "string", "minLength": 1},
				},
				"quiz": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type":     "object",
						"required": []any{"type", "content", "answer"},
						"properties": map[string]any{
							"type":    map[string]any{"enum": []any{string(MultipleChoice), string(FillInBlank)}},
							"content": map[string]any{"type": "string", "minLength": 1},
							"options": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"answer":  map[string]any{"type": []any{"string", "integer"}},
						},
					},
				},
			},
		},
		"pillars": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "name", "chapters"},
				"properties": map[string]any{
					"id":       map[string]any{"type": "string", "pattern": "^[a-z0-9]+$"},
					"name":     map[string]any{"type": "string", "minLength": 1},
					"trending": map[string]any{"type": "boolean"},
					"chapters": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string", "minLength": 1},
					},
				},
			},
		},
		"news": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title", "summary"},
			},
		},
	},
}

// validateDocument checks the decoded YAML document against documentSchema.
func validateDocument(doc any) error {
	parsed, err := jsonValue(doc)
	if err != nil {
		return fmt.Errorf("normalize content document: %w", err)
	}
	schemaDoc, err := jsonValue(documentSchema)
	if err != nil {
		return fmt.Errorf("normalize content schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://academy-content.json"
	if err := c.AddResource(url, schemaDoc); err != nil {
		return fmt.Errorf("add content schema: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return fmt.Errorf("compile content schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("content document invalid: %w", err)
	}
	return nil
}

// jsonValue round-trips v through encoding/json so YAML scalars and Go ints
// become the float64/string/map values the validator expects.
func jsonValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
