// Package report builds the admin progress workbook.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/progress"
)

// Sheet names.
const (
	SheetLearners = "Learners"
	SheetProgress = "Progress"
	SheetAttempts = "Attempts"
)

const timeLayout = "2006-01-02 15:04"

// Workbook is an in-memory report ready to be written out.
type Workbook struct {
	f *excelize.File
}

// Build lays out one sheet per concern: learner totals, per-curriculum
// progress (started curriculums only) and attempt history.
func Build(cat *catalog.Catalog, profiles []learner.Profile, attempts []learner.Attempt) (*Workbook, error) {
	f := excelize.NewFile()
	w := &Workbook{f: f}

	if err := f.SetSheetName("Sheet1", SheetLearners); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetProgress, SheetAttempts} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("add sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F46E5"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	names := make(map[string]string, len(profiles))
	learners := [][]any{{"Name", "Email", "Role", "Level", "XP", "Streak", "Longest streak",
		"Topics", "Curriculums", "Exams passed", "Badges", "Last active"}}
	for _, p := range profiles {
		names[p.ID] = p.Name
		learners = append(learners, []any{
			p.Name, p.Email, string(p.Role), progress.Level(p.XP), p.XP, p.Streak, p.LongestStreak,
			len(p.CompletedModules), len(p.CompletedCurriculums), len(p.FinalExamsPassed),
			strings.Join(p.Badges, ", "), p.LastActive.Format(timeLayout),
		})
	}

	rows := [][]any{{"Learner", "Curriculum", "Pillar", "Percent", "Exam passed"}}
	for _, p := range profiles {
		for _, c := range cat.Curriculums() {
			pct := progress.Percent(c, p)
			if pct == 0 && !p.HasPassedExam(c.ID) {
				continue
			}
			rows = append(rows, []any{p.Name, c.Title, c.PillarName, pct, yesNo(p.HasPassedExam(c.ID))})
		}
	}

	history := [][]any{{"Learner", "Kind", "Item", "Score", "Total", "Passed", "When"}}
	for _, a := range attempts {
		who := names[a.LearnerID]
		if who == "" {
			who = a.LearnerID
		}
		history = append(history, []any{
			who, string(a.Kind), itemTitle(cat, a), a.Score, a.Total, yesNo(a.Passed), a.AttemptedAt.Format(timeLayout),
		})
	}

	for _, s := range []struct {
		name  string
		rows  [][]any
		width float64
	}{
		{SheetLearners, learners, 16},
		{SheetProgress, rows, 28},
		{SheetAttempts, history, 24},
	} {
		if err := w.writeSheet(s.name, s.rows, header, s.width); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return w, nil
}

func (w *Workbook) writeSheet(sheet string, rows [][]any, headerStyle int, width float64) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := w.f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	if err := w.f.SetColWidth(sheet, "A", lastCol, width); err != nil {
		return err
	}
	if err := w.f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}
	return w.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// Rows returns a sheet's cell text, for previews and tests.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	return w.f.GetRows(sheet)
}

// WriteTo writes the workbook in xlsx format.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	return w.f.WriteTo(out)
}

// Save writes the workbook to path.
func (w *Workbook) Save(path string) error {
	return w.f.SaveAs(path)
}

// Close releases the workbook's temporary resources.
func (w *Workbook) Close() error {
	return w.f.Close()
}

func itemTitle(cat *catalog.Catalog, a learner.Attempt) string {
	switch a.Kind {
	case learner.AttemptTopic:
		if _, t, ok := cat.Topic(a.RefID); ok {
			return t.Title
		}
	case learner.AttemptExam:
		if c, ok := cat.Curriculum(a.RefID); ok {
			return c.Title + " final exam"
		}
	}
	return a.RefID
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
