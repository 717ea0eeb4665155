package report_test

import (
	"bytes"
	"math"
	"reflect"
	"testing"

	"log/slog"

	"github.com/garnizeh/skilltrack/pkg/models"
	"github.com/garnizeh/skilltrack/pkg/report"
)

func entry(userID string, skills []string, hours float64) models.Entry {
	return models.Entry{
		UserID:     userID,
		Skills:     skills,
		HoursSpent: models.Hours(hours),
	}
}

func TestSummarize_DashboardScenario(t *testing.T) {
	entries := []models.Entry{
		entry("u1", []string{"React"}, 3),
		entry("u2", []string{"React"}, 5),
		entry("u1", []string{"Go"}, 2),
	}

	rep := report.Summarize(entries, "u1", nil)

	if rep.Viewer.Count != 2 || rep.Viewer.TotalHours != 5 {
		t.Fatalf("unexpected viewer totals: %+v", rep.Viewer)
	}
	if rep.Others.Count != 1 || rep.Others.TotalHours != 5 || rep.Others.AvgHours != 5 {
		t.Fatalf("unexpected others totals: %+v", rep.Others)
	}
	if len(rep.Skills) != 2 {
		t.Fatalf("expected 2 skill rows, got %d", len(rep.Skills))
	}

	react := rep.Skills[0]
	if react.Skill != "React" || react.YourHours != 3 || react.OthersAverage != "5.0h" {
		t.Fatalf("unexpected React row: %+v", react)
	}
	goRow := rep.Skills[1]
	if goRow.Skill != "Go" || goRow.YourHours != 2 || goRow.OthersAverage != "0.0h" {
		t.Fatalf("unexpected Go row: %+v", goRow)
	}
}

func TestSummarize_CountsPartitionInput(t *testing.T) {
	entries := []models.Entry{
		entry("u1", []string{"Go"}, 1),
		entry("u2", []string{"Go"}, 2),
		entry("u3", nil, 3),
		entry("u1", []string{"Go", "SQL"}, 0.5),
	}

	rep := report.Summarize(entries, "u1", nil)
	if rep.Viewer.Count+rep.Others.Count != len(entries) {
		t.Fatalf("viewer %d + others %d != %d entries", rep.Viewer.Count, rep.Others.Count, len(entries))
	}
}

func TestSummarize_EmptyInput(t *testing.T) {
	rep := report.Summarize(nil, "u1", nil)
	if rep.Viewer.Count != 0 || rep.Others.Count != 0 || rep.Others.AvgHours != 0 {
		t.Fatalf("unexpected totals for empty input: %+v", rep)
	}
	if len(rep.Skills) != 0 {
		t.Fatalf("expected no skill rows, got %d", len(rep.Skills))
	}
}

func TestSummarize_AvgHoursRounded(t *testing.T) {
	entries := []models.Entry{
		entry("u2", nil, 2),
		entry("u2", nil, 3),
	}
	rep := report.Summarize(entries, "u1", nil)
	// 5 hours over 2 entries rounds to 3, not truncates to 2
	if rep.Others.AvgHours != 3 {
		t.Fatalf("expected avg 3, got %d", rep.Others.AvgHours)
	}
}

func TestSummarize_FirstOccurrenceOrder(t *testing.T) {
	entries := []models.Entry{
		entry("u1", []string{"Go"}, 1),
		entry("u2", []string{"Rust"}, 1),
		entry("u3", []string{"Go"}, 1),
	}

	rep := report.Summarize(entries, "u1", nil)
	got := make([]string, len(rep.Skills))
	for i, s := range rep.Skills {
		got[i] = s.Skill
	}
	want := []string{"Go", "Rust"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
}

func TestSummarize_MultiSkillEntryContributesToEachGroup(t *testing.T) {
	entries := []models.Entry{
		entry("u1", []string{"Go", "SQL"}, 4),
	}

	rep := report.Summarize(entries, "u1", nil)
	if len(rep.Skills) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rep.Skills))
	}
	for _, s := range rep.Skills {
		if s.YourHours != 4 {
			t.Fatalf("expected 4 hours in group %s, got %v", s.Skill, s.YourHours)
		}
	}
	// totals count the entry once, not per tag
	if rep.Viewer.Count != 1 || rep.Viewer.TotalHours != 4 {
		t.Fatalf("unexpected viewer totals: %+v", rep.Viewer)
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	entries := []models.Entry{
		entry("u1", []string{"Go"}, 1.5),
		entry("u2", []string{"Go"}, 2.5),
		entry("u2", []string{"Rust"}, 3),
	}

	first := report.Summarize(entries, "u1", nil)
	second := report.Summarize(entries, "u1", nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summaries differ between runs:\n%+v\n%+v", first, second)
	}
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	entries := []models.Entry{
		entry("u1", []string{"Go"}, 1),
		entry("u2", []string{"Rust"}, 2),
	}
	snapshot := make([]models.Entry, len(entries))
	copy(snapshot, entries)

	_ = report.Summarize(entries, "u1", nil)

	if !reflect.DeepEqual(entries, snapshot) {
		t.Fatalf("input entries mutated by Summarize")
	}
}

func TestSummarize_MalformedHoursCountZeroAndLog(t *testing.T) {
	bad := entry("u2", []string{"Go"}, 0)
	bad.HoursSpent = models.Hours(math.NaN())

	entries := []models.Entry{
		entry("u1", []string{"Go"}, 2),
		bad,
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	rep := report.Summarize(entries, "u1", logger)

	// the malformed entry still counts as a session, but adds no hours
	if rep.Others.Count != 1 || rep.Others.TotalHours != 0 {
		t.Fatalf("unexpected others totals: %+v", rep.Others)
	}
	goRow := rep.Skills[0]
	if goRow.OthersHours != 0 || goRow.OthersSessionCount != 1 || goRow.OthersAverage != "0.0h" {
		t.Fatalf("unexpected Go row: %+v", goRow)
	}
	if !bytes.Contains(buf.Bytes(), []byte("invalid hours")) {
		t.Fatalf("expected malformed entry to be logged, got %s", buf.String())
	}
}

func TestSummarize_MalformedHoursFromJSON(t *testing.T) {
	// hoursSpent arriving as a string must not abort the decode nor the
	// aggregation
	var e models.Entry
	if err := e.HoursSpent.UnmarshalJSON([]byte(`"bad"`)); err != nil {
		t.Fatalf("tolerant decode returned error: %v", err)
	}
	e.UserID = "u2"
	e.Skills = models.StringList{"Go"}

	rep := report.Summarize([]models.Entry{e}, "u1", nil)
	if rep.Others.TotalHours != 0 {
		t.Fatalf("expected zero contribution, got %v", rep.Others.TotalHours)
	}
}
