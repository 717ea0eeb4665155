// Package report turns a flat collection of practice entries into the
// per-viewer statistics shown on the dashboard. Everything here is a
// pure function of its inputs: no storage, no network, safe to re-run
// on every request.
package report

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/garnizeh/skilltrack/pkg/models"
)

// Totals are the viewer's own numbers.
type Totals struct {
	Count      int     `json:"count"`
	TotalHours float64 `json:"totalHours"`
}

// OthersTotals are the rest of the team's numbers. AvgHours is
// hours-per-entry rounded to the nearest integer, 0 when there are no
// entries from others.
type OthersTotals struct {
	Count      int     `json:"count"`
	TotalHours float64 `json:"totalHours"`
	AvgHours   int     `json:"avgHours"`
}

// SkillSummary is one row of the per-skill breakdown. OthersAverage is
// the display form of othersHours/othersSessions, one decimal place
// with an "h" suffix ("5.0h"); "0.0h" when nobody else logged the
// skill.
type SkillSummary struct {
	Skill              string  `json:"skill"`
	YourHours          float64 `json:"yourHours"`
	OthersHours        float64 `json:"othersHours"`
	OthersSessionCount int     `json:"othersSessionCount"`
	OthersAverage      string  `json:"othersAverage"`
}

type Report struct {
	Viewer Totals         `json:"submittedByYou"`
	Others OthersTotals   `json:"submittedByOthers"`
	Skills []SkillSummary `json:"skills"`
}

// Summarize aggregates entries for the given viewer. Skill rows appear
// in first-occurrence order of the skill name across the input, which
// keeps the output deterministic for a fixed input sequence. Entries
// with invalid hours contribute zero everywhere; they are logged, never
// fatal. A nil logger discards the diagnostics.
func Summarize(entries []models.Entry, viewerID string, logger *slog.Logger) Report {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var rep Report
	index := make(map[string]int)

	for _, e := range entries {
		hours := float64(e.HoursSpent)
		if !e.HoursSpent.Valid() {
			logger.Warn("entry has invalid hours, counting zero",
				slog.String("entry_id", e.ID),
				slog.String("user_id", e.UserID),
			)
			hours = 0
		}

		mine := e.UserID == viewerID
		if mine {
			rep.Viewer.Count++
			rep.Viewer.TotalHours += hours
		} else {
			rep.Others.Count++
			rep.Others.TotalHours += hours
		}

		// An entry contributes to one group per skill tag; entries with
		// no tags contribute to no group but still count in the totals.
		for _, skill := range e.Skills {
			i, ok := index[skill]
			if !ok {
				i = len(rep.Skills)
				index[skill] = i
				rep.Skills = append(rep.Skills, SkillSummary{Skill: skill})
			}
			if mine {
				rep.Skills[i].YourHours += hours
			} else {
				rep.Skills[i].OthersHours += hours
				rep.Skills[i].OthersSessionCount++
			}
		}
	}

	if rep.Others.Count > 0 {
		rep.Others.AvgHours = int(math.Round(rep.Others.TotalHours / float64(rep.Others.Count)))
	}

	for i := range rep.Skills {
		avg := 0.0
		if n := rep.Skills[i].OthersSessionCount; n > 0 {
			avg = rep.Skills[i].OthersHours / float64(n)
		}
		rep.Skills[i].OthersAverage = fmt.Sprintf("%.1fh", avg)
	}

	return rep
}
