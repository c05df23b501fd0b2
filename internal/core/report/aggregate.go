package report

import (
	"math"
	"sort"
	"time"

	"taskonaut/internal/core/model"
)

// DayStatus classifies a day against its target hours.
type DayStatus string

const (
	StatusNoWork        DayStatus = "no work"
	StatusTargetReached DayStatus = "target reached"
	StatusBelowTarget   DayStatus = "below target"
)

// DailySummary is one row of the daily evaluation.
type DailySummary struct {
	Date        time.Time
	StartTime   string
	EndTime     string
	WorkHours   float64
	BreakHours  float64
	TotalHours  float64
	TargetHours float64
	Difference  float64
	Status      DayStatus
}

// MonthlyRow is one row of the monthly project/task rollup.
type MonthlyRow struct {
	Month    string
	Project  string
	Task     string
	Hours    float64
	Sessions int
}

// SessionRow is one row of the flat session listing. Day totals are set
// only on the day's first chronological row.
type SessionRow struct {
	Date     time.Time
	Start    string
	End      string
	Hours    float64
	Project  string
	Task     string
	Note     string
	Type     model.SessionType
	DayWork  *float64
	DayBreak *float64
	DayTotal *float64
}

const clockLayout = "15:04:05"

// DailySummaries derives the per-day evaluation from closed sessions.
// Rows are sorted by date ascending.
func DailySummaries(sessions []model.Session, targets model.WorkHours) []DailySummary {
	byDate := groupClosedByDate(sessions)

	summaries := make([]DailySummary, 0, len(byDate))
	for _, daySessions := range byDate {
		sort.Slice(daySessions, func(i, j int) bool {
			return daySessions[i].StartTime.Before(daySessions[j].StartTime)
		})

		var workHours, breakHours float64
		for _, session := range daySessions {
			if session.IsBreak() {
				breakHours += session.Hours()
			} else {
				workHours += session.Hours()
			}
		}

		date := daySessions[0].Date()
		target := targets.TargetHours(date.Weekday())
		last := daySessions[len(daySessions)-1]

		summaries = append(summaries, DailySummary{
			Date:        date,
			StartTime:   daySessions[0].StartTime.Format(clockLayout),
			EndTime:     last.EndTime.Format(clockLayout),
			WorkHours:   round2(workHours),
			BreakHours:  round2(breakHours),
			TotalHours:  round2(workHours + breakHours),
			TargetHours: target,
			Difference:  round2(workHours - target),
			Status:      classifyDay(workHours, target),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date.Before(summaries[j].Date)
	})
	return summaries
}

func classifyDay(workHours, target float64) DayStatus {
	switch {
	case workHours == 0:
		return StatusNoWork
	case workHours >= target:
		return StatusTargetReached
	default:
		return StatusBelowTarget
	}
}

// MonthlyRollup groups closed work sessions by month, project and task.
// Rows are sorted by month ascending, then hours descending.
func MonthlyRollup(sessions []model.Session) []MonthlyRow {
	type key struct {
		month   string
		project string
		task    string
	}
	totals := map[key]*MonthlyRow{}

	for _, session := range sessions {
		if !session.Closed() || session.IsBreak() {
			continue
		}
		project := session.Project
		if project == "" {
			project = "General"
		}
		task := session.Task
		if task == "" {
			task = "No Task"
		}
		k := key{month: session.StartTime.Format("2006-01"), project: project, task: task}
		row, ok := totals[k]
		if !ok {
			row = &MonthlyRow{Month: k.month, Project: project, Task: task}
			totals[k] = row
		}
		row.Hours += session.Hours()
		row.Sessions++
	}

	rows := make([]MonthlyRow, 0, len(totals))
	for _, row := range totals {
		row.Hours = round2(row.Hours)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		if rows[i].Hours != rows[j].Hours {
			return rows[i].Hours > rows[j].Hours
		}
		if rows[i].Project != rows[j].Project {
			return rows[i].Project < rows[j].Project
		}
		return rows[i].Task < rows[j].Task
	})
	return rows
}

// SessionRows flattens closed sessions into listing rows, attaching the
// day totals to each day's first chronological row.
func SessionRows(sessions []model.Session) []SessionRow {
	closed := make([]model.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.Closed() {
			closed = append(closed, session)
		}
	}
	sort.Slice(closed, func(i, j int) bool {
		return closed[i].StartTime.Before(closed[j].StartTime)
	})

	type dayTotals struct {
		work, brk float64
	}
	totals := map[time.Time]*dayTotals{}
	for _, session := range closed {
		day, ok := totals[session.Date()]
		if !ok {
			day = &dayTotals{}
			totals[session.Date()] = day
		}
		if session.IsBreak() {
			day.brk += session.Hours()
		} else {
			day.work += session.Hours()
		}
	}

	seen := map[time.Time]bool{}
	rows := make([]SessionRow, 0, len(closed))
	for _, session := range closed {
		row := SessionRow{
			Date:    session.Date(),
			Start:   session.StartTime.Format(clockLayout),
			End:     session.EndTime.Format(clockLayout),
			Hours:   round2(session.Hours()),
			Project: session.Project,
			Task:    session.Task,
			Note:    session.Note,
			Type:    session.Type,
		}
		if !seen[session.Date()] {
			seen[session.Date()] = true
			day := totals[session.Date()]
			work := round2(day.work)
			brk := round2(day.brk)
			total := round2(day.work + day.brk)
			row.DayWork = &work
			row.DayBreak = &brk
			row.DayTotal = &total
		}
		rows = append(rows, row)
	}
	return rows
}

func groupClosedByDate(sessions []model.Session) map[time.Time][]model.Session {
	byDate := map[time.Time][]model.Session{}
	for _, session := range sessions {
		if !session.Closed() {
			continue
		}
		byDate[session.Date()] = append(byDate[session.Date()], session)
	}
	return byDate
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
