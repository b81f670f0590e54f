package services

import (
	"sort"
	"strings"
	"time"

	"lexschedule-backend/models"
	"lexschedule-backend/utils"
)

// Tab identifies which screen of the app a derived view is computed for.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabCalendar  Tab = "calendar"
	TabHistory   Tab = "history"
)

// Filter categories that are not case-group labels.
const (
	FilterAll   = "All"
	FilterToday = "Today"
)

// Selection is the transient UI state a derived view depends on. It is passed
// in explicitly so FilterAndSort stays a pure function of (records, selection).
type Selection struct {
	Tab            Tab
	SearchQuery    string
	FilterCategory string
	SelectedDate   *time.Time
}

// FilterAndSort derives the exact ordered sequence to render for the given
// selection:
//
//  1. history sees the entire collection, every other tab only active records
//  2. search matches the query as a substring of client name or file number
//  3. the category filter is skipped on the calendar tab
//  4. stable ascending sort by date
//  5. the calendar tab is further restricted to the selected day
//
// Search is deliberately case-sensitive with no normalization; see DESIGN.md.
func FilterAndSort(records []models.Appointment, sel Selection, now time.Time) []models.Appointment {
	filtered := make([]models.Appointment, 0, len(records))
	for _, appt := range records {
		if sel.Tab != TabHistory && appt.Archived {
			continue
		}
		if !matchesQuery(appt, sel.SearchQuery) {
			continue
		}
		if sel.Tab != TabCalendar && !matchesCategory(appt, sel.FilterCategory, now) {
			continue
		}
		filtered = append(filtered, appt)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})

	if sel.Tab == TabCalendar {
		return onSelectedDate(filtered, sel.SelectedDate)
	}
	return filtered
}

func matchesQuery(appt models.Appointment, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(appt.ClientName, query) {
		return true
	}
	return appt.FileNumber != "" && strings.Contains(appt.FileNumber, query)
}

func matchesCategory(appt models.Appointment, category string, now time.Time) bool {
	switch category {
	case "", FilterAll:
		return true
	case FilterToday:
		return utils.SameDay(now, appt.Date)
	}
	group, ok := models.GroupByLabel(category)
	if !ok {
		return false
	}
	for _, t := range group.Types {
		if appt.CaseType == t {
			return true
		}
	}
	return false
}

// onSelectedDate keeps only records scheduled on the selected calendar date.
// With no selected date the calendar list shows nothing.
func onSelectedDate(sorted []models.Appointment, selected *time.Time) []models.Appointment {
	if selected == nil {
		return []models.Appointment{}
	}
	out := make([]models.Appointment, 0, len(sorted))
	for _, appt := range sorted {
		if utils.SameDay(*selected, appt.Date) {
			out = append(out, appt)
		}
	}
	return out
}
