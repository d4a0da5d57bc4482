// Package calendar arranges events into days and months and exports them as
// iCalendar feeds.
package calendar

import (
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

const dateLayout = "2006-01-02"

// GroupByDate groups events whose date strings are equal, in the order each
// date first appears.
func GroupByDate(events []model.Event) []model.CalendarDay {
	idx := make(map[string]int)
	var days []model.CalendarDay
	for _, e := range events {
		i, ok := idx[e.Date]
		if !ok {
			i = len(days)
			idx[e.Date] = i
			days = append(days, model.CalendarDay{Date: e.Date})
		}
		days[i].Events = append(days[i].Events, e)
	}
	return days
}

// Month lays out year/month with one leading blank cell per weekday before
// the 1st, then one cell per day holding that day's events.
func Month(year int, month time.Month, events []model.Event) model.MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	byDate := make(map[string][]model.Event)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	g := model.MonthGrid{
		Year:  year,
		Month: int(month),
		Title: first.Format("January 2006"),
	}
	for i := 0; i < int(first.Weekday()); i++ {
		g.Cells = append(g.Cells, model.CalendarCell{Events: []model.Event{}})
	}
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		evs := byDate[key]
		if evs == nil {
			evs = []model.Event{}
		}
		g.Cells = append(g.Cells, model.CalendarCell{Date: key, Day: d.Day(), Events: evs})
	}
	return g
}

// MonthRange returns the first and last date of year/month as YYYY-MM-DD.
func MonthRange(year int, month time.Month) (from, to string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first.Format(dateLayout), first.AddDate(0, 1, -1).Format(dateLayout)
}

// CategoryColor names the badge color for a category.
func CategoryColor(category string) string {
	switch category {
	case "technical":
		return "blue"
	case "cultural":
		return "purple"
	case "sports":
		return "green"
	case "academic":
		return "orange"
	}
	return "gray"
}
