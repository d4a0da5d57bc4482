package calendar

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

// ProductID identifies the feed generator.
const ProductID = "-//Campus Event Navigator//Events//EN"

// DefaultDuration is assumed for events, which carry only a start time.
const DefaultDuration = 2 * time.Hour

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

// WriteICS writes events as an iCalendar feed. Event times are local to loc.
// Events with an unparseable date are skipped; an unparseable time makes the
// event all-day.
func WriteICS(w io.Writer, name string, events []model.Event, loc *time.Location, now time.Time) error {
	bw := bufio.NewWriter(w)
	line := func(format string, args ...any) {
		fmt.Fprintf(bw, format+"\r\n", args...)
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:%s", ProductID)
	line("METHOD:PUBLISH")
	line("CALSCALE:GREGORIAN")
	line("X-WR-CALNAME:%s", icsEscaper.Replace(name))
	line("X-WR-TIMEZONE:%s", loc.String())
	line("X-PUBLISHED-TTL:PT1H")

	stamp := now.UTC().Format("20060102T150405Z")
	for _, e := range events {
		day, err := time.ParseInLocation(dateLayout, e.Date, loc)
		if err != nil {
			continue
		}
		line("BEGIN:VEVENT")
		line("UID:%s@campus-events", e.ID)
		line("DTSTAMP:%s", stamp)
		if start, ok := startTime(day, e.Time, loc); ok {
			line("DTSTART:%s", start.UTC().Format("20060102T150405Z"))
			line("DTEND:%s", start.Add(DefaultDuration).UTC().Format("20060102T150405Z"))
		} else {
			line("DTSTART;VALUE=DATE:%s", day.Format("20060102"))
			line("DTEND;VALUE=DATE:%s", day.AddDate(0, 0, 1).Format("20060102"))
		}
		line("SUMMARY:%s", icsEscaper.Replace(e.Title))
		if e.Description != "" {
			line("DESCRIPTION:%s", icsEscaper.Replace(e.Description))
		}
		where := e.Venue
		if e.LocationAddress != nil && *e.LocationAddress != "" {
			where = *e.LocationAddress
		}
		line("LOCATION:%s", icsEscaper.Replace(where))
		if e.LocationLat != nil && e.LocationLng != nil {
			line("GEO:%f;%f", *e.LocationLat, *e.LocationLng)
		}
		line("CATEGORIES:%s", strings.ToUpper(e.Category))
		if e.IsExpired {
			line("STATUS:CANCELLED")
		} else {
			line("STATUS:CONFIRMED")
		}
		line("END:VEVENT")
	}
	line("END:VCALENDAR")
	return bw.Flush()
}

func startTime(day time.Time, clock string, loc *time.Location) (time.Time, bool) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, strings.TrimSpace(clock)); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), true
		}
	}
	return time.Time{}, false
}
