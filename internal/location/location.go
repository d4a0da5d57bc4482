// Package location is the catalog of campus venues and the map links built
// from them.
package location

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

const cityAddress = "KIIT University, Patia, Bhubaneswar, Odisha 751024"

func campus(id, name string, lat, lng float64, description, category string) model.Location {
	return model.Location{
		ID:          id,
		Name:        name,
		Address:     name + ", " + cityAddress,
		Coordinates: &model.Coordinates{Lat: lat, Lng: lng},
		Description: description,
		Category:    category,
	}
}

var catalog = func() []model.Location {
	locs := []model.Location{
		campus("kiit_main_auditorium", "KIIT Main Auditorium", 20.3525, 85.8179, "Main auditorium for large events and conferences", "venue"),
		campus("kiit_convention_centre", "KIIT Convention Centre", 20.3530, 85.8185, "Convention center for cultural events and gatherings", "venue"),
		campus("kiit_sports_complex", "KIIT Sports Complex", 20.3510, 85.8165, "Sports complex with multiple courts and fields", "sports"),
		campus("kiit_library", "KIIT Central Library", 20.3520, 85.8175, "Central library for academic and literary events", "academic"),
		campus("kiit_school_cse", "KIIT School of Computer Engineering", 20.3515, 85.8180, "Computer Science and Engineering building", "academic"),
		campus("kiit_school_management", "KIIT School of Management", 20.3535, 85.8190, "Business School and Management building", "academic"),
		campus("kiit_innovation_lab", "KIIT Innovation Lab", 20.3528, 85.8182, "Innovation and research laboratory", "technical"),
		campus("kiit_student_activity", "KIIT Student Activity Centre", 20.3518, 85.8172, "Student activity center for clubs and societies", "venue"),
		campus("kiit_auditorium_campus7", "KIIT Auditorium - Campus 7", 20.3540, 85.8195, "Auditorium in Campus 7", "venue"),
		campus("kiit_main_gate", "KIIT Main Gate", 20.3500, 85.8160, "Main entrance to KIIT University", "landmark"),
		campus("kiit_cafeteria", "KIIT Cafeteria", 20.3522, 85.8178, "Main cafeteria and food court", "venue"),
		campus("kiit_hostel_block", "KIIT Hostel Block", 20.3505, 85.8165, "Student hostel area", "residential"),
		campus("kiit_admin_building", "KIIT Administrative Building", 20.3527, 85.8185, "Main administrative building", "administrative"),
	}
	// These two addresses do not follow the "<name>, <campus>" shape.
	locs[8].Address = "KIIT Auditorium, Campus 7, " + cityAddress
	locs[9].Address = "KIIT University Main Gate, Patia, Bhubaneswar, Odisha 751024"
	return locs
}()

// All returns a copy of the catalog.
func All() []model.Location {
	out := make([]model.Location, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks a location up by id.
func ByID(id string) (model.Location, bool) {
	for _, l := range catalog {
		if l.ID == id {
			return l, true
		}
	}
	return model.Location{}, false
}

// ByCategory returns the locations in category.
func ByCategory(category string) []model.Location {
	out := []model.Location{}
	for _, l := range catalog {
		if l.Category == category {
			out = append(out, l)
		}
	}
	return out
}

// Search matches q case-insensitively against name, address and description.
func Search(q string) []model.Location {
	q = strings.ToLower(q)
	out := []model.Location{}
	for _, l := range catalog {
		if strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Address), q) ||
			strings.Contains(strings.ToLower(l.Description), q) {
			out = append(out, l)
		}
	}
	return out
}

const (
	mapsBase       = "https://www.google.com/maps"
	directionsBase = mapsBase + "/dir/?api=1"
)

// escape percent-encodes s the way browsers encode URI components.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func point(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

// SearchURL links to a map search for query.
func SearchURL(query string) string {
	if query == "" {
		return ""
	}
	return mapsBase + "/search/?api=1&query=" + escape(query)
}

// MapURL links to the location on a map, by coordinates when known.
func MapURL(l model.Location) string {
	if l.Coordinates != nil {
		return mapsBase + "?q=" + point(l.Coordinates.Lat, l.Coordinates.Lng)
	}
	return SearchURL(l.Address)
}

func directions(dest, origin string) string {
	if origin != "" {
		return directionsBase + "&origin=" + escape(origin) + "&destination=" + dest
	}
	return directionsBase + "&destination=" + dest
}

// DirectionsURL links to directions to l. An empty origin lets the map use
// the viewer's position.
func DirectionsURL(l model.Location, origin string) string {
	if l.Coordinates != nil {
		return directions(point(l.Coordinates.Lat, l.Coordinates.Lng), origin)
	}
	return directions(escape(l.Address), origin)
}

// EventDirectionsURL links to directions to an event, preferring its pinned
// coordinates, then its address, then its venue.
func EventDirectionsURL(e model.Event, origin string) string {
	if e.LocationLat != nil && e.LocationLng != nil {
		return directions(point(*e.LocationLat, *e.LocationLng), origin)
	}
	dest := e.Venue
	if e.LocationAddress != nil && *e.LocationAddress != "" {
		dest = *e.LocationAddress
	}
	if dest == "" {
		return ""
	}
	return directions(escape(dest), origin)
}
