package alerts

import (
	"net/url"
	"sort"
	"strings"
)

// LocationInfo is the display enrichment attached to a raw feed location.
// Resolve always returns a usable value, guessing when the input is unknown.
type LocationInfo struct {
	Name           string
	District       string
	ShelterSeconds int
	Population     int
	Zone           string
	MapLink        string
}

type locationRecord struct {
	district       string
	shelterSeconds int
	population     int
	zone           string
}

// Static table keyed by canonical location name. Shelter times follow the
// official zone guidance; populations are rounded census figures used for
// display only.
var locationTable = map[string]locationRecord{
	"תל אביב":      {district: "דן", shelterSeconds: 90, population: 467000, zone: "מרכז"},
	"ירושלים":      {district: "ירושלים", shelterSeconds: 90, population: 966000, zone: "ירושלים"},
	"חיפה":         {district: "חיפה", shelterSeconds: 60, population: 285000, zone: "צפון"},
	"באר שבע":      {district: "באר שבע", shelterSeconds: 60, population: 209000, zone: "דרום"},
	"אשקלון":       {district: "לכיש", shelterSeconds: 30, population: 145000, zone: "דרום"},
	"אשדוד":        {district: "לכיש", shelterSeconds: 45, population: 225000, zone: "דרום"},
	"שדרות":        {district: "עוטף עזה", shelterSeconds: 15, population: 28000, zone: "דרום"},
	"נתיבות":       {district: "עוטף עזה", shelterSeconds: 15, population: 43000, zone: "דרום"},
	"אופקים":       {district: "מערב הנגב", shelterSeconds: 30, population: 32000, zone: "דרום"},
	"נתניה":        {district: "שרון", shelterSeconds: 90, population: 221000, zone: "מרכז"},
	"חולון":        {district: "דן", shelterSeconds: 90, population: 196000, zone: "מרכז"},
	"ראשון לציון":  {district: "דן", shelterSeconds: 90, population: 254000, zone: "מרכז"},
	"רחובות":       {district: "שפלה", shelterSeconds: 90, population: 144000, zone: "מרכז"},
	"נהריה":        {district: "גליל מערבי", shelterSeconds: 30, population: 59000, zone: "צפון"},
	"קריית שמונה":  {district: "גליל עליון", shelterSeconds: 0, population: 23000, zone: "צפון"},
	"צפת":          {district: "גליל עליון", shelterSeconds: 30, population: 38000, zone: "צפון"},
	"טבריה":        {district: "גליל תחתון", shelterSeconds: 60, population: 45000, zone: "צפון"},
	"עכו":          {district: "גליל מערבי", shelterSeconds: 30, population: 49000, zone: "צפון"},
	"אילת":         {district: "אילת", shelterSeconds: 90, population: 53000, zone: "דרום"},
	"מטולה":        {district: "גליל עליון", shelterSeconds: 0, population: 2000, zone: "צפון"},
}

// Canonical names in sorted order, so partial matching resolves the same way
// on every run.
var locationNames = func() []string {
	names := make([]string, 0, len(locationTable))
	for name := range locationTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// Locality patterns for free-text inputs that never match a canonical name,
// e.g. kibbutz or moshav names reported under their regional council.
var areaPatterns = []struct {
	pattern  string
	district string
	zone     string
	shelter  int
}{
	{pattern: "עוטף עזה", district: "עוטף עזה", zone: "דרום", shelter: 15},
	{pattern: "שער הנגב", district: "עוטף עזה", zone: "דרום", shelter: 15},
	{pattern: "אשכול", district: "עוטף עזה", zone: "דרום", shelter: 15},
	{pattern: "חוף אשקלון", district: "לכיש", zone: "דרום", shelter: 30},
	{pattern: "קריית", district: "חיפה והקריות", zone: "צפון", shelter: 60},
	{pattern: "גליל", district: "גליל", zone: "צפון", shelter: 30},
	{pattern: "גולן", district: "רמת הגולן", zone: "צפון", shelter: 30},
	{pattern: "ערבה", district: "ערבה", zone: "דרום", shelter: 90},
	{pattern: "שומרון", district: "שומרון", zone: "יהודה ושומרון", shelter: 90},
}

const (
	unknownAreaName    = "אזור לא מזוהה"
	unknownDistrict    = "לא ידוע"
	defaultShelterSecs = 90
	unrecognizedZone   = "לא ידוע"
)

// Resolve maps a raw feed location string to display data. It never fails:
// exact match first, then substring containment in either direction, then
// the curated area patterns, then a generic result with a maps search link
// built from the raw text.
func Resolve(raw string) LocationInfo {
	clean := strings.Join(strings.Fields(raw), " ")

	if clean != "" {
		if record, ok := locationTable[clean]; ok {
			return record.info(clean)
		}

		for _, name := range locationNames {
			if strings.Contains(clean, name) || strings.Contains(name, clean) {
				return locationTable[name].info(name)
			}
		}

		for _, area := range areaPatterns {
			if strings.Contains(clean, area.pattern) {
				return LocationInfo{
					Name:           clean,
					District:       area.district,
					ShelterSeconds: area.shelter,
					Zone:           area.zone,
					MapLink:        mapSearchLink(clean),
				}
			}
		}
	}

	name := clean
	if name == "" {
		name = unknownAreaName
	}
	return LocationInfo{
		Name:           name,
		District:       unknownDistrict,
		ShelterSeconds: defaultShelterSecs,
		Zone:           unrecognizedZone,
		MapLink:        mapSearchLink(name),
	}
}

func (r locationRecord) info(name string) LocationInfo {
	return LocationInfo{
		Name:           name,
		District:       r.district,
		ShelterSeconds: r.shelterSeconds,
		Population:     r.population,
		Zone:           r.zone,
		MapLink:        mapSearchLink(name),
	}
}

func mapSearchLink(query string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}
