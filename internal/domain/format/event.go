package format

// eventOrder lists known event codes in display order.
var eventOrder = []string{
	"333", "222", "444", "555", "666", "777",
	"333bf", "333fm", "333oh", "clock", "minx", "pyram", "skewb", "sq1",
	"444bf", "555bf", "333mbf", "333mbo", "magic", "mmagic", "333ft",
}

var eventDisplayNames = map[string]string{
	"333":    "3x3",
	"222":    "2x2",
	"444":    "4x4",
	"555":    "5x5",
	"666":    "6x6",
	"777":    "7x7",
	"333bf":  "3x3 Blindfolded",
	"333fm":  "3x3 Fewest Moves",
	"333oh":  "3x3 One-Handed",
	"clock":  "Clock",
	"minx":   "Megaminx",
	"pyram":  "Pyraminx",
	"skewb":  "Skewb",
	"sq1":    "Square-1",
	"444bf":  "4x4 Blindfolded",
	"555bf":  "5x5 Blindfolded",
	"333mbf": "3x3 Multi-Blind",
	"333mbo": "3x3 Multi-Blind Old Style",
	"magic":  "Magic",
	"mmagic": "Master Magic",
	"333ft":  "3x3 With Feet",
}

// FormatEventName returns the display name for eventID. Unknown codes are
// returned unchanged.
func FormatEventName(eventID string) string {
	if name, ok := eventDisplayNames[eventID]; ok {
		return name
	}
	return eventID
}

// KnownEvents returns the event codes that have a display name.
func KnownEvents() []string {
	out := make([]string, len(eventOrder))
	copy(out, eventOrder)
	return out
}
