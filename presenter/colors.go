package presenter

// Line colours for the Zürich municipal network (trams and trolleybuses).
// The table is data, not logic: lines not listed here fall back to the
// default white background and black text.

const (
	DefaultBackgroundColor = "#FFFFFF"
	DefaultTextColor       = "#000000"
)

type lineColor struct {
	background string
	text       string
}

var lineColors = map[string]lineColor{
	// Trams
	"2":  {"#EC1C24", "#FFFFFF"},
	"3":  {"#00A54F", "#FFFFFF"},
	"4":  {"#24338E", "#FFFFFF"},
	"5":  {"#8A5E3C", "#FFFFFF"},
	"6":  {"#CD7D2F", "#FFFFFF"},
	"7":  {"#231F20", "#FFFFFF"},
	"8":  {"#8BC53F", "#231F20"},
	"9":  {"#5B69AF", "#FFFFFF"},
	"10": {"#E65D9B", "#FFFFFF"},
	"11": {"#36A935", "#FFFFFF"},
	"12": {"#8EC8EC", "#231F20"},
	"13": {"#FFD403", "#231F20"},
	"14": {"#2CAAE2", "#FFFFFF"},
	"15": {"#CE0E2D", "#FFFFFF"},
	"17": {"#9E1F63", "#FFFFFF"},
	// Trolleybuses
	"31": {"#999B9E", "#FFFFFF"},
	"32": {"#999B9E", "#FFFFFF"},
	"33": {"#999B9E", "#FFFFFF"},
	"34": {"#999B9E", "#FFFFFF"},
	"46": {"#999B9E", "#FFFFFF"},
	"72": {"#999B9E", "#FFFFFF"},
}

// LineColors resolves the background and text colour for a line by exact
// match, defaulting to white on unmapped lines.
func LineColors(line string) (background string, text string) {
	if c, ok := lineColors[line]; ok {
		return c.background, c.text
	}
	return DefaultBackgroundColor, DefaultTextColor
}
