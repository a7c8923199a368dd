package options

// Sample returns the built-in map used when no option file is configured:
// brewery chains mapped to their taproom locations.
func Sample() *Map {
	m := NewMap()
	m.Put("Stout", NewSet(
		Option{Value: "hollywood", Label: "Hollywood"},
		Option{Value: "pasadena", Label: "Pasadena"},
		Option{Value: "santa-monica", Label: "Santa Monica"},
		Option{Value: "studio-city", Label: "Studio City"},
	))
	m.Put("Ball and Chain", NewSet(
		Option{Value: "little-havana", Label: "Little Havana"},
		Option{Value: "wynwood", Label: "Wynwood"},
	))
	return m
}
