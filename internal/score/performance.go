package score

// PerformanceLevel buckets an accuracy percentage into the qualitative tier
// shown on the results and admin pages.
type PerformanceLevel struct {
	Level string
	Color string
}

func Performance(accuracy int) PerformanceLevel {
	switch {
	case accuracy >= 90:
		return PerformanceLevel{Level: "Excellent", Color: "green"}
	case accuracy >= 75:
		return PerformanceLevel{Level: "Good", Color: "blue"}
	case accuracy >= 60:
		return PerformanceLevel{Level: "Fair", Color: "yellow"}
	default:
		return PerformanceLevel{Level: "Needs Practice", Color: "orange"}
	}
}
