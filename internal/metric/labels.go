package metric

// Shared labels for the recurring population-share comparison.
const (
	PopulationPctShortLabel = "% of population"
	PopulationPctTitle      = "Population share"
)
