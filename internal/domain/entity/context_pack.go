package entity

// ContextPack is the source of the fixed context block appended to every prompt.
type ContextPack struct {
	Name           string           `yaml:"name"`
	Instructions   string           `yaml:"instructions"`
	ResponseFormat string           `yaml:"response_format"`
	Assumptions    []string         `yaml:"assumptions"`
	Factors        []EmissionFactor `yaml:"emission_factors"`
}

// EmissionFactor is one row of reference data: kg CO2e emitted per unit of activity.
type EmissionFactor struct {
	Category      string  `yaml:"category"`
	Unit          string  `yaml:"unit"`
	KgCO2ePerUnit float64 `yaml:"kg_co2e_per_unit"`
	Notes         string  `yaml:"notes,omitempty"`
}
