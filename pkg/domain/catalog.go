package domain

// CatalogEntry maps a specific family identifier to its semantic type and thresholds.
type CatalogEntry struct {
	Family      string  `json:"family" yaml:"family" mapstructure:"family"`
	Type        string  `json:"type" yaml:"type" mapstructure:"type"`
	MinLength   int     `json:"min_length" yaml:"min_length" mapstructure:"min_length"`
	MinBitscore float64 `json:"min_bitscore" yaml:"min_bitscore" mapstructure:"min_bitscore"`
}
