// internal/models/slots.go
package models

// Enumerated slot values. Stored as strings so they round-trip through
// JSON and the pricing document unchanged. The empty string means "unset".
type (
	Format        string
	Platform      string
	Bundle        string
	AssetWindow   string
	GencodeWindow string
)

const (
	FormatA Format = "A"
	FormatB Format = "B"

	PlatformIG   Platform = "ig"
	PlatformTT   Platform = "tt"
	PlatformDual Platform = "dual"

	BundleSingle Bundle = "single"
	BundleOf3    Bundle = "bundle3"

	Asset1M        AssetWindow = "1m"
	Asset3M        AssetWindow = "3m"
	Asset6M        AssetWindow = "6m"
	AssetPermanent AssetWindow = "permanent"

	Gencode30D  GencodeWindow = "30d"
	Gencode90D  GencodeWindow = "90d"
	Gencode180D GencodeWindow = "180d"
	// Gencode37D displays as its own window but prices as 30d (free).
	Gencode37D GencodeWindow = "37d"
)

// SlotSet holds every structured field extracted from one message. Each
// field is derived from an independent pattern match; no field depends on
// another having been set, except Bundle which defaults to single when no
// bundle pattern matched.
type SlotSet struct {
	Contact bool `json:"contact,omitempty"`
	Notify  bool `json:"notify,omitempty"`

	Format   Format   `json:"format,omitempty"`
	Platform Platform `json:"platform,omitempty"`
	Bundle   Bundle   `json:"bundle,omitempty"`

	Health  bool          `json:"health,omitempty"`
	Asset   AssetWindow   `json:"asset,omitempty"`
	Gencode GencodeWindow `json:"gencode,omitempty"`

	// ExclusivityMonths is nil when the exclusivity keyword carried no
	// trailing number. The raw extracted value is preserved here; clamping
	// to the configured maximum happens at quote time only.
	ExclusivityMonths *int `json:"exclusivityMonths,omitempty"`

	Rush    bool `json:"rush,omitempty"`
	PerLine bool `json:"perLine,omitempty"`

	Brand  string `json:"brand,omitempty"`
	Budget string `json:"budget,omitempty"`

	// Coarse is caller-supplied, never extracted: it requests a padded
	// low/high range instead of an exact number.
	Coarse bool `json:"coarse,omitempty"`
}

// ExclusivityOrZero returns the extracted exclusivity months, or 0 when unset.
func (s SlotSet) ExclusivityOrZero() int {
	if s.ExclusivityMonths == nil {
		return 0
	}
	return *s.ExclusivityMonths
}
