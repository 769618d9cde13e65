package entities

// Origin records where a candidate record came from.
type Origin string

const (
	// OriginLive marks rows read from the operator's own database.
	OriginLive Origin = "live"
	// OriginSynthetic marks records from the static fallback pool.
	OriginSynthetic Origin = "synthetic"
)

// IsLive reports whether the candidate is listed directly on the platform.
func (o Origin) IsLive() bool {
	return o == OriginLive
}
