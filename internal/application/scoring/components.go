package scoring

// LodgingComponent identifies one term of the weighted lodging score.
type LodgingComponent int

const (
	LodgingInterests LodgingComponent = iota
	LodgingStyle
	LodgingPrice
	LodgingAmenities
	LodgingLocation
	LodgingCapacity
	LodgingRating
	LodgingPopularity
	LodgingOrigin
)

// NumLodgingComponents is the arity every lodging weight vector must have.
const NumLodgingComponents = 9

var lodgingComponentNames = [NumLodgingComponents]string{
	"interests", "style", "price", "amenities", "location", "capacity", "rating", "popularity", "origin",
}

func (c LodgingComponent) String() string {
	if c < 0 || int(c) >= NumLodgingComponents {
		return "unknown"
	}
	return lodgingComponentNames[c]
}

// GuideComponent identifies one point category of the guide score.
type GuideComponent int

const (
	GuideLocation GuideComponent = iota
	GuideLanguages
	GuideExpertise
	GuideGender
	GuidePopularity
	GuideRating
	GuidePrice
	GuideExperience
	GuideOrigin
)

const NumGuideComponents = 9

var guideComponentNames = [NumGuideComponents]string{
	"location", "languages", "expertise", "gender", "popularity", "rating", "price", "experience", "origin",
}

func (c GuideComponent) String() string {
	if c < 0 || int(c) >= NumGuideComponents {
		return "unknown"
	}
	return guideComponentNames[c]
}

// LodgingComponents is the per-candidate breakdown in weighted mode. Every
// value lies in [0,1]; RawTotal is the weighted sum before clamping.
type LodgingComponents struct {
	Values      [NumLodgingComponents]float64
	RawTotal    float64
	Denominator float64
}

func (c LodgingComponents) Get(k LodgingComponent) float64 {
	return c.Values[k]
}

// Breakdown returns the values keyed by component name.
func (c LodgingComponents) Breakdown() map[string]float64 {
	out := make(map[string]float64, NumLodgingComponents)
	for i, v := range c.Values {
		out[lodgingComponentNames[i]] = v
	}
	return out
}

// GuideComponents is the per-candidate breakdown in point mode.
type GuideComponents struct {
	Points    [NumGuideComponents]float64
	RawTotal  float64
	MaxPoints float64
}

func (c GuideComponents) Get(k GuideComponent) float64 {
	return c.Points[k]
}

// Breakdown returns the points keyed by component name.
func (c GuideComponents) Breakdown() map[string]float64 {
	out := make(map[string]float64, NumGuideComponents)
	for i, v := range c.Points {
		out[guideComponentNames[i]] = v
	}
	return out
}
