package models

// Feature kinds used inside a FeatureVector.
const (
	FeatureScalar = "scalar"
	FeatureSet    = "set"
	FeatureSpan   = "span"
)

// Feature is one normalized component of a scoring dimension. Scalars are
// already normalized to [0,1]; sets and spans are compared pairwise by the
// scorer. Present=false means the source attribute was missing and the
// scorer substitutes the neutral default.
type Feature struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Present bool     `json:"present"`
	Scalar  float64  `json:"scalar,omitempty"`
	Set     []string `json:"set,omitempty"`
	Span    Span     `json:"span,omitempty"`
}

// DimensionVector groups the features of one scoring dimension.
// Present=false means no attribute of the dimension was filled in at all;
// the scorer excludes the dimension and renormalizes the remaining weights.
// Confident is true only when every feature of the dimension is present.
type DimensionVector struct {
	Dimension string    `json:"dimension"`
	Present   bool      `json:"present"`
	Confident bool      `json:"confident"`
	Features  []Feature `json:"features"`
}

// FeatureVector is the cached, normalized representation of a profile used
// for scoring. Version mirrors the profile's AttrVersion; a stale vector is
// recomputed lazily on read.
type FeatureVector struct {
	ProfileID  string            `json:"profileId"`
	Version    int64             `json:"version"`
	Confident  bool              `json:"confident"`
	Dimensions []DimensionVector `json:"dimensions"`
}

// Dimension returns the named dimension vector, or nil if the extractor
// never produced it.
func (v *FeatureVector) Dimension(name string) *DimensionVector {
	for i := range v.Dimensions {
		if v.Dimensions[i].Dimension == name {
			return &v.Dimensions[i]
		}
	}
	return nil
}

// PresentDimensions counts dimensions with at least one filled attribute.
func (v *FeatureVector) PresentDimensions() int {
	n := 0
	for i := range v.Dimensions {
		if v.Dimensions[i].Present {
			n++
		}
	}
	return n
}
