package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"coliving_server/config"
	"coliving_server/models"
)

// Profile attribute names recognized by the extractor. Attributes are a
// closed set so the dimension mapping below stays exhaustive.
const (
	AttrBudget         = "budget"         // span, EUR/month
	AttrPreferredAreas = "preferredAreas" // set
	AttrSleepSchedule  = "sleepSchedule"  // category: early/moderate/late
	AttrCleanliness    = "cleanliness"    // number, 1-10
	AttrSmoking        = "smoking"        // category: yes/no
	AttrNoiseTolerance = "noiseTolerance" // number, 1-10
	AttrSocialEnergy   = "socialEnergy"   // number, 1-10
	AttrEventInterest  = "eventInterest"  // category: low/medium/high
	AttrGuestFrequency = "guestFrequency" // category: never/rarely/sometimes/often
	AttrPets           = "pets"           // category: yes/no
	AttrMoveInWindow   = "moveInWindow"   // span, days since epoch
	AttrLeaseDuration  = "leaseDuration"  // span, months
	AttrCoreValues     = "coreValues"     // set
	AttrDealBreakers   = "dealBreakers"   // set
)

var (
	sleepLevels = []string{"early", "moderate", "late"}
	eventLevels = []string{"low", "medium", "high"}
	guestLevels = []string{"never", "rarely", "sometimes", "often"}
	yesNoLevels = []string{"no", "yes"}
)

// FeatureService turns raw profiles into normalized feature vectors and
// keeps them in the injected cache.
type FeatureService struct {
	Profiles ProfileStore
	Cache    VectorCache
	Scoring  config.ScoringConfig
	Log      *zap.Logger
}

// VectorForProfile returns the feature vector for a profile, recomputing
// lazily when the cache misses or the profile's attributes changed.
func (fs *FeatureService) VectorForProfile(ctx context.Context, profileID string) (*models.FeatureVector, error) {
	profile, err := fs.Profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return fs.VectorFor(ctx, profile)
}

// VectorFor returns the vector for an already-loaded profile.
func (fs *FeatureService) VectorFor(ctx context.Context, profile *models.Profile) (*models.FeatureVector, error) {
	if fs.Cache != nil {
		cached, err := fs.Cache.Get(ctx, profile.ProfileID, profile.AttrVersion)
		if err != nil {
			fs.Log.Warn("vector cache read failed", zap.String("profileId", profile.ProfileID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	vector := fs.Extract(profile)

	if fs.Cache != nil {
		if err := fs.Cache.Set(ctx, vector); err != nil {
			// Cache write failures degrade to recomputation, never to a
			// user-visible error.
			fs.Log.Warn("vector cache write failed", zap.String("profileId", profile.ProfileID), zap.Error(err))
		}
	}
	return vector, nil
}

// Extract maps a profile's typed attributes onto the five scoring
// dimensions. Missing attributes yield absent features (the scorer
// substitutes the neutral default); a dimension with no attributes at all
// is marked not present and excluded from the weighted sum.
func (fs *FeatureService) Extract(profile *models.Profile) *models.FeatureVector {
	dims := []models.DimensionVector{
		fs.extractBudgetLocation(profile),
		fs.extractLifestyle(profile),
		fs.extractSocial(profile),
		fs.extractPractical(profile),
		fs.extractValues(profile),
	}

	confident := true
	for i := range dims {
		if !dims[i].Confident {
			confident = false
		}
	}

	return &models.FeatureVector{
		ProfileID:  profile.ProfileID,
		Version:    profile.AttrVersion,
		Confident:  confident,
		Dimensions: dims,
	}
}

func (fs *FeatureService) extractBudgetLocation(profile *models.Profile) models.DimensionVector {
	features := []models.Feature{
		spanFeature(profile, AttrBudget, 0, fs.Scoring.BudgetCeiling),
		setFeature(profile, AttrPreferredAreas),
	}
	return buildDimension(models.DimensionBudgetLocation, features)
}

func (fs *FeatureService) extractLifestyle(profile *models.Profile) models.DimensionVector {
	features := []models.Feature{
		ordinalFeature(profile, AttrSleepSchedule, sleepLevels),
		scaleFeature(profile, AttrCleanliness, 1, 10),
		ordinalFeature(profile, AttrSmoking, yesNoLevels),
		scaleFeature(profile, AttrNoiseTolerance, 1, 10),
	}
	return buildDimension(models.DimensionLifestyle, features)
}

func (fs *FeatureService) extractSocial(profile *models.Profile) models.DimensionVector {
	features := []models.Feature{
		scaleFeature(profile, AttrSocialEnergy, 1, 10),
		ordinalFeature(profile, AttrEventInterest, eventLevels),
		ordinalFeature(profile, AttrGuestFrequency, guestLevels),
	}
	return buildDimension(models.DimensionSocial, features)
}

func (fs *FeatureService) extractPractical(profile *models.Profile) models.DimensionVector {
	features := []models.Feature{
		ordinalFeature(profile, AttrPets, yesNoLevels),
		spanFeature(profile, AttrMoveInWindow, 0, 0),
		spanFeature(profile, AttrLeaseDuration, 0, 0),
	}
	return buildDimension(models.DimensionPractical, features)
}

func (fs *FeatureService) extractValues(profile *models.Profile) models.DimensionVector {
	features := []models.Feature{
		setFeature(profile, AttrCoreValues),
		setFeature(profile, AttrDealBreakers),
	}
	return buildDimension(models.DimensionValues, features)
}

func buildDimension(name string, features []models.Feature) models.DimensionVector {
	present := false
	confident := true
	for i := range features {
		if features[i].Present {
			present = true
		} else {
			confident = false
		}
	}
	return models.DimensionVector{
		Dimension: name,
		Present:   present,
		Confident: present && confident,
		Features:  features,
	}
}

// scaleFeature normalizes a numeric attribute on [lo,hi] to [0,1].
func scaleFeature(profile *models.Profile, name string, lo, hi float64) models.Feature {
	feature := models.Feature{Name: name, Kind: models.FeatureScalar}
	attr, ok := profile.Attr(name)
	if !ok || attr.Kind != models.AttrNumber {
		return feature
	}
	v := clamp((attr.Number - lo) / (hi - lo))
	feature.Present = true
	feature.Scalar = v
	return feature
}

// ordinalFeature maps a categorical attribute onto an evenly spaced [0,1]
// scale following the declared level order. Unknown categories are treated
// as absent, not as errors.
func ordinalFeature(profile *models.Profile, name string, levels []string) models.Feature {
	feature := models.Feature{Name: name, Kind: models.FeatureScalar}
	attr, ok := profile.Attr(name)
	if !ok || attr.Kind != models.AttrCategory {
		return feature
	}
	category := strings.ToLower(strings.TrimSpace(attr.Category))
	for i, level := range levels {
		if category == level {
			feature.Present = true
			if len(levels) > 1 {
				feature.Scalar = float64(i) / float64(len(levels)-1)
			}
			return feature
		}
	}
	return feature
}

// setFeature carries a set attribute through for Jaccard comparison,
// lowercased so overlap is case-insensitive.
func setFeature(profile *models.Profile, name string) models.Feature {
	feature := models.Feature{Name: name, Kind: models.FeatureSet}
	attr, ok := profile.Attr(name)
	if !ok || attr.Kind != models.AttrSet || len(attr.Set) == 0 {
		return feature
	}
	set := make([]string, 0, len(attr.Set))
	for _, v := range attr.Set {
		set = append(set, strings.ToLower(strings.TrimSpace(v)))
	}
	feature.Present = true
	feature.Set = set
	return feature
}

// spanFeature carries a range attribute through for overlap comparison.
// When ceiling > 0 the span is clamped into [floor, ceiling].
func spanFeature(profile *models.Profile, name string, floor, ceiling float64) models.Feature {
	feature := models.Feature{Name: name, Kind: models.FeatureSpan}
	attr, ok := profile.Attr(name)
	if !ok || attr.Kind != models.AttrSpan || attr.Span.Hi < attr.Span.Lo {
		return feature
	}
	span := attr.Span
	if ceiling > floor {
		if span.Lo < floor {
			span.Lo = floor
		}
		if span.Hi > ceiling {
			span.Hi = ceiling
		}
	}
	feature.Present = true
	feature.Span = span
	return feature
}

// DimensionFor returns the named dimension of a profile's vector, with
// ErrIncompleteProfile when the profile has no attribute of the dimension.
func (fs *FeatureService) DimensionFor(ctx context.Context, profileID, dimension string) (*models.DimensionVector, error) {
	vector, err := fs.VectorForProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	dim := vector.Dimension(dimension)
	if dim == nil {
		return nil, fmt.Errorf("unknown dimension %q", dimension)
	}
	if !dim.Present {
		return nil, fmt.Errorf("%w: %s", models.ErrIncompleteProfile, dimension)
	}
	return dim, nil
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
