package schema

// Default rating domains. Points and scale accept a custom max via
// RatingConfig; stars are always half-star increments up to 5.
const (
	StarsMin  = 0.5
	StarsMax  = 5.0
	StarsStep = 0.5

	PointsMin        = 1.0
	DefaultPointsMax = 100.0

	ScaleMin        = 1.0
	DefaultScaleMax = 10.0
)

// RatingMin returns the lowest valid rating for the list's rating type.
// Lists with RatingType none have no rating domain; min and max are 0.
func RatingMin(l *List) float64 {
	switch l.RatingType {
	case RatingStars:
		return StarsMin
	case RatingPoints:
		return PointsMin
	case RatingScale:
		return ScaleMin
	case RatingNone:
		return 0
	default:
		return 0
	}
}

// RatingMax returns the highest valid rating for the list's rating type,
// honoring a custom RatingConfig.Max when one is set.
func RatingMax(l *List) float64 {
	switch l.RatingType {
	case RatingStars:
		return StarsMax
	case RatingPoints:
		if l.RatingConfig != nil && l.RatingConfig.Max > 0 {
			return l.RatingConfig.Max
		}
		return DefaultPointsMax
	case RatingScale:
		if l.RatingConfig != nil && l.RatingConfig.Max > 0 {
			return l.RatingConfig.Max
		}
		return DefaultScaleMax
	case RatingNone:
		return 0
	default:
		return 0
	}
}

// RatingStep returns the increment between adjacent valid ratings.
func RatingStep(l *List) float64 {
	if l.RatingType == RatingStars {
		return StarsStep
	}
	if l.RatingConfig != nil && l.RatingConfig.Step > 0 {
		return l.RatingConfig.Step
	}
	if l.RatingType == RatingNone {
		return 0
	}
	return 1
}
