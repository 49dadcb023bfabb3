package models

// Service is a billable IT service offering loaded from a dataset row.
//
// Ordering uses Cost, then Prepayment, then Name. Duration is carried along but
// never compared, so two services that differ only by Duration are Equal.
type Service struct {
	Name       string  `bson:"name" json:"name"`
	Cost       float64 `bson:"cost" json:"cost"`
	Duration   int     `bson:"duration" json:"duration"`
	Prepayment float64 `bson:"prepayment" json:"prepayment"`
}

// Compare returns -1 when a sorts before b, +1 when after and 0 when both share
// the same cost, prepayment and name. Floats are compared as stored, without
// any tolerance.
func Compare(a, b Service) int {
	if a.Cost != b.Cost {
		if a.Cost < b.Cost {
			return -1
		}
		return 1
	}
	if a.Prepayment != b.Prepayment {
		if a.Prepayment < b.Prepayment {
			return -1
		}
		return 1
	}
	switch {
	case a.Name < b.Name:
		return -1
	case a.Name > b.Name:
		return 1
	default:
		return 0
	}
}

// Less reports whether s sorts strictly before other.
func (s Service) Less(other Service) bool { return Compare(s, other) < 0 }

// Greater reports whether s sorts strictly after other.
func (s Service) Greater(other Service) bool { return Compare(s, other) > 0 }

func (s Service) LessOrEqual(other Service) bool { return Compare(s, other) <= 0 }

func (s Service) GreaterOrEqual(other Service) bool { return Compare(s, other) >= 0 }

// Equal compares the ordering key only; Duration is ignored.
func (s Service) Equal(other Service) bool { return Compare(s, other) == 0 }

func (s Service) NotEqual(other Service) bool { return Compare(s, other) != 0 }
