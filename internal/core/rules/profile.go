package rules

// Profile carries the citizen attributes rules compare against.
// Pointer members distinguish absent from zero
type Profile struct {
	UserID        string
	Age           *int
	Income        *float64
	Location      *string
	CasteCategory *string
	Gender        *string
}

// fieldValue is what an accessor yields: a number or a string
type fieldValue struct {
	isNum bool
	num   float64
	str   string
}

// accessors is the explicit field-to-accessor table. Unknown fields fail
// Spec.Validate up front, so evaluation never hits a missing entry
var accessors = map[Field]func(Profile) (fieldValue, bool){
	FieldAge: func(p Profile) (fieldValue, bool) {
		if p.Age == nil {
			return fieldValue{}, false
		}
		return fieldValue{isNum: true, num: float64(*p.Age)}, true
	},
	FieldIncome: func(p Profile) (fieldValue, bool) {
		if p.Income == nil {
			return fieldValue{}, false
		}
		return fieldValue{isNum: true, num: *p.Income}, true
	},
	FieldLocation: func(p Profile) (fieldValue, bool) {
		if p.Location == nil || *p.Location == "" {
			return fieldValue{}, false
		}
		return fieldValue{str: *p.Location}, true
	},
	FieldCasteCategory: func(p Profile) (fieldValue, bool) {
		if p.CasteCategory == nil || *p.CasteCategory == "" {
			return fieldValue{}, false
		}
		return fieldValue{str: *p.CasteCategory}, true
	},
	FieldGender: func(p Profile) (fieldValue, bool) {
		if p.Gender == nil || *p.Gender == "" {
			return fieldValue{}, false
		}
		return fieldValue{str: *p.Gender}, true
	},
}

// Has reports whether the profile carries a value for field
func (p Profile) Has(f Field) bool {
	acc, ok := accessors[f]
	if !ok {
		return false
	}
	_, present := acc(p)
	return present
}
