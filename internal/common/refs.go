package common

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// IDRX matches the 24-hex-digit identifiers assigned by the stores.
var IDRX = regexp.MustCompile("^[0-9a-f]{24}$")

// NewID returns a new store identifier: 12 random bytes, hex encoded.
func NewID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// RefPolicy decides what counts as a valid reference to another record.
// Reference checks at write time go through this so a stricter variant
// (one that verifies the referenced record exists) can be swapped in
// without touching call sites.
//
// The shipped policy is format-only: a well-formed identifier passes even
// when no record with that identifier exists. A post can therefore point
// at a deleted category and a comment at a deleted post. This mirrors the
// behaviour callers already depend on, it is not a recommendation.
type RefPolicy interface {
	CheckRef(v *Validator, field, id string)
}

// FormatRefPolicy accepts any syntactically valid identifier.
type FormatRefPolicy struct{}

func (FormatRefPolicy) CheckRef(v *Validator, field, id string) {
	v.Check(id != "", field, "must be provided")
	if id != "" {
		v.Check(IDRX.MatchString(id), field, "must be a valid id")
	}
}

// ValidateID is the check used for identifiers that address a record
// directly rather than referencing one from another record.
func ValidateID(v *Validator, field, id string) {
	v.Check(IDRX.MatchString(id), field, "must be a valid id")
}
