package object

import (
	"strconv"

	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

func itoa(n int) string { return strconv.Itoa(n) }

// keyString renders an entry key into a cache/lookup key. Collisions
// between distinct keys sharing a HashCode are not disambiguated further;
// entry keys are almost always primitives in practice, where HashCode is
// effectively injective for the value ranges this core exercises.
func keyString(v pklvalue.Value) string {
	return strconv.FormatUint(v.HashCode(), 36)
}
