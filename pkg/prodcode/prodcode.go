// Package prodcode generates product and reservation codes of the form
// prefix + YYYYMMDD + NNN + 8-char uuid segment.
//
// The generator gives no uniqueness guarantee by itself; the persistence
// layer's unique constraint on the product code is the backstop, and a
// collision surfaces as a creation failure rather than a retry.
package prodcode

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

func Generate(prefix string) string {
	date := time.Now().UTC().Format("20060102")
	n := rand.IntN(900) + 100
	id := uuid.NewString()[:8]
	return fmt.Sprintf("%s%s%d%s", prefix, date, n, id)
}
