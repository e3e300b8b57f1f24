package rest

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// pathID returns the canonical form of the {id} route variable, or a 400
// with message when it is not a UUID.
func pathID(r *http.Request, message string) (string, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return "", httpError(http.StatusBadRequest, message)
	}
	return id.String(), nil
}

// parsePagination never fails: unusable values fall back to the defaults,
// limit is clamped to [1, maxLimit] and offset to >= 0.
func parsePagination(q url.Values) (limit, offset int) {
	limit = defaultLimit
	if n, ok := parseNumber(q.Get("limit")); ok {
		limit = int(math.Min(math.Max(1, math.Floor(n)), maxLimit))
	}

	if n, ok := parseNumber(q.Get("offset")); ok {
		f := math.Max(0, math.Floor(n))
		if f > math.MaxInt32 {
			f = math.MaxInt32
		}
		offset = int(f)
	}

	return limit, offset
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	// overflow yields +/-Inf with ErrRange; keep it so the caller clamps
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}
