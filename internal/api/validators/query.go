// internal/api/validators/query.go
package validators

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"creator-wallet/internal/util"
)

// ParseQueryInt reads an integer query parameter, falling back to defaultVal when absent.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %s must be numeric", util.ErrInvalidInput, key)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%w: query parameter %s must be between %d and %d", util.ErrInvalidInput, key, min, max)
	}
	return value, nil
}
