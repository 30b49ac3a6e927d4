package httpx

import (
	"net/http"
	"strconv"

	"github.com/sundayezeilo/websitio/internal/errx"
)

// PathID parses the named path wildcard as a positive int64.
func PathID(r *http.Request, name string) (int64, error) {
	const op = "httpx.PathID"

	raw := r.PathValue(name)
	if raw == "" {
		return 0, errx.Ef(op, errx.Invalid, "%s is required", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errx.Ef(op, errx.Invalid, "invalid %s %q", name, raw)
	}
	return id, nil
}
