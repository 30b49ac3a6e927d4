package httpx

import (
	"net/http"

	"github.com/sundayezeilo/websitio/internal/errx"
)

type kindResponse struct {
	status int
	code   string
}

var kindResponses = map[errx.Kind]kindResponse{
	errx.NotFound:    {http.StatusNotFound, "not_found"},
	errx.Conflict:    {http.StatusConflict, "conflict"},
	errx.Invalid:     {http.StatusBadRequest, "invalid_input"},
	errx.Forbidden:   {http.StatusForbidden, "forbidden"},
	errx.Unavailable: {http.StatusServiceUnavailable, "unavailable"},
}

var internalResponse = kindResponse{http.StatusInternalServerError, "internal_error"}

func responseFor(kind errx.Kind) kindResponse {
	if r, ok := kindResponses[kind]; ok {
		return r
	}
	return internalResponse
}

// ErrorKindToStatus maps errx.Kind to an HTTP status. Unknown and Internal are 500.
func ErrorKindToStatus(kind errx.Kind) int {
	return responseFor(kind).status
}

// ErrorKindToCode maps errx.Kind to the "error" field of ErrorResponse.
func ErrorKindToCode(kind errx.Kind) string {
	return responseFor(kind).code
}

// WriteKindError writes err using the status and code of its kind.
// The message is only exposed for client-side kinds; server faults get the fallback.
func WriteKindError(w http.ResponseWriter, err error, fallback string) {
	resp := responseFor(errx.KindOf(err))

	message := fallback
	if resp.status < http.StatusInternalServerError {
		message = errx.Root(err).Error()
	}
	WriteError(w, resp.status, resp.code, message, nil)
}
