package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/watchtogether/server/internal/domain"
	roomservice "github.com/watchtogether/server/internal/service/room"
	"github.com/watchtogether/server/pkg/flextime"
	"github.com/watchtogether/server/pkg/rest"
)

// hostToken resolves the host token from the Authorization header, the
// token query parameter or the request body, in that order.
func (c controller) hostToken(r *http.Request, bodyToken string) string {
	if bearer := r.Header.Get("Authorization"); strings.HasPrefix(bearer, "Bearer ") {
		return strings.TrimPrefix(bearer, "Bearer ")
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	return bodyToken
}

// parseTimeField accepts the flexible time inputs of the original clients:
// a JSON number of seconds or a string in seconds, mm:ss or hh:mm:ss form.
func parseTimeField(raw json.RawMessage) (int, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return flextime.ParseSeconds(asString)
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return flextime.ParseNumber(asNumber)
	}

	return 0, flextime.ErrInvalidFormat
}

// parseClipTimes resolves start and the optional end. A missing end defaults
// to start plus the default clip length; any end is capped at start plus the
// maximum clip length.
func parseClipTimes(start, end json.RawMessage) (int, int, error) {
	if len(start) == 0 || string(start) == "null" {
		return 0, 0, flextime.ErrRequired
	}

	startS, err := parseTimeField(start)
	if err != nil {
		return 0, 0, err
	}

	endS := startS + domain.DefaultClipSeconds
	if len(end) > 0 && string(end) != "null" && string(end) != `""` {
		endS, err = parseTimeField(end)
		if err != nil {
			return 0, 0, err
		}
	}

	if maxEnd := startS + domain.MaxClipSeconds; endS > maxEnd {
		endS = maxEnd
	}

	return startS, endS, nil
}

func (c controller) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *roomservice.ValidationError

	switch {
	case errors.As(err, &validationErr):
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": validationErr.Reason})
	case errors.Is(err, roomservice.ErrNotAuthorized):
		rest.WriteJSON(w, http.StatusUnauthorized, rest.Envelope{"error": "unauthorized"})
	case errors.Is(err, roomservice.ErrRoomNotFound):
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
	case errors.Is(err, roomservice.ErrSubmissionNotFound):
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "submission not found"})
	case errors.Is(err, roomservice.ErrConflict):
		rest.WriteJSON(w, http.StatusConflict, rest.Envelope{"error": "concurrent update, retry"})
	default:
		c.logger.ErrorContext(r.Context(), "internal error", "err", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal server error"})
	}
}
