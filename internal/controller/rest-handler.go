package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	roomservice "github.com/watchtogether/server/internal/service/room"
	"github.com/watchtogether/server/pkg/rest"
	"github.com/watchtogether/server/pkg/ytref"
)

type createRoomResponse struct {
	RoomID    string                `json:"room_id"`
	HostToken string                `json:"host_token"`
	HostURL   string                `json:"host_url"`
	ViewerURL string                `json:"viewer_url"`
	Room      roomservice.Snapshot  `json:"room"`
}

func (c controller) createRoom(w http.ResponseWriter, r *http.Request) {
	resp, err := c.roomService.CreateRoom(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, createRoomResponse{
		RoomID:    resp.RoomID,
		HostToken: resp.HostToken,
		HostURL:   fmt.Sprintf("%s/host/%s?token=%s", c.appURL, resp.RoomID, resp.HostToken),
		ViewerURL: fmt.Sprintf("%s/room/%s", c.appURL, resp.RoomID),
		Room:      resp.Room,
	})
}

func (c controller) getRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	snapshot, err := c.roomService.GetRoom(r.Context(), roomID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, snapshot)
}

type submitRequest struct {
	RoomID      string          `json:"room_id" validate:"required"`
	DisplayName string          `json:"display_name" validate:"max=50"`
	VideoURL    string          `json:"video_url" validate:"required,url"`
	Start       json.RawMessage `json:"start"`
	End         json.RawMessage `json:"end"`
	Message     string          `json:"message" validate:"max=300"`
}

func (c controller) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := rest.ReadJSON(r, &req); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	videoID, err := ytref.Parse(req.VideoURL)
	if err != nil {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": err.Error()})
		return
	}

	startS, endS, err := parseClipTimes(req.Start, req.End)
	if err != nil {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": err.Error()})
		return
	}

	params := roomservice.SubmitParams{
		RoomID:  req.RoomID,
		VideoID: videoID,
		StartS:  startS,
		EndS:    endS,
	}
	if req.DisplayName != "" {
		params.DisplayName = &req.DisplayName
	}
	if req.Message != "" {
		params.Message = &req.Message
	}

	submission, err := c.roomService.Submit(r.Context(), &params)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, submission)
}

type loadRequest struct {
	RoomID       string          `json:"room_id" validate:"required"`
	Token        string          `json:"token"`
	SubmissionID string          `json:"submission_id"`
	VideoURL     string          `json:"video_url"`
	Start        json.RawMessage `json:"start"`
	End          json.RawMessage `json:"end"`
}

func (c controller) load(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := rest.ReadJSON(r, &req); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	params := roomservice.LoadParams{
		RoomID: req.RoomID,
		Token:  c.hostToken(r, req.Token),
	}

	switch {
	case req.SubmissionID != "":
		params.SubmissionID = &req.SubmissionID
	case req.VideoURL != "":
		videoID, err := ytref.Parse(req.VideoURL)
		if err != nil {
			rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": err.Error()})
			return
		}

		// A direct load may omit start, which means the clip head.
		if len(req.Start) == 0 {
			req.Start = json.RawMessage("0")
		}
		startS, endS, err := parseClipTimes(req.Start, req.End)
		if err != nil {
			rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": err.Error()})
			return
		}

		params.Clip = &roomservice.Clip{
			VideoID: videoID,
			StartS:  startS,
			EndS:    endS,
		}
	default:
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": "either submission_id or video_url is required"})
		return
	}

	snapshot, err := c.roomService.Load(r.Context(), &params)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, snapshot)
}

type hostCommandRequest struct {
	RoomID string `json:"room_id" validate:"required"`
	Token  string `json:"token"`
}

func (c controller) pause(w http.ResponseWriter, r *http.Request) {
	var req hostCommandRequest
	if err := rest.ReadJSON(r, &req); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	snapshot, err := c.roomService.Pause(r.Context(), &roomservice.PauseParams{
		RoomID: req.RoomID,
		Token:  c.hostToken(r, req.Token),
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, snapshot)
}

func (c controller) stop(w http.ResponseWriter, r *http.Request) {
	var req hostCommandRequest
	if err := rest.ReadJSON(r, &req); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	snapshot, err := c.roomService.Stop(r.Context(), &roomservice.StopParams{
		RoomID: req.RoomID,
		Token:  c.hostToken(r, req.Token),
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, snapshot)
}

func (c controller) listQueue(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": "room_id is required"})
		return
	}

	queue, err := c.roomService.ListQueue(r.Context(), &roomservice.ListQueueParams{
		RoomID: roomID,
		Token:  c.hostToken(r, ""),
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, queue)
}

func (c controller) approve(w http.ResponseWriter, r *http.Request) {
	c.moderate(w, r, c.roomService.Approve)
}

func (c controller) reject(w http.ResponseWriter, r *http.Request) {
	c.moderate(w, r, c.roomService.Reject)
}

func (c controller) moderate(w http.ResponseWriter, r *http.Request, decide func(ctx context.Context, params *roomservice.ModerateParams) (roomservice.Submission, error)) {
	submissionID := chi.URLParam(r, "submissionID")

	var req hostCommandRequest
	if err := rest.ReadJSON(r, &req); err != nil {
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	submission, err := decide(r.Context(), &roomservice.ModerateParams{
		RoomID:       req.RoomID,
		Token:        c.hostToken(r, req.Token),
		SubmissionID: submissionID,
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, submission)
}
