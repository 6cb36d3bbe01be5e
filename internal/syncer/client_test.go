package syncer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchtogether/server/internal/domain"
)

func TestClientFetchRoom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rooms/abcd1234" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"abcd1234","state":"prepare","seq":2,"video_id":"dQw4w9WgXcQ","start_s":10,"end_s":40,"prepare_started_at":"2024-06-01T12:00:00Z","current_submission_id":null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	snapshot, err := client.FetchRoom(context.Background(), "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, "abcd1234", snapshot.ID)
	assert.Equal(t, domain.RoomStatePrepare, snapshot.State)
	assert.Equal(t, 2, snapshot.Seq)
	require.NotNil(t, snapshot.EndS)
	assert.Equal(t, 40, *snapshot.EndS)
	require.NotNil(t, snapshot.PrepareStartedAt)
	assert.Nil(t, snapshot.CurrentSubmissionID)

	_, err = client.FetchRoom(context.Background(), "missing1")
	assert.Error(t, err)
}
