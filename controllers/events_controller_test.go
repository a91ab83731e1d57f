package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/cybersecclub/club-site-go/models"
)

func (env *testEnv) seedEvent(date time.Time, status string) *models.Event {
	now := time.Now()
	event := &models.Event{
		ID:          primitive.NewObjectID(),
		Title:       "Lockpicking Workshop",
		Description: "Hands-on intro",
		Date:        date,
		Mode:        models.EventModeOffline,
		Tag:         "workshop",
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	env.events.events[event.ID] = event
	return event
}

func TestCreateEventEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.addUser(t, "Asha", models.RoleUser)
	_, adminToken := env.addUser(t, "Root", models.RoleAdmin)

	body := `{"title":"CTF Night","description":"bring laptops","date":"2026-10-01","mode":"Online","tag":"ctf"}`

	w := env.do(http.MethodPost, "/api/events", userToken, body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/events", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var event models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	assert.Equal(t, models.EventStatusUpcoming, event.Status)

	w = env.do(http.MethodPost, "/api/events", adminToken, `{"title":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/events", adminToken,
		`{"title":"X","description":"Y","date":"soon","mode":"Online","tag":"t"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/events", adminToken,
		`{"title":"X","description":"Y","date":"2026-10-01","mode":"Hybrid","tag":"t"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEventsSortedByDate(t *testing.T) {
	env := newTestEnv(t)

	later := env.seedEvent(time.Now().Add(72*time.Hour), models.EventStatusUpcoming)
	sooner := env.seedEvent(time.Now().Add(24*time.Hour), models.EventStatusUpcoming)

	w := env.do(http.MethodGet, "/api/events", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var events []models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, sooner.ID, events[0].ID)
	assert.Equal(t, later.ID, events[1].ID)
	assert.NotEmpty(t, w.Header().Get("ETag"))
}

func TestModerateEventEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.addUser(t, "Asha", models.RoleUser)
	_, adminToken := env.addUser(t, "Root", models.RoleAdmin)

	event := env.seedEvent(time.Now().Add(-24*time.Hour), models.EventStatusUpcoming)
	path := "/api/events/moderate/" + event.ID.Hex()

	w := env.do(http.MethodPut, path, userToken, `{"status":"completed"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPut, path, adminToken, `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPut, path, adminToken, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.EventStatusCompleted, got.Status)

	w = env.do(http.MethodPut, "/api/events/moderate/ffffffffffffffffffffffff", adminToken, `{"status":"completed"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPendingEventsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.addUser(t, "Root", models.RoleAdmin)

	env.seedEvent(time.Now().Add(24*time.Hour), models.EventStatusUpcoming)
	env.seedEvent(time.Now().Add(-24*time.Hour), models.EventStatusCompleted)

	w := env.do(http.MethodGet, "/api/events/pending", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, "/api/events/pending", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	var events []models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, models.EventStatusUpcoming, events[0].Status)
}
