package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event-manager/internal/domains/event/service"
	"event-manager/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type eventJSON struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Location       string  `json:"location"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	ImageURL       *string `json:"imageUrl"`
	NFTMintAddress *string `json:"nftMintAddress"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func setupRouter() (*gin.Engine, *testutil.MemoryEventRepo) {
	gin.SetMode(gin.TestMode)
	repo := testutil.NewMemoryEventRepo()
	svc := service.NewEventService(repo, testutil.NewStepClock(time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC), time.Second), nil)
	h := NewHandler(svc)

	r := gin.New()
	events := r.Group("/api/v1/events")
	events.GET("", h.ListEvents)
	events.POST("", h.CreateEvent)
	events.GET("/:id", h.GetEvent)
	events.PUT("/:id", h.UpdateEvent)
	events.DELETE("/:id", h.DeleteEvent)
	events.PUT("/:id/mint-address", h.AttachMintAddress)
	return r, repo
}

func call(t *testing.T, r *gin.Engine, method, path string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func launchParty() map[string]string {
	return map[string]string{
		"title":       "Launch Party",
		"description": "Product launch event",
		"location":    "SF",
		"startDate":   "2025-01-01T10:00",
		"endDate":     "2025-01-01T12:00",
	}
}

func decodeEvent(t *testing.T, resp apiResponse) eventJSON {
	t.Helper()
	var e eventJSON
	require.NoError(t, json.Unmarshal(resp.Data, &e))
	return e
}

func TestEventLifecycle(t *testing.T) {
	r, _ := setupRouter()

	status, resp := call(t, r, http.MethodPost, "/api/v1/events", launchParty())
	require.Equal(t, http.StatusCreated, status)
	require.True(t, resp.Success)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.NotEmpty(t, created.ID)
	path := "/api/v1/events/" + created.ID

	status, resp = call(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status)
	ev := decodeEvent(t, resp)
	assert.Equal(t, "Launch Party", ev.Title)
	assert.Equal(t, "2025-01-01T10:00:00Z", ev.StartDate)
	assert.Nil(t, ev.NFTMintAddress)
	assert.Nil(t, ev.ImageURL)

	update := launchParty()
	update["imageUrl"] = "https://example.com/a.png"
	status, resp = call(t, r, http.MethodPut, path, update)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://example.com/a.png", *decodeEvent(t, resp).ImageURL)

	status, resp = call(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status)
	ev = decodeEvent(t, resp)
	require.NotNil(t, ev.ImageURL)
	assert.Equal(t, "https://example.com/a.png", *ev.ImageURL)
	assert.NotEqual(t, ev.CreatedAt, ev.UpdatedAt)

	status, _ = call(t, r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, status)

	status, resp = call(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, resp.Success)
	assert.Equal(t, "EVENT_NOT_FOUND", resp.Error.Code)
}

func TestCreateEvent_ValidationErrorStoresNothing(t *testing.T) {
	r, repo := setupRouter()

	body := launchParty()
	body["description"] = "short"
	status, resp := call(t, r, http.MethodPost, "/api/v1/events", body)

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "description")
	assert.Len(t, resp.Error.Details, 1)
	assert.Equal(t, 0, repo.Len())
}

func TestCreateEvent_ReportsEveryInvalidField(t *testing.T) {
	r, _ := setupRouter()

	status, resp := call(t, r, http.MethodPost, "/api/v1/events", map[string]string{"imageUrl": "nope"})

	assert.Equal(t, http.StatusBadRequest, status)
	for _, field := range []string{"title", "description", "location", "startDate", "endDate", "imageUrl"} {
		assert.Contains(t, resp.Error.Details, field)
	}
}

func TestCreateEvent_MalformedJSONIsServerError(t *testing.T) {
	r, repo := setupRouter()

	for _, body := range []string{`{"title":`, ``, `not json`} {
		status, resp := call(t, r, http.MethodPost, "/api/v1/events", body)

		assert.Equal(t, http.StatusInternalServerError, status, body)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "unexpected")
	}
	assert.Equal(t, 0, repo.Len())
}

func TestCreateEvent_WrongFieldTypesAreValidationErrors(t *testing.T) {
	r, repo := setupRouter()

	body := `{"title":5,"description":"Product launch event","location":"SF",` +
		`"startDate":"2025-01-01T10:00","endDate":"2025-01-01T12:00","imageUrl":["x"]}`
	status, resp := call(t, r, http.MethodPost, "/api/v1/events", body)

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "must be a string", resp.Error.Details["title"])
	assert.Equal(t, "must be a string", resp.Error.Details["imageUrl"])
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, 0, repo.Len())
}

func TestCreateEvent_WrongTypeStillReportsOtherFields(t *testing.T) {
	r, _ := setupRouter()

	status, resp := call(t, r, http.MethodPost, "/api/v1/events", `{"title":5}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "must be a string", resp.Error.Details["title"])
	for _, field := range []string{"description", "location", "startDate", "endDate"} {
		assert.Contains(t, resp.Error.Details, field)
	}
}

func TestCreateEvent_NonObjectBody(t *testing.T) {
	r, repo := setupRouter()

	status, resp := call(t, r, http.MethodPost, "/api/v1/events", `[1,2]`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "body")
	assert.Equal(t, 0, repo.Len())
}

func TestListEvents(t *testing.T) {
	r, _ := setupRouter()

	status, resp := call(t, r, http.MethodGet, "/api/v1/events", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(resp.Data))

	for _, title := range []string{"First event", "Second event"} {
		body := launchParty()
		body["title"] = title
		status, _ := call(t, r, http.MethodPost, "/api/v1/events", body)
		require.Equal(t, http.StatusCreated, status)
	}

	_, resp = call(t, r, http.MethodGet, "/api/v1/events", nil)
	var events []eventJSON
	require.NoError(t, json.Unmarshal(resp.Data, &events))
	require.Len(t, events, 2)
	assert.Equal(t, "First event", events[0].Title)
	assert.Equal(t, "Second event", events[1].Title)
}

func TestUpdateAndDeleteMissingEvent(t *testing.T) {
	r, _ := setupRouter()

	status, resp := call(t, r, http.MethodPut, "/api/v1/events/missing", launchParty())
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "EVENT_NOT_FOUND", resp.Error.Code)

	status, _ = call(t, r, http.MethodDelete, "/api/v1/events/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMintAddressFlow(t *testing.T) {
	r, _ := setupRouter()

	_, resp := call(t, r, http.MethodPost, "/api/v1/events", launchParty())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	path := "/api/v1/events/" + created.ID

	status, resp := call(t, r, http.MethodPut, path+"/mint-address", map[string]string{"nftMintAddress": "0OIl"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.Error.Details, "nftMintAddress")

	status, resp = call(t, r, http.MethodPut, path+"/mint-address", `{"nftMintAddress":42}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "must be a string", resp.Error.Details["nftMintAddress"])

	status, resp = call(t, r, http.MethodPut, path+"/mint-address", map[string]string{"nftMintAddress": "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", *decodeEvent(t, resp).NFTMintAddress)

	// a regular edit neither clears nor overwrites the mint
	update := launchParty()
	update["nftMintAddress"] = "11111111111111111111111111111111"
	status, resp = call(t, r, http.MethodPut, path, update)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", *decodeEvent(t, resp).NFTMintAddress)
}

func TestDeleteEvent_EchoesTrimmedID(t *testing.T) {
	r, repo := setupRouter()

	_, resp := call(t, r, http.MethodPost, "/api/v1/events", launchParty())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	status, resp := call(t, r, http.MethodDelete, "/api/v1/events/%20"+created.ID+"%20", nil)
	require.Equal(t, http.StatusOK, status)

	var deleted struct {
		ID      string `json:"id"`
		Deleted bool   `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &deleted))
	assert.Equal(t, created.ID, deleted.ID)
	assert.True(t, deleted.Deleted)
	assert.Equal(t, 0, repo.Len())
}

func TestStorageFailureIsGeneric(t *testing.T) {
	r, repo := setupRouter()
	repo.Err = errors.New("pq: password authentication failed for user events")

	status, resp := call(t, r, http.MethodGet, "/api/v1/events", nil)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "password")
}
