package httpgin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osyp/eventix/internal/repository/memory"
	"github.com/osyp/eventix/internal/service"
	"github.com/osyp/eventix/internal/session"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	require.NoError(t, store.Seed(time.Now().UTC()))

	svcs := service.NewServices(store, service.Config{})
	sessions := session.NewManager(time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRouter(svcs, sessions, logger)
}

func doJSON(r *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username, password string) *http.Cookie {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/auth/login", LoginRequest{Username: username, Password: password}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == "auth" {
			return c
		}
	}

	t.Fatal("no auth cookie set")
	return nil
}

func TestAuth_RegisterConflict(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/auth/register", RegisterRequest{Username: "alice", Password: "pw1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp IdentityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "user", resp.Role)

	w = doJSON(r, http.MethodPost, "/auth/register", RegisterRequest{Username: "alice", Password: "pw2"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username already exists")
}

func TestAuth_LoginFlow(t *testing.T) {
	r := newTestRouter(t)

	// wrong password answers 404, same as an unknown user
	w := doJSON(r, http.MethodPost, "/auth/login", LoginRequest{Username: "testuser", Password: "nope"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	cookie := login(t, r, "testuser", "test123")
	assert.True(t, cookie.HttpOnly)

	w = doJSON(r, http.MethodGet, "/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var me IdentityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "testuser", me.Username)
	assert.Equal(t, "user", me.Role)
	assert.Equal(t, int64(2), me.UserID)

	w = doJSON(r, http.MethodGet, "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Logout(t *testing.T) {
	r := newTestRouter(t)

	cookie := login(t, r, "testuser", "test123")

	w := doJSON(r, http.MethodPost, "/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookings_Create(t *testing.T) {
	r := newTestRouter(t)

	// unknown event
	w := doJSON(r, http.MethodPost, "/bookings", CreateBookingRequest{
		EventID: 99, UserID: 2, UserName: "testuser", NumberOfTickets: 1,
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// event 1 is seeded with 2 of 50 tickets taken
	w = doJSON(r, http.MethodPost, "/bookings", CreateBookingRequest{
		EventID: 1, UserID: 2, UserName: "testuser", NumberOfTickets: 49,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not enough tickets available")

	w = doJSON(r, http.MethodPost, "/bookings", CreateBookingRequest{
		EventID: 1, UserID: 2, UserName: "testuser", NumberOfTickets: 48,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var b BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, int64(3), b.ID)
	assert.Equal(t, "Webbutveckling Workshop", b.EventName)
	assert.Equal(t, "active", b.Status)
}

func TestBookings_CreateValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/bookings", CreateBookingRequest{
		EventID: 1, UserID: 2, UserName: "testuser", NumberOfTickets: -1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "number of tickets must be positive")
}

func TestBookings_Cancel(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodDelete, "/bookings/42", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/bookings/2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CancelBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.BookingID)
	assert.Equal(t, "Booking cancelled successfully", resp.Message)

	// the user's list no longer carries it
	w = doJSON(r, http.MethodGet, "/bookings/user/2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
}

func TestBookings_AdminGating(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/bookings", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userCookie := login(t, r, "testuser", "test123")
	w = doJSON(r, http.MethodGet, "/bookings", nil, userCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminCookie := login(t, r, "admin", "admin123")
	w = doJSON(r, http.MethodGet, "/bookings", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)

	var list []BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	w = doJSON(r, http.MethodGet, "/bookings/event/1", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestEvents_ListAndETag(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/events", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 4)

	tag := w.Header().Get("ETag")
	require.NotEmpty(t, tag)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("If-None-Match", tag)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNotModified, w2.Code)
}

func TestEvents_Availability(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/events/1/availability", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var av AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &av))
	assert.Equal(t, 50, av.MaxAttendees)
	assert.Equal(t, 2, av.TicketsBooked)
	assert.Equal(t, 48, av.Remaining)

	w = doJSON(r, http.MethodGet, "/events/99/availability", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEvents_Create(t *testing.T) {
	r := newTestRouter(t)
	start := time.Now().UTC().AddDate(0, 0, 10)

	body := CreateEventRequest{
		Name:         "Jazz Night",
		Description:  "an evening of jazz",
		Type:         "concert",
		StartTime:    start.Format(time.RFC3339),
		EndTime:      start.Add(3 * time.Hour).Format(time.RFC3339),
		MaxAttendees: 120,
	}

	w := doJSON(r, http.MethodPost, "/events", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userCookie := login(t, r, "testuser", "test123")
	w = doJSON(r, http.MethodPost, "/events", body, userCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminCookie := login(t, r, "admin", "admin123")
	w = doJSON(r, http.MethodPost, "/events", body, adminCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp CreateEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.EventID)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/events/%d", resp.EventID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
