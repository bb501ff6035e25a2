package httpgin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/osyp/eventix/internal/domain"
	"github.com/osyp/eventix/internal/service"
	"github.com/osyp/eventix/internal/service/auth"
	"github.com/osyp/eventix/internal/service/booking"
	"github.com/osyp/eventix/internal/service/events"
	"github.com/osyp/eventix/internal/session"
)

func NewRouter(
	svcs *service.Services,
	sessions *session.Manager,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		LoggingMiddleware(logger),
		RequestIDMiddleware(),
		CORS(),
		MetricsMiddleware(),
		SessionAuth(sessions),
	)
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health + metrics
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// auth
	r.POST("/auth/register", handleRegister(svcs))
	r.POST("/auth/login", handleLogin(svcs, sessions))
	r.POST("/auth/logout", handleLogout(sessions))
	r.GET("/auth/me", RequireAuth(), handleMe())

	// events
	r.GET("/events", handleListEvents(svcs))
	r.GET("/events/:id", handleGetEvent(svcs))
	r.GET("/events/:id/availability", handleGetAvailability(svcs))
	r.POST("/events", RequireAdmin(), handleCreateEvent(svcs))

	// bookings
	r.POST("/bookings", handleCreateBooking(svcs))
	r.GET("/bookings/user/:userId", handleListUserBookings(svcs))
	r.GET("/bookings", RequireAdmin(), handleListAllBookings(svcs))
	r.GET("/bookings/event/:eventId", RequireAdmin(), handleListEventBookings(svcs))
	r.DELETE("/bookings/:id", handleCancelBooking(svcs))

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Register a new user
// @Param    req body  RegisterRequest true "payload"
// @Success  200 {object} IdentityResponse
// @Failure  400 {object} ErrorResponse "username already exists"
// @Router   /auth/register [post]
func handleRegister(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		identity, err := svcs.Auth.Register(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, newIdentityResponse(*identity))
	}
}

// @Summary  Login with username and password
// @Param    req body  LoginRequest true "payload"
// @Success  200 {object} IdentityResponse
// @Failure  404 {object} ErrorResponse "invalid username or password"
// @Router   /auth/login [post]
func handleLogin(svcs *service.Services, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		identity, err := svcs.Auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}

		token := sessions.Create(*identity)
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(sessionCookie, token, int(sessions.TTL().Seconds()), "/", "", false, true)

		c.JSON(http.StatusOK, newIdentityResponse(*identity))
	}
}

// @Summary  Logout
// @Success  204
// @Router   /auth/logout [post]
func handleLogout(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
			sessions.Delete(token)
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Current identity
// @Success  200 {object} IdentityResponse
// @Failure  401 {object} ErrorResponse
// @Router   /auth/me [get]
func handleMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := identityFrom(c)
		c.JSON(http.StatusOK, newIdentityResponse(identity))
	}
}

// @Summary  List events
// @Success  200 {array} EventResponse
// @Router   /events [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Events.List(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		out := make([]EventResponse, 0, len(list))
		for _, e := range list {
			out = append(out, newEventResponse(e))
		}

		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=60")
	}
}

// @Summary  Get event
// @Param    id  path  int  true  "Event ID"
// @Success  200 {object} EventResponse
// @Failure  404 {object} ErrorResponse
// @Router   /events/{id} [get]
func handleGetEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		e, err := svcs.Events.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, newEventResponse(*e), "public, max-age=60")
	}
}

// @Summary  Ticket availability for an event
// @Param    id  path  int  true  "Event ID"
// @Success  200 {object} AvailabilityResponse
// @Failure  404 {object} ErrorResponse
// @Router   /events/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		av, err := svcs.Booking.Availability(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, AvailabilityResponse{
			EventID:       av.EventID,
			MaxAttendees:  av.MaxAttendees,
			TicketsBooked: av.TicketsBooked,
			Remaining:     av.Remaining,
		}, "public, max-age=15")
	}
}

// @Summary  Create event (admin)
// @Param    req body  CreateEventRequest true "payload"
// @Success  201 {object} CreateEventResponse
// @Failure  400 {object} ErrorResponse
// @Failure  403 {object} ErrorResponse
// @Router   /events [post]
func handleCreateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		start, err := parseRFC3339(req.StartTime)
		if err != nil {
			badRequest(c, "invalid startTime (RFC3339)")
			return
		}

		end, err := parseRFC3339(req.EndTime)
		if err != nil {
			badRequest(c, "invalid endTime (RFC3339)")
			return
		}

		id, err := svcs.Events.Create(
			c.Request.Context(),
			req.Name,
			req.Description,
			domain.ParseEventType(req.Type),
			start,
			end,
			req.MaxAttendees,
		)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, CreateEventResponse{EventID: id})
	}
}

// @Summary  Book tickets for an event
// @Param    req body  CreateBookingRequest true "payload"
// @Success  201 {object} BookingResponse
// @Failure  400 {object} ErrorResponse "not enough tickets available"
// @Failure  404 {object} ErrorResponse "event not found"
// @Router   /bookings [post]
func handleCreateBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		b, err := svcs.Booking.Create(
			c.Request.Context(),
			req.EventID,
			req.UserID,
			req.UserName,
			req.NumberOfTickets,
		)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, newBookingResponse(*b))
	}
}

// @Summary  Get all bookings for a user
// @Param    userId  path  int  true  "User ID"
// @Success  200 {array} BookingResponse
// @Router   /bookings/user/{userId} [get]
func handleListUserBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseInt64Param(c, "userId")
		if !ok {
			return
		}

		list, err := svcs.Booking.ListForUser(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, newBookingListResponse(list))
	}
}

// @Summary  Get all bookings (admin)
// @Success  200 {array} BookingResponse
// @Failure  403 {object} ErrorResponse
// @Router   /bookings [get]
func handleListAllBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svcs.Booking.ListAll(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, newBookingListResponse(list))
	}
}

// @Summary  Get all bookings for an event (admin)
// @Param    eventId  path  int  true  "Event ID"
// @Success  200 {array} BookingResponse
// @Failure  403 {object} ErrorResponse
// @Router   /bookings/event/{eventId} [get]
func handleListEventBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseInt64Param(c, "eventId")
		if !ok {
			return
		}

		list, err := svcs.Booking.ListForEvent(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, newBookingListResponse(list))
	}
}

// @Summary  Cancel a booking
// @Param    id  path  int  true  "Booking ID"
// @Success  200 {object} CancelBookingResponse
// @Failure  404 {object} ErrorResponse
// @Router   /bookings/{id} [delete]
func handleCancelBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		b, err := svcs.Booking.Cancel(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, CancelBookingResponse{
			Message:   "Booking cancelled successfully",
			BookingID: b.ID,
		})
	}
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// auth service
	case errors.Is(err, auth.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username already exists"})
		return
	case errors.Is(err, auth.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username and password are required"})
		return
	// 404 on bad credentials is wire parity with the original API.
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "invalid username or password"})
		return
	// booking service
	case errors.Is(err, booking.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
		return
	case errors.Is(err, booking.ErrCapacityExceeded):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "not enough tickets available"})
		return
	case errors.Is(err, booking.ErrInvalidTickets):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "number of tickets must be positive"})
		return
	case errors.Is(err, booking.ErrMissingUserName):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user name is required"})
		return
	// events service
	case errors.Is(err, events.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, events.ErrInvalidEvent):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event"})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
