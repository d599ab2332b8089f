package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imorozov/carbook/internal/server/models"
)

type createBookingRequest struct {
	CarName    string `json:"carName"`
	Days       *int   `json:"days"`
	RentPerDay *int   `json:"rentPerDay"`
}

// updateBookingRequest covers both update shapes. Pointer fields distinguish
// "absent" from zero values; the handler decides which shape was requested.
type updateBookingRequest struct {
	Status     *string `json:"status"`
	CarName    *string `json:"carName"`
	Days       *int    `json:"days"`
	RentPerDay *int    `json:"rentPerDay"`
}

type bookingResponse struct {
	ID         string    `json:"id"`
	CarName    string    `json:"carName"`
	Days       int       `json:"days"`
	RentPerDay int       `json:"rentPerDay"`
	Status     string    `json:"status"`
	TotalCost  int       `json:"totalCost"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toBookingResponse(b *models.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		CarName:    b.CarName,
		Days:       b.Days,
		RentPerDay: b.RentPerDay,
		Status:     string(b.Status),
		TotalCost:  b.TotalCost(),
		CreatedAt:  b.CreatedAt,
	}
}

// handleCreateBooking serves POST /bookings.
func (s *RESTServer) handleCreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inputs"})
		return
	}
	if req.CarName == "" || req.Days == nil || req.RentPerDay == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inputs"})
		return
	}

	booking, err := s.bookings.Create(c.Request.Context(), callerID(c), req.CarName, *req.Days, *req.RentPerDay)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": toBookingResponse(booking)})
}

// handleGetBookings serves GET /bookings in three mutually exclusive modes:
// ?bookingId= for a single owner-scoped booking, ?summary=true for the
// aggregate, and no parameters for the full list.
func (s *RESTServer) handleGetBookings(c *gin.Context) {
	userID := callerID(c)

	if bookingID := c.Query("bookingId"); bookingID != "" {
		booking, err := s.bookings.Get(c.Request.Context(), userID, bookingID)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"booking": toBookingResponse(booking)})
		return
	}

	if c.Query("summary") == "true" {
		summary, err := s.bookings.Summary(c.Request.Context(), userID)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"summary": gin.H{
			"totalBookings": summary.TotalBookings,
			"totalCost":     summary.TotalCost,
		}})
		return
	}

	list, err := s.bookings.List(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": resp})
}

// handleUpdateBooking serves PUT /bookings/:bookingId. The body must be
// either a status-only transition or a full field replace; mixing the two
// shapes, or supplying neither completely, is rejected before any
// persistence call.
func (s *RESTServer) handleUpdateBooking(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inputs"})
		return
	}

	userID := callerID(c)
	bookingID := c.Param("bookingId")

	hasFields := req.CarName != nil || req.Days != nil || req.RentPerDay != nil

	switch {
	case req.Status != nil && hasFields:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inputs"})
	case req.Status != nil:
		booking, err := s.bookings.UpdateStatus(c.Request.Context(), userID, bookingID, models.BookingStatus(*req.Status))
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"booking": toBookingResponse(booking)})
	case req.CarName != nil && req.Days != nil && req.RentPerDay != nil:
		booking, err := s.bookings.UpdateFields(c.Request.Context(), userID, bookingID, *req.CarName, *req.Days, *req.RentPerDay)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"booking": toBookingResponse(booking)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inputs"})
	}
}

// handleDeleteBooking serves DELETE /bookings/:bookingId.
func (s *RESTServer) handleDeleteBooking(c *gin.Context) {
	err := s.bookings.Delete(c.Request.Context(), callerID(c), c.Param("bookingId"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
