package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/service"
)

type BookingHandlers struct {
	bookings     *service.BookingService
	availability *service.AvailabilityService
}

func NewBookingHandlers(bookings *service.BookingService, availability *service.AvailabilityService) *BookingHandlers {
	return &BookingHandlers{bookings: bookings, availability: availability}
}

type createBookingPayload struct {
	Room      *string `json:"room"`
	RoomType  *string `json:"room_type"`
	Date      string  `json:"date"`
	TimeSlot  *string `json:"time_slot"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Team      *string `json:"team"`
}

func (h *BookingHandlers) Create(c *gin.Context) {
	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := service.CreateBookingRequest{
		Date:      payload.Date,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
	}

	if payload.Room != nil {
		id, err := uuid.Parse(*payload.Room)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
			return
		}
		req.RoomID = &id
	}
	if payload.RoomType != nil {
		rt := model.RoomType(*payload.RoomType)
		req.RoomType = &rt
	}
	if payload.TimeSlot != nil {
		id, err := uuid.Parse(*payload.TimeSlot)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time_slot id"})
			return
		}
		req.TimeslotID = &id
	}
	if payload.Team != nil {
		id, err := uuid.Parse(*payload.Team)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
			return
		}
		req.TeamID = &id
	}

	bookingID, err := h.bookings.Create(c.Request.Context(), mustRequestContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking_id": bookingID})
}

func (h *BookingHandlers) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.bookings.Cancel(c.Request.Context(), mustRequestContext(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": "Booking cancelled."})
}

func (h *BookingHandlers) List(c *gin.Context) {
	bookings, err := h.bookings.List(c.Request.Context(), mustRequestContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandlers) ListAvailable(c *gin.Context) {
	q := service.AvailabilityQuery{
		Date:      c.Query("date"),
		StartTime: c.Query("start_time"),
		EndTime:   c.Query("end_time"),
	}
	if v := c.Query("room_type"); v != "" {
		rt := model.RoomType(v)
		q.RoomType = &rt
	}
	q.Page = intQuery(c, "page", 1)
	q.PageSize = intQuery(c, "page_size", 10)

	page, err := h.availability.ListAvailable(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rooms":     page.Items,
		"page":      page.Page,
		"page_size": page.PageSize,
		"has_next":  page.HasNext,
		"has_prev":  page.HasPrev,
		"total":     page.Total,
	})
}
