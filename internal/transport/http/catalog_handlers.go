package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/service"
)

// CatalogHandlers — тонкий passthrough к админскому CRUD каталогов.
type CatalogHandlers struct {
	catalog *service.CatalogService
}

func NewCatalogHandlers(catalog *service.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog}
}

func (h *CatalogHandlers) CreateRoom(c *gin.Context) {
	var in service.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	room, err := h.catalog.CreateRoom(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *CatalogHandlers) ListRooms(c *gin.Context) {
	rooms, err := h.catalog.ListRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *CatalogHandlers) UpdateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	var in service.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	room, err := h.catalog.UpdateRoom(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *CatalogHandlers) DeleteRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	if err := h.catalog.DeleteRoom(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Room deleted."})
}

func (h *CatalogHandlers) CreateTimeslot(c *gin.Context) {
	var in service.TimeslotInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	slot, err := h.catalog.CreateTimeslot(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (h *CatalogHandlers) ListTimeslots(c *gin.Context) {
	slots, err := h.catalog.ListTimeslots(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *CatalogHandlers) UpdateTimeslot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("timeslot_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timeslot id"})
		return
	}
	var in service.TimeslotInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	slot, err := h.catalog.UpdateTimeslot(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *CatalogHandlers) DeleteTimeslot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("timeslot_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timeslot id"})
		return
	}
	if err := h.catalog.DeleteTimeslot(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Timeslot deleted."})
}
