package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/service"
)

type TeamHandlers struct {
	teams *service.TeamService
}

func NewTeamHandlers(teams *service.TeamService) *TeamHandlers {
	return &TeamHandlers{teams: teams}
}

type teamPayload struct {
	Name string `json:"name"`
}

func (h *TeamHandlers) Create(c *gin.Context) {
	var payload teamPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	team, err := h.teams.Create(c.Request.Context(), mustRequestContext(c), payload.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

func (h *TeamHandlers) List(c *gin.Context) {
	teams, err := h.teams.List(c.Request.Context(), mustRequestContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *TeamHandlers) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("team_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
		return
	}

	team, err := h.teams.Get(c.Request.Context(), mustRequestContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *TeamHandlers) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("team_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
		return
	}

	var payload teamPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	team, err := h.teams.Update(c.Request.Context(), mustRequestContext(c), id, payload.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *TeamHandlers) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("team_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
		return
	}

	if err := h.teams.Delete(c.Request.Context(), mustRequestContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Team deleted."})
}

func (h *TeamHandlers) Join(c *gin.Context) {
	id, err := uuid.Parse(c.Param("team_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
		return
	}

	if err := h.teams.Join(c.Request.Context(), mustRequestContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Joined team."})
}

type addMemberPayload struct {
	UserID string `json:"user_id"`
}

func (h *TeamHandlers) AddMember(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("team_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
		return
	}

	var payload addMemberPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.teams.AddMember(c.Request.Context(), mustRequestContext(c), teamID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Member added."})
}
