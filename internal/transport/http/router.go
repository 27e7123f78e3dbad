package http

import (
	"github.com/gin-gonic/gin"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/service"
)

// NewRouter собирает все маршруты. /signup и /login открыты, остальное —
// за access-токеном; каталоги комнат и слотов доступны на запись только
// админам.
func NewRouter(
	identity *service.IdentityService,
	bookings *service.BookingService,
	availability *service.AvailabilityService,
	teams *service.TeamService,
	catalog *service.CatalogService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	identityH := NewIdentityHandlers(identity)
	bookingH := NewBookingHandlers(bookings, availability)
	teamH := NewTeamHandlers(teams)
	catalogH := NewCatalogHandlers(catalog)

	r.POST("/signup", identityH.Signup)
	r.POST("/login", identityH.Login)

	auth := r.Group("/", AuthMiddleware(identity))
	{
		auth.POST("/bookings", bookingH.Create)
		auth.POST("/cancel/:booking_id", bookingH.Cancel)
		auth.GET("/bookings/list", bookingH.List)
		auth.GET("/rooms/available", bookingH.ListAvailable)

		auth.POST("/teams", teamH.Create)
		auth.GET("/teams", teamH.List)
		auth.GET("/teams/:team_id", teamH.Get)
		auth.PUT("/teams/:team_id", teamH.Update)
		auth.DELETE("/teams/:team_id", teamH.Delete)
		auth.POST("/teams/:team_id/join", teamH.Join)

		auth.GET("/rooms", catalogH.ListRooms)
		auth.GET("/timeslots", catalogH.ListTimeslots)

		admin := auth.Group("/", AdminOnly())
		{
			admin.POST("/teams/:team_id/members", teamH.AddMember)

			admin.POST("/rooms", catalogH.CreateRoom)
			admin.PUT("/rooms/:room_id", catalogH.UpdateRoom)
			admin.DELETE("/rooms/:room_id", catalogH.DeleteRoom)

			admin.POST("/timeslots", catalogH.CreateTimeslot)
			admin.PUT("/timeslots/:timeslot_id", catalogH.UpdateTimeslot)
			admin.DELETE("/timeslots/:timeslot_id", catalogH.DeleteTimeslot)
		}
	}

	return r
}
