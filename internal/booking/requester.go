package booking

import (
	"github.com/google/uuid"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
)

// RequesterKind различает, от чьего имени размещается бронь.
type RequesterKind int

const (
	RequesterUser RequesterKind = iota
	RequesterTeam
)

// Requester — tagged union "пользователь или команда" (ровно один вид).
type Requester struct {
	Kind   RequesterKind
	UserID uuid.UUID
	TeamID uuid.UUID
}

func UserRequester(userID uuid.UUID) Requester {
	return Requester{Kind: RequesterUser, UserID: userID}
}

func TeamRequester(teamID, placedBy uuid.UUID) Requester {
	return Requester{Kind: RequesterTeam, TeamID: teamID, UserID: placedBy}
}

// CompatibleWith проверяет совместимость вида requester-а с типом комнаты:
// команда допустима только для конференц-залов, всё остальное бронируется
// от имени пользователя.
func (r Requester) CompatibleWith(roomType model.RoomType) bool {
	if r.Kind == RequesterTeam {
		return roomType == model.RoomTypeConference
	}
	return roomType != model.RoomTypeConference
}

// RequestContext — явная идентичность вызывающего, передаётся в каждый
// вызов движка вместо неявных объектов запроса.
type RequestContext struct {
	UserID uuid.UUID
	Role   model.UserRole
}

func (rc RequestContext) IsAdmin() bool {
	return rc.Role == model.UserRoleAdmin
}
