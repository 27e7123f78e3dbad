package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/booking"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/repository"
)

// TeamService — реестр команд. Создатель становится лидом и сразу
// участником: порог мест для конференц-брони считается по участникам,
// и лид в него входит.
type TeamService struct {
	teams repository.TeamRepository
	users repository.UserRepository
}

func NewTeamService(teams repository.TeamRepository, users repository.UserRepository) *TeamService {
	return &TeamService{teams: teams, users: users}
}

func (s *TeamService) Create(ctx context.Context, rc booking.RequestContext, name string) (*model.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, booking.NewValidationError("name is required")
	}

	team := &model.Team{Name: name, CreatedByID: rc.UserID}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	return s.teams.GetByID(ctx, team.ID)
}

func (s *TeamService) List(ctx context.Context, rc booking.RequestContext) ([]model.Team, error) {
	if rc.IsAdmin() {
		return s.teams.List(ctx)
	}
	return s.teams.ListCreatedOrMember(ctx, rc.UserID)
}

// Get отдаёт команду админу или её лиду.
func (s *TeamService) Get(ctx context.Context, rc booking.RequestContext, id uuid.UUID) (*model.Team, error) {
	team, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rc.IsAdmin() && team.CreatedByID != rc.UserID {
		return nil, booking.NewForbiddenError("Only team lead can manage this team.")
	}
	return team, nil
}

func (s *TeamService) Update(ctx context.Context, rc booking.RequestContext, id uuid.UUID, name string) (*model.Team, error) {
	if _, err := s.Get(ctx, rc, id); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, booking.NewValidationError("name is required")
	}
	if err := s.teams.Update(ctx, id, name); err != nil {
		return nil, err
	}
	return s.teams.GetByID(ctx, id)
}

func (s *TeamService) Delete(ctx context.Context, rc booking.RequestContext, id uuid.UUID) error {
	if _, err := s.Get(ctx, rc, id); err != nil {
		return err
	}
	return s.teams.Delete(ctx, id)
}

// Join — самостоятельное вступление вызывающего в команду.
func (s *TeamService) Join(ctx context.Context, rc booking.RequestContext, teamID uuid.UUID) error {
	if _, err := s.load(ctx, teamID); err != nil {
		return err
	}
	return s.teams.AddMember(ctx, teamID, rc.UserID)
}

// AddMember — добавление любого пользователя админом.
func (s *TeamService) AddMember(ctx context.Context, rc booking.RequestContext, teamID, userID uuid.UUID) error {
	if !rc.IsAdmin() {
		return booking.NewForbiddenError("Only admin can add members to any team.")
	}
	if _, err := s.load(ctx, teamID); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return booking.NewNotFoundError("User not found.")
		}
		return err
	}
	return s.teams.AddMember(ctx, teamID, userID)
}

func (s *TeamService) load(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.NewNotFoundError("Team not found.")
		}
		return nil, err
	}
	return team, nil
}
