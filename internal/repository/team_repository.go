package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
)

type TeamRepository interface {
	// Создать команду и сразу включить лида в участники (одной транзакцией).
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	Update(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Team, error)
	// Команды, которые пользователь создал или в которых состоит.
	ListCreatedOrMember(ctx context.Context, userID uuid.UUID) ([]model.Team, error)
	// Добавить участника; повторное добавление — no-op.
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	// Число участников с возрастом >= minAge.
	EligibleSeatCount(ctx context.Context, teamID uuid.UUID, minAge int) (int64, error)
}

type GormTeamRepository struct {
	db *gorm.DB
}

func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		member := model.TeamMember{TeamID: team.ID, UserID: team.CreatedByID}
		return tx.Create(&member).Error
	})
}

func (r *GormTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).
		Preload("Members").
		First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *GormTeamRepository) Update(ctx context.Context, id uuid.UUID, name string) error {
	return r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (r *GormTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.TeamMember{}, "team_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Team{}, "id = ?", id).Error
	})
}

func (r *GormTeamRepository) List(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Order("name ASC, id ASC").
		Find(&teams).Error
	return teams, err
}

func (r *GormTeamRepository) ListCreatedOrMember(ctx context.Context, userID uuid.UUID) ([]model.Team, error) {
	memberTeams := r.db.
		Model(&model.TeamMember{}).
		Select("team_id").
		Where("user_id = ?", userID)

	var teams []model.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("created_by_id = ? OR id IN (?)", userID, memberTeams).
		Order("name ASC, id ASC").
		Find(&teams).Error
	return teams, err
}

func (r *GormTeamRepository) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	member := model.TeamMember{TeamID: teamID, UserID: userID}
	return r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		FirstOrCreate(&member).Error
}

func (r *GormTeamRepository) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *GormTeamRepository) EligibleSeatCount(ctx context.Context, teamID uuid.UUID, minAge int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Joins("JOIN users ON users.id = team_members.user_id").
		Where("team_members.team_id = ?", teamID).
		Where("users.age >= ?", minAge).
		Count(&n).Error
	return n, err
}
