package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	return d.db.Create(user).Error
}

func (d *Database) UpdateUser(user *models.User) error {
	return d.db.Save(user).Error
}

func (d *Database) GetUser(id uuid.UUID) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) UpdateLastSeen(id uuid.UUID) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now()).Error
}

func (d *Database) CreateClient(client *models.Client) error {
	return d.db.Create(client).Error
}

func (d *Database) GetClientByUserID(userID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := d.db.Preload("User").First(&client, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (d *Database) CreateSpecialist(spec *models.Specialist) error {
	return d.db.Create(spec).Error
}

func (d *Database) GetSpecialist(id uuid.UUID) (*models.Specialist, error) {
	var spec models.Specialist
	if err := d.db.Preload("User").First(&spec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &spec, nil
}

func (d *Database) GetSpecialistByUserID(userID uuid.UUID) (*models.Specialist, error) {
	var spec models.Specialist
	if err := d.db.Preload("User").First(&spec, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &spec, nil
}

func (d *Database) UpdateSpecialist(spec *models.Specialist) error {
	return d.db.Save(spec).Error
}

// ListSpecialists возвращает специалистов постранично, сначала с лучшим рейтингом
func (d *Database) ListSpecialists(limit, offset int) ([]models.Specialist, error) {
	var specs []models.Specialist
	err := d.db.
		Preload("User").
		Order("rating DESC, created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&specs).Error
	return specs, err
}
