package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/skillbridge/internal/models"
	"gorm.io/gorm"
)

func (d *Database) CreateBooking(b *models.Booking) error {
	return d.db.Create(b).Error
}

func (d *Database) GetBooking(id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := d.db.
		Preload("Client.User").
		Preload("Specialist.User").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (d *Database) UpdateBooking(b *models.Booking) error {
	return d.db.Save(b).Error
}

func (d *Database) GetClientBookings(clientID uuid.UUID) ([]models.Booking, error) {
	var list []models.Booking
	err := d.db.
		Where("client_id = ?", clientID).
		Preload("Specialist.User").
		Order("starts_at DESC").
		Find(&list).Error
	return list, err
}

func (d *Database) GetSpecialistBookings(specialistID uuid.UUID) ([]models.Booking, error) {
	var list []models.Booking
	err := d.db.
		Where("specialist_id = ?", specialistID).
		Preload("Client.User").
		Order("starts_at DESC").
		Find(&list).Error
	return list, err
}

func (d *Database) CreateReview(r *models.Review) error {
	return d.db.Create(r).Error
}

func (d *Database) GetReviewByBooking(bookingID uuid.UUID) (*models.Review, error) {
	var r models.Review
	if err := d.db.First(&r, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (d *Database) GetSpecialistReviews(specialistID uuid.UUID, limit, offset int) ([]models.Review, error) {
	var list []models.Review
	err := d.db.
		Where("specialist_id = ?", specialistID).
		Preload("Client.User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	return list, err
}

// RecalculateSpecialistRating пересчитывает рейтинг и счетчик отзывов одним апдейтом
func (d *Database) RecalculateSpecialistRating(specialistID uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var stats struct {
			Avg   float64
			Count int
		}
		err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("specialist_id = ?", specialistID).
			Scan(&stats).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Specialist{}).
			Where("id = ?", specialistID).
			Updates(map[string]interface{}{"rating": stats.Avg, "review_count": stats.Count}).Error
	})
}

func (d *Database) CreateWithdrawal(w *models.Withdrawal) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Specialist{}).
			Where("id = ? AND balance >= ?", w.SpecialistID, w.Amount).
			Update("balance", gorm.Expr("balance - ?", w.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		return tx.Create(w).Error
	})
}

func (d *Database) GetSpecialistWithdrawals(specialistID uuid.UUID) ([]models.Withdrawal, error) {
	var list []models.Withdrawal
	err := d.db.
		Where("specialist_id = ?", specialistID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}
