package repositories

import (
	"context"
	"fmt"

	"medipay/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DoctorPayout is a row of the admin payouts view: a doctor together
// with the balance currently owed.
type DoctorPayout struct {
	DoctorID uint            `json:"doctor_id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Balance  decimal.Decimal `json:"balance"`
}

// DoctorRepository reads doctor records. Doctors are owned by the
// identity subsystem; this service never creates or deletes them, it
// only reads payout details and lists payable doctors for admins.
type DoctorRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Doctor, error)
	ListPayable(ctx context.Context) ([]DoctorPayout, error)
}

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

// ListPayable returns doctors holding a positive wallet balance, largest
// balance first.
func (r *doctorRepository) ListPayable(ctx context.Context) ([]DoctorPayout, error) {
	var payouts []DoctorPayout
	err := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Select("doctors.id AS doctor_id, doctors.name, doctors.email, wallets.balance").
		Joins("JOIN wallets ON wallets.doctor_id = doctors.id").
		Where("wallets.balance > 0").
		Order("wallets.balance DESC").
		Scan(&payouts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payable doctors: %w", err)
	}
	return payouts, nil
}
