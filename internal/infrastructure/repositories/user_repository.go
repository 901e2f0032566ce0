package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID          uint       `gorm:"primaryKey"`
	PhoneNumber string     `gorm:"uniqueIndex;size:32"`
	IsVerified  bool       `gorm:"index"`
	CreatedAt   time.Time  `gorm:"index"`
	LastLogin   *time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// FindOrCreate implements domain.UserRepository. The phone column carries
// a unique index, so a duplicate-insert race resolves to fetching the
// winner rather than a second row.
func (r *UserRepositoryImpl) FindOrCreate(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&dbUser).Error
	if err == nil {
		return r.dbToDomain(&dbUser), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dbUser = DBUser{
		PhoneNumber: phone,
		IsVerified:  false,
	}
	if err := r.db.WithContext(ctx).Create(&dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByPhone(ctx, phone)
		}
		return nil, err
	}

	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// MarkVerified implements domain.UserRepository. The verified flag is
// monotonic: once true it is never flipped back by this repository.
func (r *UserRepositoryImpl) MarkVerified(ctx context.Context, phone string, now time.Time) (*domain.User, error) {
	tx := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("phone_number = ?", phone).
		Updates(map[string]interface{}{
			"is_verified": true,
			"last_login":  now,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}

	return r.FindByPhone(ctx, phone)
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:          dbUser.ID,
		PhoneNumber: dbUser.PhoneNumber,
		IsVerified:  dbUser.IsVerified,
		CreatedAt:   dbUser.CreatedAt,
		LastLogin:   dbUser.LastLogin,
	}
}
