package storage

import (
	"context"
	"errors"

	"github.com/radionovroman/tic-tac-toe-backend/models"
	"gorm.io/gorm"
)

// DB implements Store over a gorm connection.
type DB struct {
	db *gorm.DB
}

func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// Migrate creates or updates the schema for all entities.
func (s *DB) Migrate() error {
	return s.db.AutoMigrate(&models.User{}, &models.ImageSlot{}, &models.ShareBundle{})
}

func (s *DB) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DB{db: tx})
	})
}

func (s *DB) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *DB) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, wrapErr(err)
}

func (s *DB) UserByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	return user, wrapErr(err)
}

func (s *DB) CreateSlot(ctx context.Context, slot *models.ImageSlot) error {
	return s.db.WithContext(ctx).Create(slot).Error
}

func (s *DB) SaveSlot(ctx context.Context, slot *models.ImageSlot) error {
	return s.db.WithContext(ctx).Save(slot).Error
}

func (s *DB) DeleteSlot(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.ImageSlot{}, id).Error
}

func (s *DB) CurrentSlots(ctx context.Context, ownerID uint) ([]models.ImageSlot, error) {
	var slots []models.ImageSlot
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND bundle_id IS NULL", ownerID).
		Order("id ASC").
		Find(&slots).Error
	return slots, err
}

func (s *DB) LatestCurrentSlots(ctx context.Context, ownerID uint, n int) ([]models.ImageSlot, error) {
	var slots []models.ImageSlot
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND bundle_id IS NULL", ownerID).
		Order("id DESC").
		Limit(n).
		Find(&slots).Error
	return slots, err
}

func (s *DB) SlotsByBundle(ctx context.Context, bundleID uint) ([]models.ImageSlot, error) {
	var slots []models.ImageSlot
	err := s.db.WithContext(ctx).
		Where("bundle_id = ?", bundleID).
		Order("id ASC").
		Find(&slots).Error
	return slots, err
}

func (s *DB) AssignBundle(ctx context.Context, slotIDs []uint, bundleID uint) error {
	if len(slotIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.ImageSlot{}).
		Where("id IN ?", slotIDs).
		Update("bundle_id", bundleID).Error
}

func (s *DB) CreateBundle(ctx context.Context, bundle *models.ShareBundle) error {
	return s.db.WithContext(ctx).Create(bundle).Error
}

func (s *DB) BundleByToken(ctx context.Context, token string) (models.ShareBundle, error) {
	var bundle models.ShareBundle
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&bundle).Error
	return bundle, wrapErr(err)
}

func wrapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
