// Package gormstore implements store.Store over a relational database via
// gorm, for both the sqlite and postgres backends.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/store"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// translate maps gorm/driver errors onto the store sentinels so callers can
// match with errors.Is without knowing the backend.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "foreign key constraint") {
		return fmt.Errorf("%w: %s", store.ErrConflict, err.Error())
	}
	return err
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) CreateFreelancer(ctx context.Context, f *models.Freelancer) error {
	return translate(s.db.WithContext(ctx).Create(f).Error)
}

func (s *Store) GetFreelancer(ctx context.Context, id string) (*models.Freelancer, error) {
	var f models.Freelancer
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (s *Store) GetFreelancerByUserID(ctx context.Context, userID string) (*models.Freelancer, error) {
	var f models.Freelancer
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&f).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (s *Store) UpdateFreelancer(ctx context.Context, f *models.Freelancer) error {
	return translate(s.db.WithContext(ctx).Save(f).Error)
}

func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	return translate(s.db.WithContext(ctx).Create(c).Error)
}

func (s *Store) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) ListClients(ctx context.Context, freelancerID string) ([]models.Client, error) {
	var clients []models.Client
	err := s.db.WithContext(ctx).
		Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&clients).Error
	if err != nil {
		return nil, translate(err)
	}
	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *models.Client) error {
	return translate(s.db.WithContext(ctx).Save(c).Error)
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Client{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	// Items are written by CreateInvoiceItems; Omit keeps gorm from
	// persisting any attached association here.
	return translate(s.db.WithContext(ctx).Omit("Items", "Client").Create(inv).Error)
}

func (s *Store) CreateInvoiceItems(ctx context.Context, items []models.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return translate(s.db.WithContext(ctx).Create(&items).Error)
}

func (s *Store) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&inv).Error
	if err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, freelancerID string, limit, offset int) ([]models.Invoice, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("freelancer_id = ?", freelancerID).
		Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	if limit <= 0 {
		limit = -1 // no limit
	}
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).
		Where("freelancer_id = ?", freelancerID).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return invoices, total, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *models.Invoice) error {
	return translate(s.db.WithContext(ctx).Omit("Items", "Client").Save(inv).Error)
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	// Items cascade at the schema level; delete them explicitly as well so
	// sqlite without foreign_keys pragma behaves the same.
	if err := s.db.WithContext(ctx).Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
		return translate(err)
	}
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CountInvoices(ctx context.Context, freelancerID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("freelancer_id = ?", freelancerID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
