package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-service/internal/domain/category"
	"course-service/internal/domain/order"
	"course-service/pkg/security"
)

// seedPassword is the password of every demo user.
const seedPassword = "123456"

// Seed fills an empty database with demo users, categories and orders.
// It does nothing when any user already exists.
func Seed(ctx context.Context, db *gorm.DB, hasher *security.PasswordHasher, log *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&UserSchema{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if count > 0 {
			log.Info("database already has data, skipping seed", zap.Int64("users", count))
			return nil
		}

		hash, err := hasher.Hash(seedPassword)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}

		users := []UserSchema{
			{Name: "Maria Brown", Email: "maria@gmail.com", Phone: "988888888", PasswordHash: hash},
			{Name: "Alex Green", Email: "alex@gmail.com", Phone: "977777777", PasswordHash: hash},
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}

		categoryNames := []string{"Electronics", "Books", "Computers"}
		categories := NewCategoryRepository(tx, log)
		for _, name := range categoryNames {
			if _, err := categories.Create(ctx, &category.Category{Name: name}); err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
		}

		orders := NewOrderRepository(tx, log)
		seedOrders := []order.Order{
			{Moment: time.Date(2019, 6, 20, 19, 53, 7, 0, time.UTC), Status: order.StatusPaid, ClientID: users[0].ID},
			{Moment: time.Date(2019, 7, 21, 3, 42, 10, 0, time.UTC), Status: order.StatusWaitingPayment, ClientID: users[1].ID},
			{Moment: time.Date(2019, 7, 22, 15, 21, 22, 0, time.UTC), Status: order.StatusWaitingPayment, ClientID: users[0].ID},
		}
		for i := range seedOrders {
			if _, err := orders.Create(ctx, &seedOrders[i]); err != nil {
				return fmt.Errorf("seed orders: %w", err)
			}
		}

		log.Info("database seeded",
			zap.Int("users", len(users)),
			zap.Int("categories", len(categoryNames)),
			zap.Int("orders", len(seedOrders)),
		)
		return nil
	})
}
