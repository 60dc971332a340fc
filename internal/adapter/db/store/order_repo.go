package store

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"course-service/internal/domain/order"
)

// OrderRepository stores orders, the records that pin their client user.
type OrderRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *gorm.DB, log *zap.Logger) *OrderRepository {
	return &OrderRepository{db: db, log: log}
}

// Create inserts an order for an existing client.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	model := OrderSchema{
		Moment:   o.Moment.UTC(),
		Status:   o.Status,
		ClientID: o.ClientID,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		r.log.Error("failed to create order in db", zap.Error(err), zap.Int64("client_id", o.ClientID))
		return nil, translate(err, "order", "failed to create order")
	}
	return model.toDomain(), nil
}

// ListByClient returns the orders of one client, oldest first.
func (r *OrderRepository) ListByClient(ctx context.Context, clientID int64) ([]order.Order, error) {
	var models []OrderSchema
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("moment, id").Find(&models).Error; err != nil {
		r.log.Error("failed to list orders from db", zap.Error(err), zap.Int64("client_id", clientID))
		return nil, translate(err, "order", "failed to list orders")
	}

	orders := make([]order.Order, len(models))
	for i, m := range models {
		orders[i] = *m.toDomain()
	}
	return orders, nil
}

func (m OrderSchema) toDomain() *order.Order {
	return &order.Order{
		ID:       m.ID,
		Moment:   m.Moment,
		Status:   m.Status,
		ClientID: m.ClientID,
	}
}
