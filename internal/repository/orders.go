package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/service"
)

// DefaultOrderListLimit caps ListOrders when no limit is given.
const DefaultOrderListLimit = 50

// OrderDocument is an order as stored in the orders collection.
type OrderDocument struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty"`
	UserID    *string                `bson:"user_id,omitempty"`
	SessionID string                 `bson:"session_id,omitempty"`
	Phone     string                 `bson:"phone"`
	Address   model.Address          `bson:"address"`
	Pizzas    []model.PizzaSelection `bson:"pizzas"`
	Misc      []model.MiscSelection  `bson:"misc"`
	CreatedAt time.Time              `bson:"created_at"`
}

// ToResult converts the document to the order result returned on publish.
func (d OrderDocument) ToResult() *model.OrderResult {
	return &model.OrderResult{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Phone:     d.Phone,
		Address:   d.Address,
		Pizzas:    d.Pizzas,
		Misc:      d.Misc,
		CreatedAt: d.CreatedAt,
	}
}

// ToOrder converts the document to the persisted order representation.
func (d OrderDocument) ToOrder() model.Order {
	order := model.OrderFromSelections(d.ID.Hex(), d.Phone, d.Pizzas, d.Misc)
	address := d.Address
	createdAt := d.CreatedAt
	order.UserID = d.UserID
	order.SessionID = d.SessionID
	order.Address = &address
	order.CreatedAt = &createdAt
	return order
}

// OrderRepository stores submitted orders in MongoDB.
// It is used when no external order backend is configured.
type OrderRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *MongoDB) *OrderRepository {
	return &OrderRepository{
		collection: db.Orders,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder inserts payload as a new order, tagged with the cart session on ctx.
func (r *OrderRepository) CreateOrder(ctx context.Context, payload model.OrderPayload) (*model.OrderResult, error) {
	doc := OrderDocument{
		ID:        primitive.NewObjectID(),
		UserID:    payload.UserID,
		Phone:     payload.Phone,
		Address:   payload.Address,
		Pizzas:    payload.Pizzas,
		Misc:      payload.Misc,
		CreatedAt: r.now().Truncate(time.Millisecond),
	}
	if sessionID, ok := service.SessionIDFromContext(ctx); ok {
		doc.SessionID = sessionID
	}
	if doc.Pizzas == nil {
		doc.Pizzas = []model.PizzaSelection{}
	}
	if doc.Misc == nil {
		doc.Misc = []model.MiscSelection{}
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.ToResult(), nil
}

// GetOrder returns the order with the given hex id.
// Malformed and unknown ids both yield model.ErrOrderNotFound.
func (r *OrderRepository) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrOrderNotFound
	}

	var doc OrderDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	order := doc.ToOrder()
	return &order, nil
}

// ListOrders returns the orders of userID, newest first.
func (r *OrderRepository) ListOrders(ctx context.Context, userID string, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = DefaultOrderListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []OrderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, doc.ToOrder())
	}
	return orders, nil
}
