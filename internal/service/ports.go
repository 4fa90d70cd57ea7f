package service

import (
	"context"
	"time"

	"palcolivre/api/internal/models"
)

// Storage ports implemented by internal/repository on pgx. Implementations
// report missing (or not-owned) rows as ErrNotFound and duplicate user
// emails as ErrEmailTaken.

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	GetByID(ctx context.Context, id string) (models.Session, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type InstrumentStore interface {
	Create(ctx context.Context, instrument models.Instrument) error
	List(ctx context.Context) ([]models.Instrument, error)
	GetByID(ctx context.Context, id string) (models.Instrument, error)
	Update(ctx context.Context, instrument models.Instrument) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter models.InstrumentFilter) ([]models.Instrument, error)
}

type PhotoStore interface {
	// SetPrincipal inserts the photo and clears the principal flag on any
	// previous photo of the same owner, atomically.
	SetPrincipal(ctx context.Context, photo models.Photo) error
	PrincipalForUser(ctx context.Context, userID string) (models.Photo, error)
	PrincipalForInstrument(ctx context.Context, instrumentID string) (models.Photo, error)
}

type CartStore interface {
	// Upsert adds the item or increments the quantity of the existing
	// (user, instrument) row in a single atomic statement.
	Upsert(ctx context.Context, item models.CartItem) (models.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]models.CartEntry, error)
	Delete(ctx context.Context, userID string, itemID string) error
	EntriesForCheckout(ctx context.Context, userID string) ([]models.CartEntry, error)
}

type OrderStore interface {
	Create(ctx context.Context, order models.Order) error
	ListByUser(ctx context.Context, userID string) ([]models.OrderDetail, error)
	GetByID(ctx context.Context, userID string, orderID string) (models.OrderDetail, error)
	// UpdateStatuses patches only the non-nil axes, scoped to the owner.
	UpdateStatuses(ctx context.Context, userID string, orderID string, entrega *models.DeliveryStatus, pagamento *models.OrderPaymentStatus) error
	PurchaseByID(ctx context.Context, userID string, purchaseID string) (models.Purchase, error)
	// CreateFromCart snapshots the user's cart into a purchase plus its
	// items, creates the pedido and empties the cart in one transaction.
	CreateFromCart(ctx context.Context, order models.Order, purchase models.Purchase, items []models.PurchaseItem) error
}

// BlobStore is the object storage behind photo uploads, implemented by
// internal/storage on minio.
type BlobStore interface {
	Put(ctx context.Context, objectKey string, contentType string, data []byte) error
	URL(objectKey string) string
}

type PaymentStore interface {
	Create(ctx context.Context, payment models.Payment) error
	GetByID(ctx context.Context, userID string, paymentID string) (models.Payment, error)
	// UpdateStatus sets the payment status verbatim and the derived status
	// on the linked pedido in one transaction, scoped to the owner.
	UpdateStatus(ctx context.Context, userID string, paymentID string, status string, derived models.OrderPaymentStatus) (models.Payment, error)
}
