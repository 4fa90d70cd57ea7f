package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"palcolivre/api/internal/models"
)

// In-memory store fakes. They mirror the repository contract: absent rows
// and rows owned by someone else both come back as ErrNotFound.

type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

type fakeSessionStore struct {
	sessions map[string]models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]models.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, session models.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id string) (models.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return models.Session{}, ErrNotFound
	}
	return session, nil
}

func (f *fakeSessionStore) DeleteByID(_ context.Context, id string) error {
	if _, ok := f.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for id, session := range f.sessions {
		if session.ExpiresAt.Before(now) {
			delete(f.sessions, id)
			removed++
		}
	}
	return removed, nil
}

type fakeInstrumentStore struct {
	instruments map[string]models.Instrument
}

func newFakeInstrumentStore() *fakeInstrumentStore {
	return &fakeInstrumentStore{instruments: make(map[string]models.Instrument)}
}

func (f *fakeInstrumentStore) Create(_ context.Context, instrument models.Instrument) error {
	f.instruments[instrument.ID] = instrument
	return nil
}

func (f *fakeInstrumentStore) List(_ context.Context) ([]models.Instrument, error) {
	out := make([]models.Instrument, 0, len(f.instruments))
	for _, instrument := range f.instruments {
		out = append(out, instrument)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeInstrumentStore) GetByID(_ context.Context, id string) (models.Instrument, error) {
	instrument, ok := f.instruments[id]
	if !ok {
		return models.Instrument{}, ErrNotFound
	}
	return instrument, nil
}

func (f *fakeInstrumentStore) Update(_ context.Context, instrument models.Instrument) error {
	if _, ok := f.instruments[instrument.ID]; !ok {
		return ErrNotFound
	}
	f.instruments[instrument.ID] = instrument
	return nil
}

func (f *fakeInstrumentStore) Delete(_ context.Context, id string) error {
	if _, ok := f.instruments[id]; !ok {
		return ErrNotFound
	}
	delete(f.instruments, id)
	return nil
}

func (f *fakeInstrumentStore) Search(_ context.Context, filter models.InstrumentFilter) ([]models.Instrument, error) {
	var out []models.Instrument
	for _, instrument := range f.instruments {
		if filter.Nome != "" && !strings.Contains(strings.ToLower(instrument.Nome), strings.ToLower(filter.Nome)) {
			continue
		}
		if filter.Categoria != "" && instrument.Categoria != filter.Categoria {
			continue
		}
		if filter.Marca != "" && instrument.Marca != filter.Marca {
			continue
		}
		if filter.PrecoMin != nil && instrument.Preco < *filter.PrecoMin {
			continue
		}
		if filter.PrecoMax != nil && instrument.Preco > *filter.PrecoMax {
			continue
		}
		out = append(out, instrument)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

type fakeCartStore struct {
	items       map[string]models.CartItem
	instruments *fakeInstrumentStore
}

func newFakeCartStore(instruments *fakeInstrumentStore) *fakeCartStore {
	return &fakeCartStore{
		items:       make(map[string]models.CartItem),
		instruments: instruments,
	}
}

func (f *fakeCartStore) Upsert(_ context.Context, item models.CartItem) (models.CartItem, error) {
	for id, existing := range f.items {
		if existing.UserID == item.UserID && existing.InstrumentID == item.InstrumentID {
			existing.Quantidade += item.Quantidade
			f.items[id] = existing
			return existing, nil
		}
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeCartStore) ListByUser(_ context.Context, userID string) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	for _, item := range f.items {
		if item.UserID != userID {
			continue
		}
		entry := models.CartEntry{CartItem: item}
		if instrument, ok := f.instruments.instruments[item.InstrumentID]; ok {
			entry.Nome = instrument.Nome
			entry.Preco = instrument.Preco
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (f *fakeCartStore) EntriesForCheckout(ctx context.Context, userID string) ([]models.CartEntry, error) {
	return f.ListByUser(ctx, userID)
}

func (f *fakeCartStore) Delete(_ context.Context, userID string, itemID string) error {
	item, ok := f.items[itemID]
	if !ok || item.UserID != userID {
		return ErrNotFound
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeCartStore) clear(userID string) {
	for id, item := range f.items {
		if item.UserID == userID {
			delete(f.items, id)
		}
	}
}

type fakeOrderStore struct {
	orders        map[string]models.Order
	purchases     map[string]models.Purchase
	purchaseItems map[string][]models.PurchaseItem
	cart          *fakeCartStore
}

func newFakeOrderStore(cart *fakeCartStore) *fakeOrderStore {
	return &fakeOrderStore{
		orders:        make(map[string]models.Order),
		purchases:     make(map[string]models.Purchase),
		purchaseItems: make(map[string][]models.PurchaseItem),
		cart:          cart,
	}
}

func (f *fakeOrderStore) Create(_ context.Context, order models.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderStore) ListByUser(_ context.Context, userID string) ([]models.OrderDetail, error) {
	var out []models.OrderDetail
	for _, order := range f.orders {
		if order.UserID != userID {
			continue
		}
		out = append(out, models.OrderDetail{Order: order, Purchase: f.purchases[order.PurchaseID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, userID string, orderID string) (models.OrderDetail, error) {
	order, ok := f.orders[orderID]
	if !ok || order.UserID != userID {
		return models.OrderDetail{}, ErrNotFound
	}
	return models.OrderDetail{Order: order, Purchase: f.purchases[order.PurchaseID]}, nil
}

func (f *fakeOrderStore) UpdateStatuses(_ context.Context, userID string, orderID string, entrega *models.DeliveryStatus, pagamento *models.OrderPaymentStatus) error {
	order, ok := f.orders[orderID]
	if !ok || order.UserID != userID {
		return ErrNotFound
	}
	if entrega != nil {
		order.StatusEntrega = *entrega
	}
	if pagamento != nil {
		order.StatusPagamento = *pagamento
	}
	f.orders[orderID] = order
	return nil
}

func (f *fakeOrderStore) PurchaseByID(_ context.Context, userID string, purchaseID string) (models.Purchase, error) {
	purchase, ok := f.purchases[purchaseID]
	if !ok || purchase.UserID != userID {
		return models.Purchase{}, ErrNotFound
	}
	return purchase, nil
}

func (f *fakeOrderStore) CreateFromCart(_ context.Context, order models.Order, purchase models.Purchase, items []models.PurchaseItem) error {
	f.purchases[purchase.ID] = purchase
	f.purchaseItems[purchase.ID] = items
	f.orders[order.ID] = order
	if f.cart != nil {
		f.cart.clear(order.UserID)
	}
	return nil
}

type fakePaymentStore struct {
	payments map[string]models.Payment
	orders   *fakeOrderStore
}

func newFakePaymentStore(orders *fakeOrderStore) *fakePaymentStore {
	return &fakePaymentStore{
		payments: make(map[string]models.Payment),
		orders:   orders,
	}
}

func (f *fakePaymentStore) ownedBy(paymentID string, userID string) (models.Payment, bool) {
	payment, ok := f.payments[paymentID]
	if !ok {
		return models.Payment{}, false
	}
	order, ok := f.orders.orders[payment.OrderID]
	if !ok || order.UserID != userID {
		return models.Payment{}, false
	}
	return payment, true
}

func (f *fakePaymentStore) Create(_ context.Context, payment models.Payment) error {
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentStore) GetByID(_ context.Context, userID string, paymentID string) (models.Payment, error) {
	payment, ok := f.ownedBy(paymentID, userID)
	if !ok {
		return models.Payment{}, ErrNotFound
	}
	return payment, nil
}

func (f *fakePaymentStore) UpdateStatus(_ context.Context, userID string, paymentID string, status string, derived models.OrderPaymentStatus) (models.Payment, error) {
	payment, ok := f.ownedBy(paymentID, userID)
	if !ok {
		return models.Payment{}, ErrNotFound
	}
	payment.Status = status
	f.payments[paymentID] = payment

	order := f.orders.orders[payment.OrderID]
	order.StatusPagamento = derived
	f.orders.orders[order.ID] = order

	return payment, nil
}

type fakePhotoStore struct {
	byUser       map[string]models.Photo
	byInstrument map[string]models.Photo
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{
		byUser:       make(map[string]models.Photo),
		byInstrument: make(map[string]models.Photo),
	}
}

func (f *fakePhotoStore) SetPrincipal(_ context.Context, photo models.Photo) error {
	photo.Principal = true
	if photo.UserID != nil {
		f.byUser[*photo.UserID] = photo
	}
	if photo.InstrumentID != nil {
		f.byInstrument[*photo.InstrumentID] = photo
	}
	return nil
}

func (f *fakePhotoStore) PrincipalForUser(_ context.Context, userID string) (models.Photo, error) {
	photo, ok := f.byUser[userID]
	if !ok {
		return models.Photo{}, ErrNotFound
	}
	return photo, nil
}

func (f *fakePhotoStore) PrincipalForInstrument(_ context.Context, instrumentID string) (models.Photo, error) {
	photo, ok := f.byInstrument[instrumentID]
	if !ok {
		return models.Photo{}, ErrNotFound
	}
	return photo, nil
}

type fakeBlobStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (f *fakeBlobStore) Put(_ context.Context, objectKey string, contentType string, data []byte) error {
	f.objects[objectKey] = data
	f.types[objectKey] = contentType
	return nil
}

func (f *fakeBlobStore) URL(objectKey string) string {
	return "https://fotos.test/" + objectKey
}
