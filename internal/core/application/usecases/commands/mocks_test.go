package commands_test

import (
	"context"
	"log/slog"
	"time"

	"topup/internal/core/application/usecases/commands"
	"topup/internal/core/domain/model/catalog"
	"topup/internal/core/domain/model/identity"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/domain/model/order"
	"topup/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) ListByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, buyerID)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListProofRefs(ctx context.Context) (map[kernel.UUID]order.ProofFilename, error) {
	args := m.Called(ctx)
	refs, _ := args.Get(0).(map[kernel.UUID]order.ProofFilename)
	return refs, args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) Get(ctx context.Context, name string) (catalog.Entry, error) {
	args := m.Called(ctx, name)
	entry, _ := args.Get(0).(catalog.Entry)
	return entry, args.Error(1)
}

func (m *MockCatalogRepository) List(ctx context.Context) ([]catalog.Entry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]catalog.Entry)
	return entries, args.Error(1)
}

func (m *MockCatalogRepository) Add(ctx context.Context, entry catalog.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

type MockBlobStore struct{ mock.Mock }

func (m *MockBlobStore) Save(ctx context.Context, name string, data []byte) error {
	return m.Called(ctx, name, data).Error(0)
}

func (m *MockBlobStore) Read(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockBlobStore) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlobStore) Stat(ctx context.Context, name string) (ports.BlobInfo, error) {
	args := m.Called(ctx, name)
	info, _ := args.Get(0).(ports.BlobInfo)
	return info, args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockBlobStore) List(ctx context.Context) ([]ports.BlobInfo, error) {
	args := m.Called(ctx)
	blobs, _ := args.Get(0).([]ports.BlobInfo)
	return blobs, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockUoW struct {
	MockOrderUoW
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	return m.Called().Get(0).(ports.CatalogRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func buyer() identity.Identity {
	return identity.Identity{
		UserID:      kernel.NewUUID(),
		Username:    "budi",
		DisplayName: "Budi",
		Role:        identity.RoleBuyer,
	}
}

func admin() identity.Identity {
	return identity.Identity{
		UserID:   kernel.NewUUID(),
		Username: "admin",
		Role:     identity.RoleAdmin,
	}
}

func catalogEntry(name string, amount int64) catalog.Entry {
	price, err := kernel.NewPrice(amount)
	if err != nil {
		panic(err)
	}
	entry, err := catalog.NewEntry(name, price, "gems.png")
	if err != nil {
		panic(err)
	}
	return entry
}

func pendingOrder(owner identity.Identity) *order.Order {
	price, err := kernel.NewPrice(15000)
	if err != nil {
		panic(err)
	}
	o, err := order.NewOrder(kernel.NewUUID(), owner.UserID, owner.DisplayName, "100 Gems", price, testNow)
	if err != nil {
		panic(err)
	}
	return o
}

func awaitingOrder(owner identity.Identity, proofName string) *order.Order {
	o := pendingOrder(owner)
	proof, err := order.NewProofFilename(proofName)
	if err != nil {
		panic(err)
	}
	if err = o.AttachProof(proof); err != nil {
		panic(err)
	}
	return o
}

func confirmedOrder(owner identity.Identity) *order.Order {
	o := awaitingOrder(owner, "proof.jpg")
	if err := o.Confirm(); err != nil {
		panic(err)
	}
	return o
}

// orderUoW wires a MockOrderUoW returning repo; Rollback is always allowed since handlers defer it.
func orderUoW(repo *MockOrderRepository) (*MockOrderUoWFactory, *MockOrderUoW) {
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}
