package queries_test

import (
	"context"
	"testing"
	"time"

	"topup/internal/adapters/out/postgres/catalogrepo"
	"topup/internal/adapters/out/postgres/orderrepo"
	"topup/internal/adapters/out/postgres/pgtest"
	"topup/internal/core/application/usecases/queries"
	"topup/internal/core/domain/model/catalog"
	"topup/internal/core/domain/model/identity"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/domain/model/order"
	"topup/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type OrderQueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository
	catalog   *catalogrepo.GormCatalogRepository
	baseTime  time.Time
	alice     identity.Identity
	bob       identity.Identity
	admin     identity.Identity
}

func (suite *OrderQueriesIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
	suite.orders = orderrepo.NewGormOrderRepository(db, nopTracker{})
	suite.catalog = catalogrepo.NewGormCatalogRepository(db)
	suite.baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	suite.alice = identity.Identity{UserID: kernel.NewUUID(), Username: "alice", DisplayName: "Alice", Role: identity.RoleBuyer}
	suite.bob = identity.Identity{UserID: kernel.NewUUID(), Username: "bob", DisplayName: "Bob", Role: identity.RoleBuyer}
	suite.admin = identity.Identity{UserID: kernel.NewUUID(), Username: "admin", DisplayName: "Admin", Role: identity.RoleAdmin}
}

func (suite *OrderQueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *OrderQueriesIntegrationTestSuite) addOrder(buyer identity.Identity, pkg string, offset time.Duration) *order.Order {
	price, err := kernel.NewPrice(15000)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), buyer.UserID, buyer.DisplayName, pkg, price, suite.baseTime.Add(offset))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *OrderQueriesIntegrationTestSuite) addCatalogEntry(name string, amount int64) {
	price, err := kernel.NewPrice(amount)
	suite.Require().NoError(err)
	entry, err := catalog.NewEntry(name, price, name+".png")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.catalog.Add(context.Background(), entry))
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetBuyerOrders_ReturnsOnlyOwnOrdersInInsertionOrder() {
	first := suite.addOrder(suite.alice, "100 Gems", 0)
	suite.addOrder(suite.bob, "100 Gems", time.Minute)
	second := suite.addOrder(suite.alice, "500 Gems", 2*time.Minute)

	handler := queries.NewGetBuyerOrdersQueryHandler(suite.db)
	result, err := handler.Handle(context.Background(), queries.NewGetBuyerOrdersQuery(suite.alice))

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(first.ID(), result[0].ID)
	suite.Equal(second.ID(), result[1].ID)
	suite.Equal("Alice", result[0].BuyerName)
	suite.Equal(order.Pending, result[0].Status)
	suite.Empty(result[0].ProofRef)
	suite.True(suite.baseTime.Equal(result[0].CreatedAt))
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetBuyerOrders_Anonymous_ReturnsEmptyList() {
	suite.addOrder(suite.alice, "100 Gems", 0)

	handler := queries.NewGetBuyerOrdersQueryHandler(suite.db)
	result, err := handler.Handle(context.Background(), queries.NewGetBuyerOrdersQuery(identity.Anonymous))

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetBuyerOrders_InvalidQuery_ReturnsError() {
	handler := queries.NewGetBuyerOrdersQueryHandler(suite.db)
	result, err := handler.Handle(context.Background(), queries.GetBuyerOrdersQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetBuyerOrdersQueryIsNotConstructed)
	suite.Nil(result)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetAllOrders_AdminSeesEveryOrder() {
	first := suite.addOrder(suite.bob, "100 Gems", 0)
	second := suite.addOrder(suite.alice, "500 Gems", time.Minute)

	proof, err := order.NewProofFilename("transfer.png")
	suite.Require().NoError(err)
	suite.Require().NoError(second.AttachProof(proof))
	suite.Require().NoError(suite.orders.Update(context.Background(), second))

	handler := queries.NewGetAllOrdersQueryHandler(suite.db)
	result, err := handler.Handle(context.Background(), queries.NewGetAllOrdersQuery(suite.admin))

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(first.ID(), result[0].ID)
	suite.Equal(second.ID(), result[1].ID)
	suite.Equal(order.AwaitingReview, result[1].Status)
	suite.Equal("transfer.png", result[1].ProofRef)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetAllOrders_BuyerIsForbidden() {
	handler := queries.NewGetAllOrdersQueryHandler(suite.db)

	_, err := handler.Handle(context.Background(), queries.NewGetAllOrdersQuery(suite.alice))
	suite.ErrorIs(err, errs.ErrForbidden)

	_, err = handler.Handle(context.Background(), queries.NewGetAllOrdersQuery(identity.Anonymous))
	suite.ErrorIs(err, errs.ErrUnauthenticated)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_OwnerAndAdminCanRead() {
	o := suite.addOrder(suite.alice, "100 Gems", 0)
	handler := queries.NewGetOrderQueryHandler(suite.db)

	for _, actor := range []identity.Identity{suite.alice, suite.admin} {
		query, err := queries.NewGetOrderQuery(actor, o.ID())
		suite.Require().NoError(err)

		view, err := handler.Handle(context.Background(), query)
		suite.Require().NoError(err)
		suite.Equal(o.ID(), view.ID)
		suite.Equal(suite.alice.UserID, view.BuyerID)
		suite.Equal(int64(15000), view.UnitPrice.Amount())
	}
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_OtherBuyerIsForbidden() {
	o := suite.addOrder(suite.alice, "100 Gems", 0)
	query, err := queries.NewGetOrderQuery(suite.bob, o.ID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_Missing_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(suite.admin, kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetBestSellers_RanksByCountThenFirstPurchase() {
	suite.addCatalogEntry("100 Gems", 15000)
	suite.addCatalogEntry("500 Gems", 70000)
	suite.addCatalogEntry("1000 Gems", 135000)

	// 500 Gems and 1000 Gems tie on two orders; 1000 Gems was bought first.
	suite.addOrder(suite.alice, "100 Gems", 0)
	suite.addOrder(suite.alice, "1000 Gems", time.Minute)
	suite.addOrder(suite.bob, "500 Gems", 2*time.Minute)
	suite.addOrder(suite.bob, "100 Gems", 3*time.Minute)
	suite.addOrder(suite.alice, "500 Gems", 4*time.Minute)
	suite.addOrder(suite.bob, "1000 Gems", 5*time.Minute)
	suite.addOrder(suite.bob, "100 Gems", 6*time.Minute)

	query, err := queries.NewGetBestSellersQuery(3)
	suite.Require().NoError(err)

	result, err := queries.NewGetBestSellersQueryHandler(suite.db, suite.catalog).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("100 Gems", result[0].Name)
	suite.Equal(3, result[0].PurchaseCount)
	suite.Equal("1000 Gems", result[1].Name)
	suite.Equal(int64(135000), result[1].Price)
	suite.Equal("500 Gems", result[2].Name)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetBestSellers_CountsOrdersInEveryStatus() {
	suite.addCatalogEntry("100 Gems", 15000)
	suite.addCatalogEntry("500 Gems", 70000)

	suite.addOrder(suite.alice, "100 Gems", 0)
	reviewed := suite.addOrder(suite.bob, "100 Gems", time.Minute)
	confirmed := suite.addOrder(suite.alice, "100 Gems", 2*time.Minute)
	suite.addOrder(suite.alice, "500 Gems", 3*time.Minute)
	suite.addOrder(suite.bob, "500 Gems", 4*time.Minute)

	proof, err := order.NewProofFilename("transfer.png")
	suite.Require().NoError(err)
	suite.Require().NoError(reviewed.AttachProof(proof))
	suite.Require().NoError(suite.orders.Update(context.Background(), reviewed))
	suite.Require().NoError(confirmed.AttachProof(proof))
	suite.Require().NoError(confirmed.Confirm())
	suite.Require().NoError(suite.orders.Update(context.Background(), confirmed))

	query, err := queries.NewGetBestSellersQuery(6)
	suite.Require().NoError(err)

	result, err := queries.NewGetBestSellersQueryHandler(suite.db, suite.catalog).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("100 Gems", result[0].Name)
	suite.Equal(3, result[0].PurchaseCount)
	suite.Equal("500 Gems", result[1].Name)
	suite.Equal(2, result[1].PurchaseCount)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetBestSellers_DropsNamesMissingFromCatalogAfterTruncation() {
	suite.addCatalogEntry("100 Gems", 15000)
	suite.addCatalogEntry("500 Gems", 70000)

	suite.addOrder(suite.alice, "Retired Pack", 0)
	suite.addOrder(suite.bob, "Retired Pack", time.Minute)
	suite.addOrder(suite.alice, "100 Gems", 2*time.Minute)
	suite.addOrder(suite.alice, "500 Gems", 3*time.Minute)

	query, err := queries.NewGetBestSellersQuery(2)
	suite.Require().NoError(err)

	result, err := queries.NewGetBestSellersQueryHandler(suite.db, suite.catalog).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("100 Gems", result[0].Name)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetBestSellers_NoOrders_ReturnsEmptyList() {
	suite.addCatalogEntry("100 Gems", 15000)

	query, err := queries.NewGetBestSellersQuery(6)
	suite.Require().NoError(err)

	result, err := queries.NewGetBestSellersQueryHandler(suite.db, suite.catalog).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func TestOrderQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesIntegrationTestSuite))
}
