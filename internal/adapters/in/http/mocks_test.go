package http_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	api "topup/internal/adapters/in/http"
	"topup/internal/core/application/usecases/commands"
	"topup/internal/core/application/usecases/queries"
	"topup/internal/core/domain/model/identity"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommandHandler[C any] struct {
	mock.Mock
}

func (m *MockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockQueryHandler[Q, R any] struct {
	mock.Mock
}

func (m *MockQueryHandler[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	args := m.Called(ctx, query)
	var zero R
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(R), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Add(ctx context.Context, user ports.UserCredentials) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (ports.UserCredentials, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(ports.UserCredentials), args.Error(1)
}

type testServer struct {
	echo     *echo.Echo
	sessions *api.SessionManager
	users    *MockUserRepository

	createOrder  *MockCommandHandler[commands.CreateOrderCommand]
	attachProof  *MockCommandHandler[commands.AttachProofCommand]
	confirmOrder *MockCommandHandler[commands.ConfirmOrderCommand]
	deleteOrder  *MockCommandHandler[commands.DeleteOrderCommand]

	getCatalog      *MockQueryHandler[queries.GetCatalogQuery, []queries.CatalogItemView]
	getBestSellers  *MockQueryHandler[queries.GetBestSellersQuery, []queries.BestSellerView]
	getBuyerOrders  *MockQueryHandler[queries.GetBuyerOrdersQuery, []queries.OrderView]
	getAllOrders    *MockQueryHandler[queries.GetAllOrdersQuery, []queries.OrderView]
	getOrder        *MockQueryHandler[queries.GetOrderQuery, queries.OrderView]
	generateReceipt *MockQueryHandler[queries.GenerateReceiptQuery, queries.ReceiptFile]
}

const testMaxProofBytes = 1024

func newTestServer(t *testing.T, middleware ...echo.MiddlewareFunc) *testServer {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	ts := &testServer{
		echo:            echo.New(),
		sessions:        api.NewCookieSessionManager([]byte("0123456789abcdef0123456789abcdef"), false, logger),
		users:           new(MockUserRepository),
		createOrder:     new(MockCommandHandler[commands.CreateOrderCommand]),
		attachProof:     new(MockCommandHandler[commands.AttachProofCommand]),
		confirmOrder:    new(MockCommandHandler[commands.ConfirmOrderCommand]),
		deleteOrder:     new(MockCommandHandler[commands.DeleteOrderCommand]),
		getCatalog:      new(MockQueryHandler[queries.GetCatalogQuery, []queries.CatalogItemView]),
		getBestSellers:  new(MockQueryHandler[queries.GetBestSellersQuery, []queries.BestSellerView]),
		getBuyerOrders:  new(MockQueryHandler[queries.GetBuyerOrdersQuery, []queries.OrderView]),
		getAllOrders:    new(MockQueryHandler[queries.GetAllOrdersQuery, []queries.OrderView]),
		getOrder:        new(MockQueryHandler[queries.GetOrderQuery, queries.OrderView]),
		generateReceipt: new(MockQueryHandler[queries.GenerateReceiptQuery, queries.ReceiptFile]),
	}

	server := api.NewServer(
		api.UseCases{
			CreateOrder:     ts.createOrder,
			AttachProof:     ts.attachProof,
			ConfirmOrder:    ts.confirmOrder,
			DeleteOrder:     ts.deleteOrder,
			GetCatalog:      ts.getCatalog,
			GetBestSellers:  ts.getBestSellers,
			GetBuyerOrders:  ts.getBuyerOrders,
			GetAllOrders:    ts.getAllOrders,
			GetOrder:        ts.getOrder,
			GenerateReceipt: ts.generateReceipt,
		},
		api.NewAuthenticator(ts.users, 4),
		ts.sessions,
		testMaxProofBytes,
		logger,
	)
	ts.echo.Use(middleware...)
	server.RegisterRoutes(ts.echo)
	return ts
}

// do runs req against the server, optionally as the given user.
func (ts *testServer) do(t *testing.T, req *http.Request, as *identity.Identity) *httptest.ResponseRecorder {
	t.Helper()
	if as != nil {
		for _, cookie := range ts.sessionCookies(t, *as) {
			req.AddCookie(cookie)
		}
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) sessionCookies(t *testing.T, user identity.Identity) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	c := ts.echo.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, ts.sessions.SignIn(c, user))
	return rec.Result().Cookies()
}

func buyer() identity.Identity {
	return identity.Identity{UserID: kernel.NewUUID(), Username: "budi", DisplayName: "Budi", Role: identity.RoleBuyer}
}

func admin() identity.Identity {
	return identity.Identity{UserID: kernel.NewUUID(), Username: "admin", DisplayName: "Admin", Role: identity.RoleAdmin}
}
