package handlers_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sonuudigital/storefront/internal/auth"
	"github.com/sonuudigital/storefront/internal/catalog"
	"github.com/sonuudigital/storefront/internal/orders"
	"github.com/sonuudigital/storefront/internal/session"
	"github.com/sonuudigital/storefront/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testProductID   = "p1"
	testProductName = "Linen Lounge Set"
	testColor       = "Sage Green"
	testSize        = "S"
)

func testProduct() catalog.Product {
	return catalog.Product{
		ID:     testProductID,
		Name:   testProductName,
		Price:  120.0,
		Stock:  10,
		Images: []string{"/images/products/sage-lounge-1.jpg"},
	}
}

type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) List() []catalog.Product {
	args := m.Called()
	return args.Get(0).([]catalog.Product)
}

func (m *MockProductCatalog) GetByID(id string) (catalog.Product, error) {
	args := m.Called(id)
	return args.Get(0).(catalog.Product), args.Error(1)
}

func (m *MockProductCatalog) Update(p catalog.Product) (catalog.Product, error) {
	args := m.Called(p)
	return args.Get(0).(catalog.Product), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, params orders.CreateOrderParams) (orders.Order, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(orders.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]orders.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orders.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (orders.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(orders.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status orders.Status) (orders.Order, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(orders.Order), args.Error(1)
}

type MockOrderCreatedPublisher struct {
	mock.Mock
}

func (m *MockOrderCreatedPublisher) PublishOrderCreated(ctx context.Context, order orders.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func newTestSessionStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.NewStore("handlers-test-secret", "", false)
	require.NoError(t, err)
	return store
}

func assertErrorMessage(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	var resp web.MessageResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, want, resp.Message)
}

func newTestJWTManager(t *testing.T) *auth.JWTManager {
	t.Helper()

	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	privKeyBytes, err := x509.MarshalECPrivateKey(privKey)
	require.NoError(t, err)
	privKeyPem := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: privKeyBytes})

	pubKeyBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubKeyPem := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubKeyBytes})

	jwtManager, err := auth.NewJWTManager(privKeyPem, pubKeyPem, "test-issuer", "test-audience", 15*time.Minute)
	require.NoError(t, err)
	return jwtManager
}
