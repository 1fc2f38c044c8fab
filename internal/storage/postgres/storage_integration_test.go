//go:build integration

package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/filter"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
	"github.com/polkiloo/commerce-admin/internal/storage/postgres"
)

// StorageIntegrationSuite runs repositories against a disposable PostgreSQL container.
type StorageIntegrationSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	storage   *postgres.Storage
}

func TestStorageIntegrationSuite(t *testing.T) {
	suite.Run(t, new(StorageIntegrationSuite))
}

func (s *StorageIntegrationSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("commerce"),
		tcpostgres.WithUsername("commerce"),
		tcpostgres.WithPassword("commerce"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.storage, err = postgres.New(ctx, dsn, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	s.Require().NoError(err)

	s.pool, err = pgxpool.New(ctx, dsn)
	s.Require().NoError(err)
}

func (s *StorageIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *StorageIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(),
		`TRUNCATE order_items, orders, reviews, products, categories, user_segments, segments, users RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *StorageIntegrationSuite) exec(sql string, args ...any) {
	_, err := s.pool.Exec(context.Background(), sql, args...)
	s.Require().NoError(err)
}

func (s *StorageIntegrationSuite) newOrder(reference string, createdAt time.Time) *model.Order {
	return &model.Order{
		Reference:       reference,
		CustomerID:      1,
		Status:          model.OrderStatusOrdered,
		ShippingAddress: "1 Main St",
		Subtotal:        decimal.RequireFromString("200.00"),
		DeliveryFee:     decimal.RequireFromString("10.00"),
		TaxAmount:       decimal.RequireFromString("42.00"),
		GrandTotal:      decimal.RequireFromString("252.00"),
		Version:         1,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
		Items: []model.OrderItem{{
			ProductID:   1,
			ProductName: "Desk",
			UnitPrice:   decimal.RequireFromString("100.00"),
			Quantity:    2,
			RecordedOn:  time.Date(createdAt.Year(), createdAt.Month(), createdAt.Day(), 0, 0, 0, 0, time.UTC),
			Width:       decimal.NewNullDecimal(decimal.RequireFromString("0.5")),
			Height:      decimal.NewNullDecimal(decimal.NewFromInt(1)),
			Depth:       decimal.NewNullDecimal(decimal.NewFromInt(1)),
		}},
	}
}

func (s *StorageIntegrationSuite) TestOrderRoundTrip() {
	ctx := context.Background()
	repo := s.storage.Orders()
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	stored, err := repo.Create(ctx, s.newOrder("ORD20240301120000-aaaaaaaa", createdAt))
	s.Require().NoError(err)
	s.NotZero(stored.ID)
	s.Require().Len(stored.Items, 1)
	s.NotZero(stored.Items[0].ID)

	loaded, err := repo.GetByID(ctx, stored.ID)
	s.Require().NoError(err)
	s.Equal(model.OrderStatusOrdered, loaded.Status)
	s.True(loaded.GrandTotal.Equal(decimal.RequireFromString("252")))
	s.Require().Len(loaded.Items, 1)
	s.True(loaded.Items[0].Width.Valid)
	s.True(loaded.Items[0].Width.Decimal.Equal(decimal.RequireFromString("0.5")))

	_, err = repo.Create(ctx, s.newOrder("ORD20240301120000-aaaaaaaa", createdAt))
	s.ErrorIs(err, domainErrors.ErrDuplicateReference)
}

func (s *StorageIntegrationSuite) TestOrderUpdateUsesVersion() {
	ctx := context.Background()
	repo := s.storage.Orders()

	stored, err := repo.Create(ctx, s.newOrder("ORD-version", time.Now().UTC()))
	s.Require().NoError(err)

	stored.Status = model.OrderStatusDelivered
	updated, err := repo.Update(ctx, stored)
	s.Require().NoError(err)
	s.Equal(int64(2), updated.Version)

	stale := stored.Clone()
	stale.Status = model.OrderStatusCancelled
	_, err = repo.Update(ctx, stale)
	s.ErrorIs(err, domainErrors.ErrVersionConflict)

	missing := stored.Clone()
	missing.ID = 9999
	_, err = repo.Update(ctx, missing)
	s.ErrorIs(err, domainErrors.ErrNotFound)
}

func (s *StorageIntegrationSuite) TestOrderPagingAndPending() {
	ctx := context.Background()
	repo := s.storage.Orders()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		order := s.newOrder("ORD-page-"+string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour))
		_, err := repo.Create(ctx, order)
		s.Require().NoError(err)
	}

	spec := filter.Build([]filter.Clause{filter.NotDeleted()})
	total, err := repo.Count(ctx, spec)
	s.Require().NoError(err)
	s.Equal(int64(15), total)

	window := paging.Window{
		Offset:  10,
		Limit:   5,
		OrderBy: []paging.OrderBy{{Column: paging.CreatedAtColumn, Desc: true}, {Column: paging.IDColumn, Desc: true}},
	}
	page, err := repo.Fetch(ctx, spec, window)
	s.Require().NoError(err)
	s.Require().Len(page, 5)
	s.Equal("ORD-page-e", page[0].Reference)
	s.Equal("ORD-page-a", page[4].Reference)

	ordered := string(model.OrderStatusOrdered)
	pending, err := repo.Find(ctx, filter.Build([]filter.Clause{filter.NotDeleted()}, filter.Equal("status", &ordered)))
	s.Require().NoError(err)
	s.Len(pending, 15)
	s.Equal("ORD-page-o", pending[0].Reference)
}

func (s *StorageIntegrationSuite) TestCatalogSearches() {
	ctx := context.Background()
	s.exec(`INSERT INTO users (first_name, last_name, email, has_newsletter) VALUES ('Ada', 'Lovelace', 'ada@example.com', TRUE), ('Alan', 'Turing', 'alan@example.com', FALSE)`)
	s.exec(`INSERT INTO segments (name) VALUES ('vip')`)
	s.exec(`INSERT INTO user_segments (user_id, segment_id) VALUES (1, 1)`)
	s.exec(`INSERT INTO categories (name) VALUES ('furniture')`)
	s.exec(`INSERT INTO products (reference, category_id, price, width, height, depth, stock) VALUES ('Standing desk', 1, 300, 0.5, 1, 1, 4), ('Lamp_50%', NULL, 19.99, NULL, NULL, NULL, 10)`)
	s.exec(`INSERT INTO reviews (product_id, customer_id, rating, comment, status) VALUES (1, 1, 5, 'Great desk', 'ACCEPTED'), (1, 2, 2, 'Wobbly', 'REJECTED')`)

	customer, err := s.storage.Customers().GetCustomer(ctx, 1)
	s.Require().NoError(err)
	s.Equal("Ada Lovelace", customer.FullName())

	product, err := s.storage.Products().GetProduct(ctx, 1)
	s.Require().NoError(err)
	s.Equal("furniture", product.CategoryName)

	window := paging.Window{Limit: 10, OrderBy: []paging.OrderBy{{Column: paging.IDColumn}}}

	products, err := s.storage.Products().Fetch(ctx, filter.Build([]filter.Clause{filter.NotDeleted()}, filter.Text("_50%", "reference")), window)
	s.Require().NoError(err)
	s.Require().Len(products, 1)
	s.Equal("Lamp_50%", products[0].Reference)

	segment := int64(1)
	users, err := s.storage.Users().Fetch(ctx, filter.Build([]filter.Clause{filter.NotDeleted()}, filter.MemberOf(filter.Relation{Table: "user_segments", OwnerKey: "user_id", Key: "segment_id"}, &segment)), window)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal([]int64{1}, users[0].SegmentIDs)

	minRating := 4
	reviews, err := s.storage.Reviews().Fetch(ctx, filter.Build(
		[]filter.Clause{filter.Equality{Field: "product_id", Value: int64(1)}, filter.NotDeleted()},
		filter.Between[int]("rating", &minRating, nil),
	), window)
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)
	s.Equal("Ada", reviews[0].CustomerFirstName)
	s.Equal(model.ReviewStatusAccepted, reviews[0].Status)
}

func (s *StorageIntegrationSuite) TestHealthCheck() {
	s.NoError(s.storage.HealthCheck(context.Background()))
}
