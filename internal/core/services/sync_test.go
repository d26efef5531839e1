package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven/mocks"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driving"
)

type engineMocks struct {
	sessions      *mocks.MockSessionStore
	sessionErrors *mocks.MockSessionErrorStore
	logs          *mocks.MockLogStore
	tenants       *mocks.MockTenantStore
	lease         *mocks.MockSessionLease
	categories    *mocks.MockCategoryStore
	groupings     *mocks.MockGroupingStore
	lists         *mocks.MockPriceListStore
	products      *mocks.MockProductStore
	prices        *mocks.MockPriceStore
	stock         *mocks.MockStockStore
}

func newTestEngine(t *testing.T) (*SyncEngine, *engineMocks) {
	t.Helper()
	m := &engineMocks{
		sessions:      mocks.NewMockSessionStore(),
		sessionErrors: mocks.NewMockSessionErrorStore(),
		logs:          mocks.NewMockLogStore(),
		tenants:       mocks.NewMockTenantStore(),
		lease:         mocks.NewMockSessionLease(),
		categories:    mocks.NewMockCategoryStore(),
		groupings:     mocks.NewMockGroupingStore(),
		lists:         mocks.NewMockPriceListStore(),
		products:      mocks.NewMockProductStore(),
		prices:        mocks.NewMockPriceStore(),
		stock:         mocks.NewMockStockStore(),
	}
	m.tenants.Add(&domain.Tenant{ID: 1, Name: "Principal", Principal: true})

	logger := testLogger()
	listProv := NewPriceListProvisioner(m.lists, logger)
	engine := NewSyncEngine(SyncEngineConfig{
		Sessions:      m.sessions,
		SessionErrors: m.sessionErrors,
		Logs:          m.logs,
		Tenants:       m.tenants,
		Lease:         m.lease,
		Categories:    NewCategoryProvisioner(m.categories, logger),
		Groupings:     NewGroupingProvisioner(m.groupings, logger),
		Lists:         listProv,
		Products:      NewProductReconciler(m.products, logger),
		Prices:        NewPriceApplier(m.prices, listProv, logger),
		Stock:         NewStockReconciler(m.tenants, m.stock, logger),
		Logger:        logger,
	})
	return engine, m
}

func strPtr(s string) *string { return &s }

func TestStartSession(t *testing.T) {
	engine, m := newTestEngine(t)

	session, err := engine.StartSession(context.Background(), driving.StartSessionInput{
		TenantID:        1,
		ExpectedBatches: 3,
		StartedBy:       "erp-export",
		PriceListCode:   strPtr("1"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SessionStarted, session.State)
	assert.False(t, session.MultiList)
	require.NotNil(t, session.PriceListID)
	assert.Equal(t, 1, m.sessions.Count())
	// The target list is auto-created when unknown.
	require.NotNil(t, m.lists.Get("1"))
	assert.Equal(t, m.lists.Get("1").ID, *session.PriceListID)
	assert.True(t, m.lease.Held("sync:tenant:1"))
}

func TestStartSessionUnknownTenant(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.StartSession(context.Background(), driving.StartSessionInput{TenantID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStartSessionMultiListWithoutCode(t *testing.T) {
	engine, _ := newTestEngine(t)

	session, err := engine.StartSession(context.Background(), driving.StartSessionInput{TenantID: 1})
	require.NoError(t, err)
	assert.True(t, session.MultiList)
	assert.Nil(t, session.PriceListID)
}

func TestStartSessionAllowsConcurrentSessions(t *testing.T) {
	engine, m := newTestEngine(t)

	_, err := engine.StartSession(context.Background(), driving.StartSessionInput{TenantID: 1})
	require.NoError(t, err)

	// Second session for the same tenant is warned about, not refused,
	// even though the lease is already held.
	second, err := engine.StartSession(context.Background(), driving.StartSessionInput{TenantID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStarted, second.State)
	assert.Equal(t, 2, m.sessions.Count())
}

func TestSyncLifecycle(t *testing.T) {
	engine, m := newTestEngine(t)
	ctx := context.Background()

	session, err := engine.StartSession(ctx, driving.StartSessionInput{
		TenantID:        1,
		ExpectedBatches: 2,
		StartedBy:       "erp-export",
		PriceListCode:   strPtr("1"),
	})
	require.NoError(t, err)

	batch1 := []*domain.SyncRecord{
		{
			Code:         "P1",
			Description:  "Hex bolt",
			CategoryCode: intPtr(100),
			CategoryName: "Ferretería",
			Price:        decimal.NewFromInt(100),
			Stock:        []domain.StockEntry{{TenantID: 1, Quantity: decimal.NewFromInt(12)}},
			Available:    true,
		},
		{
			Code:        "P2",
			Description: "Wood screw",
			Price:       decimal.NewFromInt(50),
			Available:   true,
		},
	}
	result, err := engine.ProcessBatch(ctx, session.ID, 1, batch1, false)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Errored)
	assert.Equal(t, 1, result.CategoriesCreated)

	// Category auto-created with the supplied name, list "1" now default.
	require.NotNil(t, m.categories.Get(100))
	assert.Equal(t, "Ferretería", m.categories.Get(100).Name)
	assert.True(t, m.lists.Get("1").Default)

	// Stock and single-list prices written against persisted products.
	p1 := m.products.Get(1, "P1")
	require.NotNil(t, p1)
	if qty, ok := m.stock.Get(1, p1.ID); assert.True(t, ok) {
		assert.True(t, qty.Equal(decimal.NewFromInt(12)))
	}
	_, ok := m.prices.Get(p1.ID, *session.PriceListID)
	assert.True(t, ok)

	batch2 := []*domain.SyncRecord{
		{Code: "P1", Description: "Hex bolt M8", Price: decimal.NewFromInt(110), Available: true},
		{Code: "  ", Description: "stray line"},
	}
	result, err = engine.ProcessBatch(ctx, session.ID, 2, batch2, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Errored)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, domain.ErrorKindInvalidCode, result.Errors[0].Kind)
	assert.Equal(t, "Hex bolt M8", m.products.Get(1, "P1").Description)

	status, err := engine.SessionStatus(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionProcessing, status.State)
	assert.Equal(t, float64(100), status.Progress.Percentage)
	assert.Equal(t, 4, status.TotalRecords)
	assert.Equal(t, 1, status.ErrorCount)

	entry, err := engine.FinishSession(ctx, session.ID, domain.OutcomeCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.LogStatusWithErrors, entry.Status)
	assert.Equal(t, 4, entry.Processed)
	assert.Equal(t, 2, entry.Created)
	assert.Equal(t, 1, entry.Updated)
	assert.Equal(t, 1, entry.Errored)
	require.Len(t, entry.Errors, 1)

	assert.Equal(t, 1, m.logs.Count())
	assert.False(t, m.lease.Held("sync:tenant:1"))

	status, err = engine.SessionStatus(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, status.State)
	require.NotNil(t, status.EndedAt)
}

func TestProcessBatchIdempotentReplay(t *testing.T) {
	engine, m := newTestEngine(t)
	ctx := context.Background()

	session, err := engine.StartSession(ctx, driving.StartSessionInput{TenantID: 1, ExpectedBatches: 1})
	require.NoError(t, err)

	records := []*domain.SyncRecord{{Code: "P1", Description: "Bolt", Available: true}}
	first, err := engine.ProcessBatch(ctx, session.ID, 1, records, false)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	// Replaying the same batch updates instead of duplicating.
	second, err := engine.ProcessBatch(ctx, session.ID, 1, records, false)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Updated)
	assert.Equal(t, 1, m.products.Count())
}

func TestProcessBatchStockOnly(t *testing.T) {
	engine, m := newTestEngine(t)
	ctx := context.Background()

	m.products.Add(&domain.Product{TenantID: 1, Code: "P1", Description: "Bolt"})

	session, err := engine.StartSession(ctx, driving.StartSessionInput{TenantID: 1, ExpectedBatches: 1})
	require.NoError(t, err)

	records := []*domain.SyncRecord{
		{Code: "P1", Stock: []domain.StockEntry{{TenantID: 1, Quantity: decimal.NewFromInt(33)}}},
		{Code: "P9", Stock: []domain.StockEntry{{TenantID: 1, Quantity: decimal.NewFromInt(5)}}},
	}
	result, err := engine.ProcessBatch(ctx, session.ID, 1, records, true)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 0, result.Created)

	p1 := m.products.Get(1, "P1")
	if qty, ok := m.stock.Get(1, p1.ID); assert.True(t, ok) {
		assert.True(t, qty.Equal(decimal.NewFromInt(33)))
	}
	// Unknown codes never create products in stock-only mode.
	assert.Nil(t, m.products.Get(1, "P9"))
	assert.Equal(t, 1, m.products.Count())
}

func TestProcessBatchOnTerminalSession(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	session, err := engine.StartSession(ctx, driving.StartSessionInput{TenantID: 1})
	require.NoError(t, err)
	_, err = engine.FinishSession(ctx, session.ID, domain.OutcomeCancelled)
	require.NoError(t, err)

	_, err = engine.ProcessBatch(ctx, session.ID, 1, []*domain.SyncRecord{{Code: "P1"}}, false)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestProcessBatchUnknownSession(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.ProcessBatch(context.Background(), uuid.New(), 1, nil, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProcessBatchSessionPersistFailure(t *testing.T) {
	engine, m := newTestEngine(t)
	ctx := context.Background()

	session, err := engine.StartSession(ctx, driving.StartSessionInput{TenantID: 1})
	require.NoError(t, err)

	m.sessions.UpdateErr = domain.ErrConnection
	_, err = engine.ProcessBatch(ctx, session.ID, 1, []*domain.SyncRecord{{Code: "P1"}}, false)
	assert.ErrorIs(t, err, domain.ErrConnection)

	// The session is still usable once the store recovers.
	m.sessions.UpdateErr = nil
	_, err = engine.ProcessBatch(ctx, session.ID, 1, []*domain.SyncRecord{{Code: "P1"}}, false)
	assert.NoError(t, err)
}

func TestFinishSessionTwice(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	session, err := engine.StartSession(ctx, driving.StartSessionInput{TenantID: 1})
	require.NoError(t, err)

	_, err = engine.FinishSession(ctx, session.ID, domain.OutcomeError)
	require.NoError(t, err)
	_, err = engine.FinishSession(ctx, session.ID, domain.OutcomeCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestFinishSessionWithoutBatches(t *testing.T) {
	engine, m := newTestEngine(t)
	ctx := context.Background()

	session, err := engine.StartSession(ctx, driving.StartSessionInput{TenantID: 1})
	require.NoError(t, err)

	entry, err := engine.FinishSession(ctx, session.ID, domain.OutcomeCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.LogStatusOK, entry.Status)
	assert.Equal(t, 0, entry.Processed)
	assert.Equal(t, 1, m.logs.Count())
}

func TestMultiListSessionPrices(t *testing.T) {
	engine, m := newTestEngine(t)
	ctx := context.Background()

	session, err := engine.StartSession(ctx, driving.StartSessionInput{TenantID: 1, MultiList: true})
	require.NoError(t, err)

	records := []*domain.SyncRecord{
		{Code: "P1", Description: "Bolt", ListPrices: []domain.ListPrice{
			{ListCode: "1", Price: decimal.NewFromInt(100)},
			{ListCode: "2", Price: decimal.NewFromInt(90)},
		}},
	}
	result, err := engine.ProcessBatch(ctx, session.ID, 1, records, false)
	require.NoError(t, err)

	require.Contains(t, result.ListReports, "1")
	require.Contains(t, result.ListReports, "2")
	assert.Equal(t, 1, result.ListReports["1"].Created)
	assert.Equal(t, 1, result.ListReports["2"].Created)
	assert.Equal(t, 2, m.prices.Count())
}
