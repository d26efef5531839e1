package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driving"
)

// defaultLeaseTTL bounds how long an abandoned session keeps its
// advisory tenant lease.
const defaultLeaseTTL = 30 * time.Minute

// errorPageSize is the page size used when draining a session's error
// ledger into its final log.
const errorPageSize = 500

// SyncEngine orchestrates bulk catalog synchronization sessions: it owns
// the session lifecycle and drives the per-batch passes (categories,
// groupings, products, stock, prices) in order.
type SyncEngine struct {
	sessions      driven.SessionStore
	sessionErrors driven.SessionErrorStore
	logs          driven.LogStore
	tenants       driven.TenantStore
	lease         driven.SessionLease

	categories *CategoryProvisioner
	groupings  *GroupingProvisioner
	lists      *PriceListProvisioner
	products   *ProductReconciler
	prices     *PriceApplier
	stock      *StockReconciler

	leaseTTL time.Duration
	logger   *slog.Logger
}

// SyncEngineConfig holds the configuration for creating a SyncEngine.
type SyncEngineConfig struct {
	Sessions      driven.SessionStore
	SessionErrors driven.SessionErrorStore
	Logs          driven.LogStore
	Tenants       driven.TenantStore

	// Lease is optional; without it tenant leasing is skipped entirely.
	Lease driven.SessionLease

	Categories *CategoryProvisioner
	Groupings  *GroupingProvisioner
	Lists      *PriceListProvisioner
	Products   *ProductReconciler
	Prices     *PriceApplier
	Stock      *StockReconciler

	LeaseTTL time.Duration
	Logger   *slog.Logger
}

// NewSyncEngine creates a new SyncEngine with the given configuration.
func NewSyncEngine(cfg SyncEngineConfig) *SyncEngine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = defaultLeaseTTL
	}
	return &SyncEngine{
		sessions:      cfg.Sessions,
		sessionErrors: cfg.SessionErrors,
		logs:          cfg.Logs,
		tenants:       cfg.Tenants,
		lease:         cfg.Lease,
		categories:    cfg.Categories,
		groupings:     cfg.Groupings,
		lists:         cfg.Lists,
		products:      cfg.Products,
		prices:        cfg.Prices,
		stock:         cfg.Stock,
		leaseTTL:      cfg.LeaseTTL,
		logger:        cfg.Logger,
	}
}

var _ driving.SyncService = (*SyncEngine)(nil)

// StartSession opens a run for a tenant. A concurrent active session for
// the same tenant is warned about but allowed: upserts keep duplicate
// runs safe, so the lease is advisory.
func (e *SyncEngine) StartSession(ctx context.Context, in driving.StartSessionInput) (*domain.SyncSession, error) {
	if _, err := e.tenants.Get(ctx, in.TenantID); err != nil {
		return nil, fmt.Errorf("look up tenant %d: %w", in.TenantID, err)
	}

	if active, err := e.sessions.ActiveByTenant(ctx, in.TenantID); err != nil {
		e.logger.Warn("failed to check for active sessions", "tenant_id", in.TenantID, "error", err)
	} else if len(active) > 0 {
		e.logger.Warn("tenant already has active sync sessions",
			"tenant_id", in.TenantID,
			"active_sessions", len(active))
	}

	if e.lease != nil {
		ok, err := e.lease.Acquire(ctx, leaseName(in.TenantID), e.leaseTTL)
		if err != nil {
			e.logger.Warn("failed to acquire tenant lease", "tenant_id", in.TenantID, "error", err)
		} else if !ok {
			e.logger.Warn("tenant lease held elsewhere, proceeding anyway", "tenant_id", in.TenantID)
		}
	}

	multiList := in.MultiList || in.PriceListCode == nil
	var priceListID *int64
	if !multiList {
		code := *in.PriceListCode
		ids, err := e.lists.EnsureLists(ctx, []string{code})
		if err != nil {
			return nil, fmt.Errorf("resolve price list %q: %w", code, err)
		}
		id, ok := ids[code]
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrPriceListNotFound, code)
		}
		priceListID = &id
	}

	session := domain.NewSession(in.TenantID, in.ExpectedBatches, in.StartedBy, priceListID, multiList)
	if err := e.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	e.logger.Info("sync session started",
		"session_id", session.ID,
		"tenant_id", session.TenantID,
		"expected_batches", session.ExpectedBatches,
		"multi_list", session.MultiList,
		"started_by", session.StartedBy)
	return session, nil
}

// ProcessBatch reconciles one batch against the catalog and folds its
// totals into the session. A batch-level failure leaves the session
// active so the caller can retry or finish it.
func (e *SyncEngine) ProcessBatch(ctx context.Context, sessionID uuid.UUID, batchNumber int, records []*domain.SyncRecord, stockOnly bool) (*domain.BatchResult, error) {
	session, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !session.Active() {
		return nil, fmt.Errorf("%w: session is %q", domain.ErrInvalidState, session.State)
	}
	if session.State == domain.SessionStarted {
		if err := session.BeginProcessing(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	result, err := e.runBatch(ctx, session, batchNumber, records, stockOnly)
	if err != nil {
		e.logger.Error("batch aborted",
			"session_id", session.ID,
			"batch", batchNumber,
			"error", err)
		return nil, err
	}
	result.Duration = time.Since(start)

	if err := session.RecordBatch(result.Totals()); err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		if err := e.sessionErrors.Append(ctx, session.ID, result.Errors); err != nil {
			return nil, fmt.Errorf("append session errors: %w", err)
		}
	}
	if err := e.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	e.logger.Info("batch processed",
		"session_id", session.ID,
		"batch", batchNumber,
		"records", result.Processed,
		"created", result.Created,
		"updated", result.Updated,
		"errored", result.Errored,
		"duration_ms", result.Duration.Milliseconds())
	return result, nil
}

func (e *SyncEngine) runBatch(ctx context.Context, session *domain.SyncSession, batchNumber int, records []*domain.SyncRecord, stockOnly bool) (*domain.BatchResult, error) {
	result := &domain.BatchResult{
		BatchNumber: batchNumber,
		Processed:   len(records),
	}

	if stockOnly {
		products, err := e.fetchExisting(ctx, session.TenantID, records)
		if err != nil {
			return nil, fmt.Errorf("fetch products for stock update: %w", err)
		}
		report := e.stock.Apply(ctx, records, products)
		e.logger.Info("stock-only batch applied",
			"session_id", session.ID,
			"batch", batchNumber,
			"entries", report.EntriesApplied,
			"tenants_updated", report.TenantsUpdated,
			"tenants_skipped", report.TenantsSkipped)
		return result, nil
	}

	codes, names := collectCategoryRefs(records)
	provision := &CategoryProvision{IDs: map[int]int64{}}
	if prov, err := e.categories.Provision(ctx, codes, names); err != nil {
		e.logger.Warn("category provisioning failed, records fall back to no category",
			"session_id", session.ID, "batch", batchNumber, "error", err)
	} else {
		provision = prov
	}
	result.CategoriesExisting = provision.Existing
	result.CategoriesCreated = provision.Created

	e.groupings.Provision(ctx, session.TenantID, CollectGroupingKeys(records))

	reconciliation, err := e.products.Reconcile(ctx, session.TenantID, records, provision.IDs)
	if err != nil {
		return nil, fmt.Errorf("reconcile products: %w", err)
	}
	result.Created = reconciliation.Created
	result.Updated = reconciliation.Updated
	result.Errored = reconciliation.Errored
	result.Errors = reconciliation.Errors

	e.stock.Apply(ctx, records, reconciliation.Products)

	if batchNumber == 1 {
		if err := e.lists.EnsureDefault(ctx); err != nil {
			e.logger.Warn("failed to guarantee default price list", "error", err)
		}
	}

	if session.MultiList {
		result.ListReports = e.prices.ApplyMulti(ctx, records, reconciliation.Products)
	} else if session.PriceListID != nil {
		e.prices.ApplySingle(ctx, *session.PriceListID, records, reconciliation.Products)
	}

	return result, nil
}

// FinishSession moves the session to its terminal state, persists it and
// emits the immutable sync log carrying the full error ledger.
func (e *SyncEngine) FinishSession(ctx context.Context, sessionID uuid.UUID, outcome domain.Outcome) (*domain.SyncLog, error) {
	session, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if err := session.Finish(outcome); err != nil {
		return nil, err
	}
	if err := e.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	entry := domain.NewSyncLog(session, e.drainErrors(ctx, session.ID))
	if err := e.logs.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create sync log: %w", err)
	}

	if e.lease != nil {
		if err := e.lease.Release(ctx, leaseName(session.TenantID)); err != nil {
			e.logger.Warn("failed to release tenant lease", "tenant_id", session.TenantID, "error", err)
		}
	}

	e.logger.Info("sync session finished",
		"session_id", session.ID,
		"tenant_id", session.TenantID,
		"state", session.State,
		"status", entry.Status,
		"processed", entry.Processed,
		"created", entry.Created,
		"updated", entry.Updated,
		"errored", entry.Errored,
		"elapsed_ms", entry.ElapsedMillis)
	return entry, nil
}

// SessionStatus returns progress and aggregate metrics for a session.
func (e *SyncEngine) SessionStatus(ctx context.Context, sessionID uuid.UUID) (*driving.SessionStatus, error) {
	session, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	errorCount, err := e.sessionErrors.Count(ctx, session.ID)
	if err != nil {
		e.logger.Warn("failed to count session errors", "session_id", session.ID, "error", err)
		errorCount = session.RecordsErrored
	}

	return &driving.SessionStatus{
		ID:             session.ID,
		State:          session.State,
		Progress:       session.Progress(),
		TotalRecords:   session.TotalRecords,
		RecordsCreated: session.RecordsCreated,
		RecordsUpdated: session.RecordsUpdated,
		RecordsErrored: session.RecordsErrored,
		ErrorCount:     errorCount,
		SuccessRate:    session.SuccessRate(),
		Throughput:     session.Throughput(),
		StartedAt:      session.StartedAt,
		EndedAt:        session.EndedAt,
	}, nil
}

// drainErrors pages through the whole error ledger; on a read failure the
// log is emitted with whatever was collected so far.
func (e *SyncEngine) drainErrors(ctx context.Context, sessionID uuid.UUID) []domain.RecordError {
	var all []domain.RecordError
	for offset := 0; ; offset += errorPageSize {
		page, err := e.sessionErrors.List(ctx, sessionID, offset, errorPageSize)
		if err != nil {
			e.logger.Warn("failed to read session error ledger", "session_id", sessionID, "error", err)
			return all
		}
		all = append(all, page...)
		if len(page) < errorPageSize {
			return all
		}
	}
}

// fetchExisting looks up the products a stock-only batch refers to; no
// products are created in that mode.
func (e *SyncEngine) fetchExisting(ctx context.Context, tenantID int64, records []*domain.SyncRecord) (map[string]*domain.Product, error) {
	seen := make(map[string]bool, len(records))
	var codes []string
	for _, rec := range records {
		code := strings.TrimSpace(rec.Code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return e.products.FetchExisting(ctx, tenantID, codes)
}

func collectCategoryRefs(records []*domain.SyncRecord) ([]int, map[int]string) {
	seen := make(map[int]bool)
	var codes []int
	names := make(map[int]string)
	for _, rec := range records {
		if rec.CategoryCode == nil {
			continue
		}
		code := *rec.CategoryCode
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
		if rec.CategoryName != "" {
			names[code] = rec.CategoryName
		}
	}
	return codes, names
}

func leaseName(tenantID int64) string {
	return fmt.Sprintf("sync:tenant:%d", tenantID)
}
