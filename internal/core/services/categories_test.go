package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/veloz-labs/catalogo-core/internal/core/domain"
	"github.com/veloz-labs/catalogo-core/internal/core/ports/driven/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCategoryProvisionCreatesMissing(t *testing.T) {
	store := mocks.NewMockCategoryStore()
	store.Add(&domain.Category{Code: 10, Name: "Ferretería"})
	p := NewCategoryProvisioner(store, testLogger())

	result, err := p.Provision(context.Background(), []int{10, 20}, map[int]string{20: "Tools"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Existing != 1 || result.Created != 1 {
		t.Errorf("expected 1 existing and 1 created, got %d/%d", result.Existing, result.Created)
	}
	if _, ok := result.IDs[10]; !ok {
		t.Error("expected id for existing code 10")
	}
	if _, ok := result.IDs[20]; !ok {
		t.Error("expected id for created code 20")
	}
	if got := store.Get(20); got == nil || got.Name != "Tools" {
		t.Errorf("expected code 20 created with supplied name, got %+v", got)
	}
}

func TestCategoryProvisionPlaceholderName(t *testing.T) {
	store := mocks.NewMockCategoryStore()
	p := NewCategoryProvisioner(store, testLogger())

	if _, err := p.Provision(context.Background(), []int{30}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.Get(30); got == nil || got.Name != domain.PlaceholderCategoryName(30) {
		t.Errorf("expected placeholder name, got %+v", got)
	}
}

func TestCategoryProvisionRefreshesNames(t *testing.T) {
	store := mocks.NewMockCategoryStore()
	store.Add(&domain.Category{Code: 10, Name: "Old"})
	p := NewCategoryProvisioner(store, testLogger())

	if _, err := p.Provision(context.Background(), []int{10}, map[int]string{10: "New"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.Get(10); got.Name != "New" {
		t.Errorf("expected refreshed name, got %q", got.Name)
	}
}

func TestCategoryProvisionCreateFailureIsolated(t *testing.T) {
	store := mocks.NewMockCategoryStore()
	store.Add(&domain.Category{Code: 10, Name: "Ok"})
	store.CreateErrFor = map[int]error{20: errors.New("boom")}
	p := NewCategoryProvisioner(store, testLogger())

	result, err := p.Provision(context.Background(), []int{10, 20}, nil)
	if err != nil {
		t.Fatalf("per-code failure must not abort: %v", err)
	}
	if _, ok := result.IDs[20]; ok {
		t.Error("failed code must be left unavailable")
	}
	if _, ok := result.IDs[10]; !ok {
		t.Error("other codes must still resolve")
	}
	if result.Created != 0 {
		t.Errorf("expected no creations counted, got %d", result.Created)
	}
}

func TestCategoryProvisionCheckFailure(t *testing.T) {
	store := mocks.NewMockCategoryStore()
	store.CheckErr = errors.New("db down")
	p := NewCategoryProvisioner(store, testLogger())

	if _, err := p.Provision(context.Background(), []int{1}, nil); err == nil {
		t.Fatal("expected error when existence check fails")
	}
}

func TestCategoryProvisionEmpty(t *testing.T) {
	p := NewCategoryProvisioner(mocks.NewMockCategoryStore(), testLogger())

	result, err := p.Provision(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.IDs) != 0 || result.Existing != 0 || result.Created != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}
