// Package state owns the single in-process snapshot of all collections.
// Every mutation replaces the relevant collection wholesale and then
// persists it through the KV port. A failed write leaves the in-memory
// state authoritative for the session: the error is logged, never fatal.
package state

import (
	"context"
	"encoding/json"
	"log"

	"github.com/kavaroom/tillbook/internal/catalog"
	"github.com/kavaroom/tillbook/internal/domain"
	"github.com/kavaroom/tillbook/internal/store"
)

// Persisted collection keys.
const (
	KeyRecords    = "sales_records"
	KeyCategories = "sales_menu_categories"
	KeyItems      = "sales_menu_items"
	KeySettings   = "sales_settings"
)

// Store holds the live collections. Single-threaded by design: every
// operation runs to completion inside one UI callback.
type Store struct {
	ctx        context.Context
	kv         store.KV
	records    []domain.SaleRecord
	categories []domain.Category
	items      []domain.Item
	settings   domain.Settings
}

// Load reads all collections from kv, seeding defaults on first run or on
// an unreadable payload.
func Load(ctx context.Context, kv store.KV) *Store {
	s := &Store{ctx: ctx, kv: kv}

	if !loadJSON(ctx, kv, KeyRecords, &s.records) {
		s.records = nil
	}
	if !loadJSON(ctx, kv, KeyCategories, &s.categories) {
		s.categories = SeedCategories()
		s.persist(KeyCategories, s.categories)
	}
	if !loadJSON(ctx, kv, KeyItems, &s.items) {
		s.items = SeedItems()
		s.persist(KeyItems, s.items)
	}
	if !loadJSON(ctx, kv, KeySettings, &s.settings) {
		s.settings = domain.DefaultSettings()
		s.persist(KeySettings, s.settings)
	}
	return s
}

func loadJSON(ctx context.Context, kv store.KV, key string, dst interface{}) bool {
	raw, ok, err := kv.Load(ctx, key)
	if err != nil {
		log.Printf("load %s: %v (falling back to defaults)", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("decode %s: %v (falling back to defaults)", key, err)
		return false
	}
	return true
}

func (s *Store) persist(key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("encode %s: %v", key, err)
		return
	}
	if err := s.kv.Save(s.ctx, key, raw); err != nil {
		log.Printf("save %s: %v (in-memory state kept)", key, err)
	}
}

// Records returns the record snapshot in insertion (append) order.
func (s *Store) Records() []domain.SaleRecord { return s.records }

// Categories returns the category snapshot.
func (s *Store) Categories() []domain.Category { return s.categories }

// Items returns the item snapshot.
func (s *Store) Items() []domain.Item { return s.items }

// Settings returns the business-window settings.
func (s *Store) Settings() domain.Settings { return s.settings }

// ActiveItems is the picker/matcher view over the current catalog.
func (s *Store) ActiveItems() []catalog.ItemWithPath {
	return catalog.ActiveItems(s.items, s.categories)
}

// UpdateSettings replaces the business window.
func (s *Store) UpdateSettings(next domain.Settings) {
	s.settings = next
	s.persist(KeySettings, s.settings)
}
