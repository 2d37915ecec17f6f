// Package store provides in-memory collaborator implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/T3Cread18/Nominix-sub001/engine"
)

// =============================================================================
// MEMORY STORE - In-memory providers (for testing/dev)
// =============================================================================

// Memory implements engine.HolidayProvider, engine.PolicyProvider and
// engine.RateProvider.
type Memory struct {
	mu       sync.RWMutex
	holidays []engine.Holiday
	policies map[string]engine.CompanyPolicy
	rates    map[pair][]engine.ExchangeRate
}

type pair struct {
	Base  engine.Currency
	Quote engine.Currency
}

var (
	_ engine.HolidayProvider = (*Memory)(nil)
	_ engine.PolicyProvider  = (*Memory)(nil)
	_ engine.RateProvider    = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		policies: make(map[string]engine.CompanyPolicy),
		rates:    make(map[pair][]engine.ExchangeRate),
	}
}

// AddHolidays registers holiday records.
func (m *Memory) AddHolidays(holidays ...engine.Holiday) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holidays = append(m.holidays, holidays...)
}

// Holidays returns company-specific and national holidays for a year.
func (m *Memory) Holidays(_ context.Context, companyID string, year int) ([]engine.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.Holiday
	for _, h := range m.holidays {
		if h.CompanyID != "" && h.CompanyID != companyID {
			continue
		}
		if !h.Recurring && h.Date.Year() != year {
			continue
		}
		if moved, ok := h.OnYear(year); ok {
			out = append(out, moved)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// SetPolicy stores (or replaces) a company policy.
func (m *Memory) SetPolicy(p engine.CompanyPolicy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policies[p.CompanyID] = p
}

func (m *Memory) CompanyPolicy(_ context.Context, companyID string) (*engine.CompanyPolicy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.policies[companyID]
	if !ok {
		return nil, engine.ErrPolicyNotFound
	}
	return &p, nil
}

// AddRate publishes a rate. Rates are kept sorted by date.
func (m *Memory) AddRate(r engine.ExchangeRate) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := pair{Base: r.Base, Quote: r.Quote}
	rates := m.rates[k]

	// Binary search for insertion point
	i := sort.Search(len(rates), func(i int) bool {
		return rates[i].AsOf.After(r.AsOf)
	})
	rates = append(rates, engine.ExchangeRate{})
	copy(rates[i+1:], rates[i:])
	rates[i] = r
	m.rates[k] = rates
}

// RateAt returns the latest rate on or before `on`.
func (m *Memory) RateAt(_ context.Context, base, quote engine.Currency, on engine.Date) (engine.ExchangeRate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rates := m.rates[pair{Base: base, Quote: quote}]
	i := sort.Search(len(rates), func(i int) bool {
		return rates[i].AsOf.After(on)
	})
	if i == 0 {
		return engine.ExchangeRate{}, engine.ErrRateNotFound
	}
	return rates[i-1], nil
}
