package repo

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"fastcountdown/internal/domain"
)

// MemoryStore keeps all state in process. It backs STORE_DRIVER=memory for
// single instance deployments and local development.
type MemoryStore struct {
	mu    sync.Mutex
	clock clockwork.Clock
	state memoryState
}

type memoryState struct {
	fast     domain.FastState
	donors   map[string]decimal.Decimal
	payments map[string]struct{}
}

func (s memoryState) clone() memoryState {
	return memoryState{
		fast:     s.fast,
		donors:   maps.Clone(s.donors),
		payments: maps.Clone(s.payments),
	}
}

// NewMemoryStore creates an empty store. A nil clock uses wall time.
func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		clock: clock,
		state: memoryState{
			fast:     domain.FastState{ExtraMinutes: decimal.Zero},
			donors:   make(map[string]decimal.Decimal),
			payments: make(map[string]struct{}),
		},
	}
}

// Repositories returns repositories that lock per call.
func (m *MemoryStore) Repositories() domain.Repositories {
	v := memoryView{store: m}
	return domain.Repositories{Fast: v, Donors: v, Payments: v}
}

// Do holds the store lock for the whole of fn and restores the previous state
// when fn fails.
func (m *MemoryStore) Do(ctx context.Context, fn func(repos domain.Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	v := memoryView{store: m, locked: true}
	if err := fn(domain.Repositories{Fast: v, Donors: v, Payments: v}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

type memoryView struct {
	store  *MemoryStore
	locked bool
}

func (v memoryView) with(fn func(st *memoryState)) {
	if !v.locked {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
	}
	fn(&v.store.state)
}

func (v memoryView) Get(ctx context.Context) (domain.FastState, error) {
	var out domain.FastState
	v.with(func(st *memoryState) { out = st.fast })
	return out, nil
}

func (v memoryView) AddExtraMinutes(ctx context.Context, delta, maxExtra decimal.Decimal) (decimal.Decimal, error) {
	var out decimal.Decimal
	v.with(func(st *memoryState) {
		current := st.fast.ExtraMinutes
		next := decimal.Min(current.Add(delta), maxExtra)
		if next.LessThan(current) {
			next = current
		}
		st.fast = domain.FastState{ExtraMinutes: next, UpdatedAt: v.store.clock.Now()}
		out = next
	})
	return out, nil
}

func (v memoryView) AddDonation(ctx context.Context, donorName string, amount decimal.Decimal) (decimal.Decimal, error) {
	var out decimal.Decimal
	v.with(func(st *memoryState) {
		out = st.donors[donorName].Add(amount)
		st.donors[donorName] = out
	})
	return out, nil
}

func (v memoryView) ListRanked(ctx context.Context) ([]domain.DonorRecord, error) {
	items := []domain.DonorRecord{}
	v.with(func(st *memoryState) {
		for name, total := range st.donors {
			items = append(items, domain.DonorRecord{DonorName: name, TotalDonation: total})
		}
	})
	sort.Slice(items, func(i, j int) bool {
		if c := items[i].TotalDonation.Cmp(items[j].TotalDonation); c != 0 {
			return c > 0
		}
		return strings.Compare(items[i].DonorName, items[j].DonorName) < 0
	})
	return items, nil
}

func (v memoryView) MarkProcessed(ctx context.Context, donation domain.ConfirmedDonation) (bool, error) {
	var inserted bool
	v.with(func(st *memoryState) {
		if _, seen := st.payments[donation.PaymentID]; seen {
			return
		}
		st.payments[donation.PaymentID] = struct{}{}
		inserted = true
	})
	return inserted, nil
}

var (
	_ domain.UnitOfWork          = (*MemoryStore)(nil)
	_ domain.FastStateRepository = memoryView{}
	_ domain.DonorRepository     = memoryView{}
	_ domain.PaymentRepository   = memoryView{}
)
