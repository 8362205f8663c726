// Package store provides the in-memory repositories backing the gateway when
// no live backend is configured. Data is seeded with a small fixed directory
// so the agent tools have something realistic to act on.
package store

import (
	"fmt"
	"sync"
	"time"
)

func utcNowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// idSequence issues prefixed, zero-padded identifiers such as APT-00001.
type idSequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func newIDSequence(prefix string) *idSequence {
	return &idSequence{prefix: prefix, next: 1}
}

func (s *idSequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s-%05d", s.prefix, s.next)
	s.next++
	return id
}

// Store aggregates every mock repository behind one handle.
type Store struct {
	MasterData   *MasterDataRepository
	Appointments *AppointmentRepository
	Invoices     *InvoiceRepository
	Leads        *LeadRepository
	Campaigns    *CampaignRepository
}

// New builds a fully seeded mock store.
func New() *Store {
	master := NewMasterDataRepository()
	return &Store{
		MasterData:   master,
		Appointments: NewAppointmentRepository(master),
		Invoices:     NewInvoiceRepository(),
		Leads:        NewLeadRepository(),
		Campaigns:    NewCampaignRepository(),
	}
}
