package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	domainx "github.com/qtickhq/agent-gateway/gateway/domain"
)

type appointmentRecord struct {
	AppointmentID string
	BusinessID    int
	CustomerName  string
	ServiceID     int
	Datetime      string
	Status        string
	QueueNumber   string
}

// AppointmentRepository keeps booked appointments per business and detects
// exact-slot conflicts, suggesting nearby free slots instead.
type AppointmentRepository struct {
	mu           sync.Mutex
	ids          *idSequence
	appointments map[string]appointmentRecord
	queueCounter map[int]int
}

func NewAppointmentRepository(master *MasterDataRepository) *AppointmentRepository {
	r := &AppointmentRepository{
		ids:          newIDSequence("APT"),
		appointments: make(map[string]appointmentRecord),
		queueCounter: make(map[int]int),
	}
	r.seed(master)
	return r
}

func (r *AppointmentRepository) seed(master *MasterDataRepository) {
	if master == nil {
		return
	}
	chillbreeze := master.GetBusiness("chillbreeze")
	if chillbreeze == nil {
		return
	}

	seeds := []appointmentRecord{
		{BusinessID: chillbreeze.BusinessID, CustomerName: "Alex Tan", ServiceID: 101, Datetime: "2025-09-05T17:00:00+08:00", Status: "confirmed"},
		{BusinessID: chillbreeze.BusinessID, CustomerName: "Jamie Lee", ServiceID: 102, Datetime: "2025-09-06T11:30:00+08:00", Status: "confirmed"},
	}
	for _, rec := range seeds {
		rec.AppointmentID = r.ids.Next()
		rec.QueueNumber = r.nextQueueNumber(rec.BusinessID)
		r.appointments[rec.AppointmentID] = rec
	}
}

func (r *AppointmentRepository) nextQueueNumber(businessID int) string {
	r.queueCounter[businessID]++
	return fmt.Sprintf("B%02d", r.queueCounter[businessID])
}

// Book confirms the appointment or, on an exact slot conflict, returns a
// conflict response carrying alternative slot suggestions.
func (r *AppointmentRepository) Book(req domainx.AppointmentRequest) domainx.AppointmentResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requested, ok := parseSlot(req.Datetime); ok && r.hasConflictLocked(req.BusinessID, requested) {
		return domainx.AppointmentResponse{
			Status:         "conflict",
			Message:        "The requested timeslot is unavailable for this business.",
			SuggestedSlots: r.suggestAlternativesLocked(req.BusinessID, requested, 3),
		}
	}

	rec := appointmentRecord{
		AppointmentID: r.ids.Next(),
		BusinessID:    req.BusinessID,
		CustomerName:  req.CustomerName,
		ServiceID:     req.ServiceID,
		Datetime:      req.Datetime,
		Status:        "confirmed",
		QueueNumber:   r.nextQueueNumber(req.BusinessID),
	}
	r.appointments[rec.AppointmentID] = rec
	return domainx.AppointmentResponse{
		Status:        "confirmed",
		AppointmentID: rec.AppointmentID,
		QueueNumber:   rec.QueueNumber,
	}
}

// List pages through a business's appointments ordered by id.
func (r *AppointmentRepository) List(req domainx.AppointmentListRequest) domainx.AppointmentListResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []domainx.AppointmentSummary
	for _, rec := range r.appointments {
		if rec.BusinessID != req.BusinessID {
			continue
		}
		if req.Status != "" && rec.Status != req.Status {
			continue
		}
		filtered = append(filtered, domainx.AppointmentSummary{
			AppointmentID: rec.AppointmentID,
			CustomerName:  rec.CustomerName,
			ServiceID:     rec.ServiceID,
			Datetime:      rec.Datetime,
			Status:        rec.Status,
			QueueNumber:   rec.QueueNumber,
		})
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].AppointmentID < filtered[j].AppointmentID
	})

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return domainx.AppointmentListResponse{
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
		Items:    filtered[start:end],
	}
}

// Snapshot returns every appointment for a business regardless of status,
// for the analytics aggregations.
func (r *AppointmentRepository) Snapshot(businessID int) []domainx.AppointmentSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domainx.AppointmentSummary
	for _, rec := range r.appointments {
		if businessID != 0 && rec.BusinessID != businessID {
			continue
		}
		out = append(out, domainx.AppointmentSummary{
			AppointmentID: rec.AppointmentID,
			CustomerName:  rec.CustomerName,
			ServiceID:     rec.ServiceID,
			Datetime:      rec.Datetime,
			Status:        rec.Status,
			QueueNumber:   rec.QueueNumber,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentID < out[j].AppointmentID })
	return out
}

func (r *AppointmentRepository) hasConflictLocked(businessID int, candidate time.Time) bool {
	candidateUTC := candidate.UTC()
	for _, rec := range r.appointments {
		if rec.BusinessID != businessID {
			continue
		}
		existing, ok := parseSlot(rec.Datetime)
		if !ok {
			continue
		}
		if existing.UTC().Equal(candidateUTC) {
			return true
		}
	}
	return false
}

func (r *AppointmentRepository) suggestAlternativesLocked(businessID int, requested time.Time, limit int) []string {
	offsets := []time.Duration{
		30 * time.Minute,
		60 * time.Minute,
		-30 * time.Minute,
		90 * time.Minute,
		-60 * time.Minute,
		120 * time.Minute,
	}
	seen := make(map[string]struct{})
	var suggestions []string
	for _, delta := range offsets {
		candidate := requested.Add(delta)
		if r.hasConflictLocked(businessID, candidate) {
			continue
		}
		iso := candidate.Format(time.RFC3339)
		if _, dup := seen[iso]; dup {
			continue
		}
		suggestions = append(suggestions, iso)
		seen[iso] = struct{}{}
		if len(suggestions) >= limit {
			break
		}
	}
	return suggestions
}

func parseSlot(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
