package ccft

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// StoredReport is an uploaded report held in memory with its precomputed
// summary
type StoredReport struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Format     string    `json:"format"`
	UploadedAt time.Time `json:"uploadedAt"`
	Report     *Report   `json:"-"`
	Summary    *Summary  `json:"summary"`
}

// Store holds uploaded reports in memory, keyed by id. Reports live for the
// lifetime of the process.
type Store struct {
	mutex   sync.RWMutex
	reports map[string]*StoredReport
}

// NewStore creates an empty report store
func NewStore() *Store {
	return &Store{
		reports: make(map[string]*StoredReport),
	}
}

// Put stores a parsed report under a fresh id and returns the stored entry
func (s *Store) Put(name, format string, report *Report) *StoredReport {
	stored := &StoredReport{
		ID:         uuid.New().String(),
		Name:       name,
		Format:     format,
		UploadedAt: time.Now(),
		Report:     report,
		Summary:    Summarize(report),
	}

	s.mutex.Lock()
	s.reports[stored.ID] = stored
	s.mutex.Unlock()

	klog.V(2).InfoS("Stored CCFT report",
		"id", stored.ID,
		"name", name,
		"format", format,
		"records", len(report.Records))

	return stored
}

// Get retrieves a stored report by id
func (s *Store) Get(id string) (*StoredReport, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stored, found := s.reports[id]
	return stored, found
}

// Delete removes a stored report, reporting whether it existed
func (s *Store) Delete(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, found := s.reports[id]; !found {
		return false
	}
	delete(s.reports, id)
	return true
}

// List returns all stored reports, newest first
func (s *Store) List() []*StoredReport {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	reports := make([]*StoredReport, 0, len(s.reports))
	for _, stored := range s.reports {
		reports = append(reports, stored)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].UploadedAt.After(reports[j].UploadedAt)
	})
	return reports
}

// Size returns the number of stored reports
func (s *Store) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.reports)
}
