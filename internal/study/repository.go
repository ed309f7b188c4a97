package study

import (
	"fmt"
	"sort"
	"sync"
)

// Repository provides read access to studies and reports. The shipped
// implementation serves in-memory fixtures; a backend-backed one can be
// swapped in without touching the UI.
type Repository interface {
	Studies() []*Study
	StudyByID(id string) (*Study, error)
	ReportForStudy(studyID string) (*Report, error)
}

// ErrNotFound is returned when a study or report does not exist.
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// MemoryRepository is a Repository backed by in-memory fixtures.
type MemoryRepository struct {
	mu      sync.RWMutex
	studies map[string]*Study
	reports map[string]*Report // keyed by study ID
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		studies: make(map[string]*Study),
		reports: make(map[string]*Report),
	}
}

// Add inserts a study and its report (report may be nil).
func (r *MemoryRepository) Add(s *Study, rep *Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.studies[s.ID] = s
	if rep != nil {
		r.reports[s.ID] = rep
	}
}

// Studies returns all studies ordered by study date, newest first.
func (r *MemoryRepository) Studies() []*Study {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Study, 0, len(r.studies))
	for _, s := range r.studies {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StudyDate.After(out[j].StudyDate)
	})
	return out
}

// StudyByID looks up a single study.
func (r *MemoryRepository) StudyByID(id string) (*Study, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.studies[id]
	if !ok {
		return nil, &ErrNotFound{Kind: "study", ID: id}
	}
	return s, nil
}

// ReportForStudy looks up the report attached to a study.
func (r *MemoryRepository) ReportForStudy(studyID string) (*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.reports[studyID]
	if !ok {
		return nil, &ErrNotFound{Kind: "report", ID: studyID}
	}
	return rep, nil
}
