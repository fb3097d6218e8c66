package health

import (
	"net/http"
	"sort"
	"sync"

	"github.com/careervisualizer/backend/internal/common"
)

// Status records which dependencies failed to start.
type Status struct {
	mu   sync.RWMutex
	errs map[string]error
}

func NewStatus() *Status {
	return &Status{errs: map[string]error{}}
}

// Set marks component as failed when err is non-nil, healthy otherwise.
func (s *Status) Set(component string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.errs, component)
		return
	}
	s.errs[component] = err
}

// Failures returns "component: error" strings, sorted by component.
func (s *Status) Failures() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.errs))
	for name, err := range s.errs {
		out = append(out, name+": "+err.Error())
	}
	sort.Strings(out)
	return out
}

func (s *Status) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if failures := s.Failures(); len(failures) > 0 {
			common.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "degraded",
				"error":  failures,
			})
			return
		}
		common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
