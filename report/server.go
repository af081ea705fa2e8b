package report

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"market-maker-sim/metrics"
	"market-maker-sim/sim"
)

// summaryResponse GET /summary 的返回体。
type summaryResponse struct {
	RunID     string          `json:"runId"`
	Seed      int64           `json:"seed"`
	Inventory int             `json:"inventory"`
	Cash      float64         `json:"cash"`
	Filled    int             `json:"filled"`
	Rejected  int             `json:"rejected"`
	Summary   metrics.Summary `json:"summary"`
}

// Server 对外暴露运行结果：/metrics、/ws、/summary、/healthz。
// 作为 sim.RunObserver 挂载时自动记录最近一次运行。
type Server struct {
	router chi.Router

	mu   sync.RWMutex
	last *sim.Result
}

// NewServer 组装路由。metrics 或 hub 为 nil 时对应路由不注册。
func NewServer(metrics http.Handler, hub *Hub) *Server {
	s := &Server{router: chi.NewRouter()}
	r := s.router

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/summary", s.handleSummary)
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}
	if hub != nil {
		r.Handle("/ws", hub)
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) OnStep(sim.StepEvent) {}

func (s *Server) OnRunStart(string, sim.Config) {}

func (s *Server) OnRunEnd(res *sim.Result) { s.Publish(res) }

// Publish 设置最近一次运行结果。
func (s *Server) Publish(res *sim.Result) {
	s.mu.Lock()
	s.last = res
	s.mu.Unlock()
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	res := s.last
	s.mu.RUnlock()
	if res == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no run yet"})
		return
	}
	writeJSON(w, http.StatusOK, newSummaryResponse(res))
}

func newSummaryResponse(res *sim.Result) summaryResponse {
	return summaryResponse{
		RunID:     res.RunID,
		Seed:      res.Config.Seed,
		Inventory: res.Final.Inventory,
		Cash:      res.Final.Cash,
		Filled:    res.Counts.Filled,
		Rejected:  res.Counts.Rejected,
		Summary:   res.Summary,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var _ sim.RunObserver = (*Server)(nil)
var _ sim.RunObserver = (*Hub)(nil)
