// Package api exposes the density-matrix simulator over a small REST
// surface: run a circuit, evaluate an observable, or batch-evaluate
// expectation values with gradients.
package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/donghufeng/mindquantum-1/internal/circuit"
	"github.com/donghufeng/mindquantum-1/internal/logger"
	"github.com/donghufeng/mindquantum-1/internal/ops"
	"github.com/donghufeng/mindquantum-1/internal/sim"
	"github.com/donghufeng/mindquantum-1/internal/version"
)

// maxQubits bounds request sizes. The packed state is quadratic in the
// Hilbert dimension and gradient calls additionally materialize each
// Hamiltonian densely, so the service refuses anything larger.
const maxQubits = 12

// maxShots bounds sampling work per request.
const maxShots = 1 << 20

type Server struct {
	log logger.Logger
}

func NewServer(log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/simulate", s.handleSimulate)
	e.POST("/v1/expectation", s.handleExpectation)
	e.POST("/v1/gradient", s.handleGradient)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Version: version.String(),
	})
}

// parseCircuit decodes and bounds-checks the circuit common to every
// endpoint.
func parseCircuit(raw json.RawMessage) (*circuit.Circuit, error) {
	if len(raw) == 0 {
		return nil, newInvalidRequest("circuit is required")
	}
	circ, err := circuit.Parse(raw)
	if err != nil {
		return nil, newInvalidRequest(err.Error())
	}
	if circ.NQubits > maxQubits {
		return nil, newInvalidRequest("circuit exceeds the qubit limit of this service")
	}
	return circ, nil
}

func parseHamiltonian(raw json.RawMessage, nQubits int) (*ops.Hamiltonian, error) {
	if len(raw) == 0 {
		return nil, newInvalidRequest("hamiltonian is required")
	}
	ham, err := ops.Parse(raw)
	if err != nil {
		return nil, newInvalidRequest(err.Error())
	}
	if ham.MaxQubit() >= nQubits {
		return nil, newInvalidRequest("hamiltonian acts on qubits outside the circuit")
	}
	return ham, nil
}

func (s *Server) handleSimulate(c *echo.Context) error {
	req, err := decodeJSON[SimulateRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	circ, err := parseCircuit(req.Circuit)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if req.Shots < 0 || req.Shots > maxShots {
		return writeBadRequest(c, "shots out of range")
	}
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	pr := circuit.NewParameterResolver(req.Params)
	sm := sim.NewSimulator(circ.NQubits, seed)
	resp := SimulateResponse{
		ID:     newJobID("sim"),
		Qubits: circ.NQubits,
	}
	start := time.Now()
	if req.Shots > 0 {
		resp.Counts = sm.Sample(circ, pr, req.Shots, seed)
		resp.Shots = req.Shots
	} else {
		resp.Measurements = sm.ApplyCircuit(circ, pr)
		resp.Probabilities = sm.State().Diagonal()
	}
	s.log.Info("simulate",
		"id", resp.ID,
		"qubits", circ.NQubits,
		"gates", len(circ.Gates),
		"shots", req.Shots,
		"duration", time.Since(start))
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleExpectation(c *echo.Context) error {
	req, err := decodeJSON[ExpectationRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	circ, err := parseCircuit(req.Circuit)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if circ.HasMeasurement() {
		return writeBadRequest(c, "expectation values require a measurement-free circuit")
	}
	ham, err := parseHamiltonian(req.Hamiltonian, circ.NQubits)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	pr := circuit.NewParameterResolver(req.Params)
	sm := sim.NewSimulator(circ.NQubits, 0)
	start := time.Now()
	sm.ApplyCircuit(circ, pr)
	value := real(ham.Expectation(sm.State()))
	s.log.Info("expectation",
		"qubits", circ.NQubits,
		"gates", len(circ.Gates),
		"terms", len(ham.Terms),
		"duration", time.Since(start))
	return c.JSON(http.StatusOK, ExpectationResponse{
		ID:    newJobID("exp"),
		Value: value,
	})
}

func (s *Server) handleGradient(c *echo.Context) error {
	req, err := decodeJSON[GradientRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	circ, err := parseCircuit(req.Circuit)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if circ.HasMeasurement() {
		return writeBadRequest(c, "gradients require a measurement-free circuit")
	}
	if len(req.Hamiltonians) == 0 {
		return writeBadRequest(c, "at least one hamiltonian is required")
	}
	if len(req.ParamSets) == 0 {
		return writeBadRequest(c, "at least one parameter set is required")
	}
	hams := make([]sim.Observable, len(req.Hamiltonians))
	for i, raw := range req.Hamiltonians {
		ham, err := parseHamiltonian(raw, circ.NQubits)
		if err != nil {
			return writeBadRequest(c, err.Error())
		}
		hams[i] = ham
	}
	prs := make([]*circuit.ParameterResolver, len(req.ParamSets))
	for i, values := range req.ParamSets {
		pr := circuit.NewParameterResolver(values)
		for _, name := range req.NoGrad {
			pr.MarkNoGrad(name)
		}
		prs[i] = pr
	}
	sm := sim.NewSimulator(circ.NQubits, 0)
	start := time.Now()
	results := sm.ExpectationWithGrad(hams, circ, prs)
	resp := GradientResponse{
		ID:      newJobID("grad"),
		Results: make([][]GradientEntry, len(results)),
	}
	for i, perHam := range results {
		slots := prs[i].GradSlots()
		entries := make([]GradientEntry, len(perHam))
		for j, r := range perHam {
			grads := make(map[string]float64, len(slots))
			for name, slot := range slots {
				grads[name] = r.Grad(slot)
			}
			entries[j] = GradientEntry{
				Expectation: r.Expectation(),
				Gradients:   grads,
			}
		}
		resp.Results[i] = entries
	}
	s.log.Info("gradient",
		"id", resp.ID,
		"qubits", circ.NQubits,
		"gates", len(circ.Gates),
		"hamiltonians", len(hams),
		"param_sets", len(prs),
		"duration", time.Since(start))
	return c.JSON(http.StatusOK, resp)
}
