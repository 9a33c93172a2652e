package api

import "github.com/goccy/go-json"

// SimulateRequest runs a circuit from the all-zero state. With shots == 0
// the circuit runs once and the response carries the individual measurement
// outcomes and the final basis-state probabilities; with shots > 0 the
// circuit is resampled and the response carries outcome counts.
type SimulateRequest struct {
	Circuit json.RawMessage    `json:"circuit"`
	Params  map[string]float64 `json:"params,omitempty"`
	Shots   int                `json:"shots,omitempty"`
	Seed    *int64             `json:"seed,omitempty"`
}

type SimulateResponse struct {
	ID            string         `json:"id"`
	Qubits        int            `json:"qubits"`
	Measurements  map[string]int `json:"measurements,omitempty"`
	Probabilities []float64      `json:"probabilities,omitempty"`
	Counts        map[string]int `json:"counts,omitempty"`
	Shots         int            `json:"shots,omitempty"`
}

// ExpectationRequest evaluates Tr(rho * H) after running the circuit.
type ExpectationRequest struct {
	Circuit     json.RawMessage    `json:"circuit"`
	Hamiltonian json.RawMessage    `json:"hamiltonian"`
	Params      map[string]float64 `json:"params,omitempty"`
}

type ExpectationResponse struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
}

// GradientRequest evaluates expectation values and parameter gradients for
// every parameter set against every Hamiltonian. Parameters listed in
// no_grad are held constant.
type GradientRequest struct {
	Circuit      json.RawMessage      `json:"circuit"`
	Hamiltonians []json.RawMessage    `json:"hamiltonians"`
	ParamSets    []map[string]float64 `json:"param_sets"`
	NoGrad       []string             `json:"no_grad,omitempty"`
}

// GradientEntry is the result for one (parameter set, Hamiltonian) pair.
type GradientEntry struct {
	Expectation float64            `json:"expectation"`
	Gradients   map[string]float64 `json:"gradients"`
}

type GradientResponse struct {
	ID      string            `json:"id"`
	Results [][]GradientEntry `json:"results"`
}

// ResponseError is the wire form of an API error.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
