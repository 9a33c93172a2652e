package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/donghufeng/mindquantum-1/internal/circuit"
	"github.com/donghufeng/mindquantum-1/internal/ops"
)

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func loadCircuit(path string) (*circuit.Circuit, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, fmt.Errorf("read circuit: %w", err)
	}
	return circuit.Parse(data)
}

func loadHamiltonian(path string) (*ops.Hamiltonian, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, fmt.Errorf("read hamiltonian: %w", err)
	}
	return ops.Parse(data)
}

// parseParams turns repeated name=value flags into a parameter map.
func parseParams(args []string) (map[string]float64, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed parameter %q, want name=value", arg)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed parameter value in %q: %w", arg, err)
		}
		out[name] = v
	}
	return out, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Println(string(data))
	return err
}
