package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/donghufeng/mindquantum-1/internal/circuit"
	"github.com/donghufeng/mindquantum-1/internal/logger"
	"github.com/donghufeng/mindquantum-1/internal/sim"
)

func gradCmd() *cli.Command {
	var (
		hamPaths []string
		noGrad   []string
	)

	return &cli.Command{
		Name:  "grad",
		Usage: "Evaluate expectation values and parameter gradients",
		Flags: append(circuitFlags(),
			&cli.StringSliceFlag{
				Name:        "hamiltonian",
				Aliases:     []string{"H"},
				Usage:       "path to Hamiltonian JSON (repeatable)",
				Required:    true,
				Destination: &hamPaths,
			},
			&cli.StringSliceFlag{
				Name:        "no-grad",
				Usage:       "parameter to hold constant (repeatable)",
				Destination: &noGrad,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			circ, err := loadCircuit(circuitPath)
			if err != nil {
				return err
			}
			if circ.HasMeasurement() {
				return fmt.Errorf("gradients require a measurement-free circuit")
			}
			hams := make([]sim.Observable, len(hamPaths))
			for i, path := range hamPaths {
				ham, err := loadHamiltonian(path)
				if err != nil {
					return err
				}
				if ham.MaxQubit() >= circ.NQubits {
					return fmt.Errorf("%s: hamiltonian acts on qubit %d, but the circuit has %d qubits",
						path, ham.MaxQubit(), circ.NQubits)
				}
				hams[i] = ham
			}
			params, err := parseParams(paramArgs)
			if err != nil {
				return err
			}

			pr := circuit.NewParameterResolver(params)
			for _, name := range noGrad {
				pr.MarkNoGrad(name)
			}
			sm := sim.NewSimulator(circ.NQubits, 0)
			start := time.Now()
			results := sm.ExpectationWithGrad(hams, circ, []*circuit.ParameterResolver{pr})
			log.Debug("gradient finished",
				"qubits", circ.NQubits,
				"hamiltonians", len(hams),
				"duration", time.Since(start))

			slots := pr.GradSlots()
			out := make([]map[string]any, len(results[0]))
			for i, r := range results[0] {
				grads := make(map[string]float64, len(slots))
				for name, slot := range slots {
					grads[name] = r.Grad(slot)
				}
				out[i] = map[string]any{
					"expectation": r.Expectation(),
					"gradients":   grads,
				}
			}
			return printJSON(out)
		},
	}
}
