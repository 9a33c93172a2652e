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

func expectCmd() *cli.Command {
	var hamPath string

	return &cli.Command{
		Name:  "expect",
		Usage: "Evaluate a Hamiltonian expectation value after running a circuit",
		Flags: append(circuitFlags(),
			&cli.StringFlag{
				Name:        "hamiltonian",
				Aliases:     []string{"H"},
				Usage:       "path to Hamiltonian JSON ('-' for stdin)",
				Required:    true,
				Destination: &hamPath,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			circ, err := loadCircuit(circuitPath)
			if err != nil {
				return err
			}
			if circ.HasMeasurement() {
				return fmt.Errorf("expectation values require a measurement-free circuit")
			}
			ham, err := loadHamiltonian(hamPath)
			if err != nil {
				return err
			}
			if ham.MaxQubit() >= circ.NQubits {
				return fmt.Errorf("hamiltonian acts on qubit %d, but the circuit has %d qubits",
					ham.MaxQubit(), circ.NQubits)
			}
			params, err := parseParams(paramArgs)
			if err != nil {
				return err
			}

			pr := circuit.NewParameterResolver(params)
			sm := sim.NewSimulator(circ.NQubits, 0)
			start := time.Now()
			sm.ApplyCircuit(circ, pr)
			value := real(ham.Expectation(sm.State()))
			log.Debug("expectation finished",
				"qubits", circ.NQubits,
				"terms", len(ham.Terms),
				"duration", time.Since(start))
			return printJSON(map[string]any{"value": value})
		},
	}
}
