package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/donghufeng/mindquantum-1/internal/circuit"
	"github.com/donghufeng/mindquantum-1/internal/logger"
	"github.com/donghufeng/mindquantum-1/internal/sim"
)

func runCmd() *cli.Command {
	var (
		shots int64
		seed  int64
	)

	return &cli.Command{
		Name:  "run",
		Usage: "Run a circuit and report measurements or sampled counts",
		Flags: append(circuitFlags(),
			&cli.Int64Flag{
				Name:        "shots",
				Aliases:     []string{"s"},
				Usage:       "number of repetitions (0 runs the circuit once)",
				Destination: &shots,
			},
			&cli.Int64Flag{
				Name:        "seed",
				Usage:       "measurement RNG seed (default: wall clock)",
				Destination: &seed,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyRunConfig(cmd, LoadConfig(), &shots, &seed)

			circ, err := loadCircuit(circuitPath)
			if err != nil {
				return err
			}
			params, err := parseParams(paramArgs)
			if err != nil {
				return err
			}
			if !cmd.IsSet("seed") {
				seed = time.Now().UnixNano()
			}
			pr := circuit.NewParameterResolver(params)
			sm := sim.NewSimulator(circ.NQubits, seed)

			start := time.Now()
			out := map[string]any{"qubits": circ.NQubits}
			if shots > 0 {
				out["shots"] = shots
				out["counts"] = sm.Sample(circ, pr, int(shots), seed)
			} else {
				out["measurements"] = sm.ApplyCircuit(circ, pr)
				out["probabilities"] = sm.State().Diagonal()
			}
			log.Debug("circuit finished",
				"qubits", circ.NQubits,
				"gates", len(circ.Gates),
				"duration", time.Since(start))
			return printJSON(out)
		},
	}
}
