package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shopfloor-sim/shopfloor-sim/sim"
	"github.com/shopfloor-sim/shopfloor-sim/sim/trace"
	"github.com/shopfloor-sim/shopfloor-sim/sim/workload"
)

var (
	// CLI flags for the simulation run
	configPath   string  // YAML config file (optional, defaults apply)
	plansPath    string  // YAML process-plan catalog (required)
	workloadPath string  // YAML workload spec (optional, defaults apply)
	poolRule     string  // pool sequencing rule override
	dispatchRule string  // dispatching rule override
	workloadNorm float64 // workload norm override
	horizon      float64 // simulation horizon override
	seed         int64   // random seed override
	logLevel     string  // log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "shopfloor-sim",
	Short: "Discrete-event simulator for disassembly shop-floor order release and dispatching",
}

// loadConfig assembles the effective config: file (if given) over
// defaults, then explicit flag overrides.
func loadConfig(cmd *cobra.Command) *sim.Config {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("pool-rule") {
		cfg.PoolRule = poolRule
	}
	if cmd.Flags().Changed("dispatch-rule") {
		cfg.DispatchRule = dispatchRule
	}
	if cmd.Flags().Changed("workload-norm") {
		cfg.WorkloadNorm = workloadNorm
	}
	if cmd.Flags().Changed("horizon") {
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg
}

func loadWorkloadSpec() *workload.Spec {
	spec := workload.DefaultSpec()
	if workloadPath != "" {
		loaded, err := workload.LoadSpec(workloadPath)
		if err != nil {
			logrus.Fatalf("Failed to load workload spec: %v", err)
		}
		spec = loaded
	}
	return spec
}

// runScenario builds an isolated simulator for the config, feeds it the
// generated orders and runs it to completion.
func runScenario(cfg *sim.Config, plans []*sim.ProcessPlan, spec *workload.Spec) (*sim.Simulator, error) {
	s, err := sim.NewSimulator(cfg, plans)
	if err != nil {
		return nil, err
	}
	gen, err := workload.NewGenerator(spec, plans)
	if err != nil {
		return nil, err
	}
	for _, o := range gen.Generate(s.RNG.ForSubsystem(sim.SubsystemWorkload)) {
		if err := s.InjectArrival(o); err != nil {
			return nil, err
		}
	}
	s.Run()
	return s, nil
}

// runCmd executes one simulation using parameters from flags and files
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one shop-floor simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := loadConfig(cmd)
		plans, err := sim.LoadPlans(plansPath)
		if err != nil {
			logrus.Fatalf("Failed to load plans: %v", err)
		}

		logrus.Infof("Starting simulation: pool=%s dispatch=%s norm=%v horizon=%v seed=%d",
			cfg.PoolRule, cfg.DispatchRule, cfg.WorkloadNorm, cfg.Horizon, cfg.Seed)

		s, err := runScenario(cfg, plans, loadWorkloadSpec())
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		s.Metrics.Print(s.Stations)
		summary := trace.Summarize(s.Trace)
		logrus.Infof("Emitted %d events; %d overrides; p95 throughput time %.2f",
			len(s.Trace.Records), summary.Overrides, summary.P95ThroughputTime)
	},
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML simulation config")
	runCmd.Flags().StringVar(&plansPath, "plans", "", "Path to YAML process-plan catalog")
	runCmd.Flags().StringVar(&workloadPath, "workload", "", "Path to YAML workload spec")
	runCmd.Flags().StringVar(&poolRule, "pool-rule", "FCFS", "Pool sequencing rule (FCFS, EDD, CR)")
	runCmd.Flags().StringVar(&dispatchRule, "dispatch-rule", "FCFS", "Dispatching rule (FCFS, SPT, PST)")
	runCmd.Flags().Float64Var(&workloadNorm, "workload-norm", 10, "Corrected workload norm per station type")
	runCmd.Flags().Float64Var(&horizon, "horizon", 100, "Simulation horizon in time units")
	runCmd.Flags().Int64Var(&seed, "seed", 44, "Random seed")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	_ = runCmd.MarkFlagRequired("plans")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
