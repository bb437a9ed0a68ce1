// Command larkstruct is a small driver for the lark structure engine,
// mirroring cmd/canopy's shape: a root Cobra command with persistent
// flags, silenced built-in error/usage printing, and subcommands for
// running scripts, inspecting structures, and reporting cache stats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jward/lark"
	"github.com/jward/lark/internal/scripting"
)

// errorHandled is set by commands that already printed their own error so
// main() doesn't double-print (cmd/canopy/main.go's pattern).
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var flagScriptsDir string

var rootCmd = &cobra.Command{
	Use:           "larkstruct",
	Short:         "Drive the lark module/structure engine from the command line",
	Long:          "larkstruct runs Risor scripts as make-structure thunks against the lark engine, and inspects the resulting structures.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagScriptsDir, "scripts-dir", "", "resolve Risor import statements against this directory")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(statsCmd)
}

func newEngine() (*lark.Context, *scripting.Runtime) {
	rt := scripting.NewRuntime(scripting.WithScriptsDir(flagScriptsDir))
	ctx := lark.NewContext(lark.WithEvaluator(rt))
	rt.Bind(ctx)
	return ctx, rt
}

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Evaluate a Risor script as a root structure's body thunk",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	start := time.Now()

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("larkstruct: reading %s: %w", args[0], err)
	}

	ctx, rt := newEngine()
	body := scripting.NewClosure(rt, string(src))

	s, err := ctx.MakeStructure(nil, nil, body, nil)
	if err != nil {
		return fmt.Errorf("larkstruct: run %s: %w", args[0], err)
	}

	fmt.Fprintf(os.Stderr, "Ran %s in %s\n", args[0], time.Since(start).Round(time.Microsecond))
	fmt.Fprintf(os.Stderr, "Bindings: %d, buckets: %d\n", s.Stats().Bindings, s.Stats().Buckets)
	return nil
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Print a named structure's interface, imports, and bindings",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx, _ := newEngine()
	sym := ctx.Interner().Intern(args[0])

	s := ctx.GetStructure(sym)
	if s == nil {
		errorHandled = true
		fmt.Fprintf(os.Stderr, "Error: no structure named %q\n", args[0])
		return fmt.Errorf("larkstruct: inspect: %s: %w", args[0], lark.ErrVoidValue)
	}

	fmt.Printf("structure %s\n", args[0])
	fmt.Printf("  interface: %s\n", joinSymbols(s.Interface()))
	fmt.Printf("  imports:   %s\n", joinSymbols(s.Imports()))
	fmt.Printf("  accessible: %s\n", joinSymbols(s.Accessible()))

	ctx.StructureWalk(s, func(sym *lark.Symbol, v lark.Value) bool {
		fmt.Printf("  %s = %v\n", sym.Name(), v)
		return true
	})
	return nil
}

func joinSymbols(syms []*lark.Symbol) string {
	if len(syms) == 0 {
		return "(none)"
	}
	out := ""
	for i, s := range syms {
		if i > 0 {
			out += ", "
		}
		out += s.Name()
	}
	return out
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print lookup-cache hit/miss/collision/conflict counters",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, _ := newEngine()
	stats := ctx.CacheStats()
	fmt.Printf("hits: %d\nmisses: %d\ncollisions: %d\nconflicts: %d\nlive structures: %d\n",
		stats.Hits, stats.Misses, stats.Collisions, stats.Conflicts, len(ctx.Live()))
	return nil
}
