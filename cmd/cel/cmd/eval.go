package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/cwbudde/go-cel/internal/types"
	"github.com/cwbudde/go-cel/pkg/cel"
)

var (
	evalExpr   string
	configPath string
)

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate a CEL expression",
	Long: `Evaluate a Common Expression Language expression from a file or inline
source, printing the resulting value.

Examples:
  # Evaluate an inline expression
  cel eval -e "1 + 2 * 3"

  # Evaluate a file
  cel eval expr.cel

  # Evaluate with bound variables from an environment config
  cel eval -e "request.path.startsWith('/v1')" --config env.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	evalCmd.Flags().StringVar(&configPath, "config", "", "environment config file (package prefix, bound variables)")
}

// envConfig is the optional `--config` file shape: a package prefix for
// name resolution plus a flat variable binding to evaluate against
// (spec.md §4.2, §3).
type envConfig struct {
	Package string                 `yaml:"package"`
	Vars    map[string]interface{} `yaml:"vars"`
}

func runEval(_ *cobra.Command, args []string) error {
	source, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	var opts []cel.Option
	vars := map[string]cel.Value{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
		var cfg envConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", configPath, err)
		}
		if cfg.Package != "" {
			opts = append(opts, cel.WithPackage(cfg.Package))
		}
		for name, raw := range cfg.Vars {
			vars[name] = valueFromYAML(raw)
		}
	}

	env := cel.NewEnvironment(opts...)

	expr, err := env.Compile(source)
	if err != nil {
		return err
	}

	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		fmt.Fprintln(os.Stderr, expr.String())
	}

	result, err := env.Plan(expr).Run(vars)
	if err != nil {
		return err
	}

	fmt.Println(result.String())
	return nil
}

// valueFromYAML converts a decoded YAML scalar/sequence/mapping into a
// CEL Value, mirroring the corresponding literal kinds of spec.md §3.
func valueFromYAML(raw interface{}) types.Value {
	switch v := raw.(type) {
	case nil:
		return types.Null{}
	case bool:
		return types.Bool(v)
	case int:
		return types.Int(v)
	case int64:
		return types.Int(v)
	case uint64:
		return types.Uint(v)
	case float64:
		return types.Double(v)
	case string:
		return types.String(v)
	case []interface{}:
		elems := make([]types.Value, len(v))
		for i, e := range v {
			elems[i] = valueFromYAML(e)
		}
		return types.NewList(elems)
	case map[string]interface{}:
		m := types.NewMap()
		for k, e := range v {
			_ = m.Insert(types.String(k), valueFromYAML(e))
		}
		return m
	default:
		return types.String(fmt.Sprintf("%v", v))
	}
}

// readSource resolves the expression/file/stdin precedence shared by the
// eval and parse subcommands (teacher's cmd/dwscript/cmd/run.go, parse.go).
func readSource(inline string, args []string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
