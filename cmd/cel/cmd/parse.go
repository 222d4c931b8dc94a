package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/pkg/cel"
)

var (
	parseExpr    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a CEL expression and display its AST",
	Long: `Parse Common Expression Language source and display the Abstract Syntax
Tree.

If no file is provided, reads from stdin. Use -e to parse a single
expression given on the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpr, "expression", "e", "", "parse an expression given on the command line")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure instead of the one-line form")
}

func runParse(_ *cobra.Command, args []string) error {
	source, err := readSource(parseExpr, args)
	if err != nil {
		return err
	}

	env := cel.NewEnvironment()
	expr, err := env.Compile(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("parsing failed")
	}

	if parseDumpAST {
		fmt.Println("Abstract Syntax Tree:")
		fmt.Println("=====================")
		dumpASTNode(expr, 0)
	} else {
		fmt.Println(expr.String())
	}

	return nil
}

func dumpASTNode(node ast.Expr, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.Ident:
		fmt.Printf("%sIdent: %s\n", pad, n.String())
	case *ast.IntLit:
		fmt.Printf("%sIntLit: %d\n", pad, n.Value)
	case *ast.UintLit:
		fmt.Printf("%sUintLit: %d\n", pad, n.Value)
	case *ast.DoubleLit:
		fmt.Printf("%sDoubleLit: %g\n", pad, n.Value)
	case *ast.StringLit:
		fmt.Printf("%sStringLit: %q\n", pad, n.Value)
	case *ast.BytesLit:
		fmt.Printf("%sBytesLit: %q\n", pad, n.Value)
	case *ast.BoolLit:
		fmt.Printf("%sBoolLit: %v\n", pad, n.Value)
	case *ast.NullLit:
		fmt.Printf("%sNullLit\n", pad)
	case *ast.ParenExpr:
		fmt.Printf("%sParenExpr\n", pad)
		dumpASTNode(n.Inner, indent+1)
	case *ast.ListExpr:
		fmt.Printf("%sListExpr (%d elements)\n", pad, len(n.Elements))
		for _, e := range n.Elements {
			dumpASTNode(e, indent+1)
		}
	case *ast.MapExpr:
		fmt.Printf("%sMapExpr (%d entries)\n", pad, len(n.Entries))
		for _, e := range n.Entries {
			fmt.Printf("%s  Key:\n", pad)
			dumpASTNode(e.Key, indent+2)
			fmt.Printf("%s  Value:\n", pad)
			dumpASTNode(e.Value, indent+2)
		}
	case *ast.MessageExpr:
		fmt.Printf("%sMessageExpr: %s (%d fields)\n", pad, n.TypeName, len(n.Fields))
		for _, f := range n.Fields {
			fmt.Printf("%s  %s:\n", pad, f.Name)
			dumpASTNode(f.Value, indent+2)
		}
	case *ast.SelectExpr:
		label := "SelectExpr"
		if n.TestOnly {
			label = "SelectExpr (test-only)"
		}
		fmt.Printf("%s%s: .%s\n", pad, label, n.Field)
		dumpASTNode(n.Operand, indent+1)
	case *ast.IndexExpr:
		fmt.Printf("%sIndexExpr\n", pad)
		fmt.Printf("%s  Operand:\n", pad)
		dumpASTNode(n.Operand, indent+2)
		fmt.Printf("%s  Index:\n", pad)
		dumpASTNode(n.Index, indent+2)
	case *ast.CallExpr:
		fmt.Printf("%sCallExpr: %s (%d args)\n", pad, n.Function, len(n.Args))
		if n.Target != nil {
			fmt.Printf("%s  Target:\n", pad)
			dumpASTNode(n.Target, indent+2)
		}
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
	case *ast.BinaryExpr:
		fmt.Printf("%sBinaryExpr (%s)\n", pad, n.Op)
		fmt.Printf("%s  Left:\n", pad)
		dumpASTNode(n.Left, indent+2)
		fmt.Printf("%s  Right:\n", pad)
		dumpASTNode(n.Right, indent+2)
	case *ast.UnaryExpr:
		fmt.Printf("%sUnaryExpr (%s)\n", pad, n.Op)
		dumpASTNode(n.Operand, indent+1)
	case *ast.TernaryExpr:
		fmt.Printf("%sTernaryExpr\n", pad)
		fmt.Printf("%s  Cond:\n", pad)
		dumpASTNode(n.Cond, indent+2)
		fmt.Printf("%s  Then:\n", pad)
		dumpASTNode(n.Then, indent+2)
		fmt.Printf("%s  Else:\n", pad)
		dumpASTNode(n.Else, indent+2)
	default:
		fmt.Printf("%s%T: %v\n", pad, node, node)
	}
}
