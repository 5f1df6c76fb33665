// Command dso2cs decompiles compiled TorqueScript DSO files back into
// readable .cs source (spec.md §6, an external collaborator of the core
// decoder). It follows the reference driver's per-file pipeline: parse,
// decode, format, with failures recorded rather than aborting the batch.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/misiektw/dso2cs/ast"
	"github.com/misiektw/dso2cs/binreader"
	"github.com/misiektw/dso2cs/decode"
	"github.com/misiektw/dso2cs/dso"
	"github.com/misiektw/dso2cs/dsocmp"
)

var (
	flagDebug     bool
	flagParseOnly bool
	flagCompare   bool
)

func main() {
	log.SetPrefix("dso2cs: ")
	log.SetFlags(0)

	root := &cobra.Command{
		Use:   "dso2cs file.dso [file2.dso ...]",
		Short: "Decompile compiled TorqueScript DSO files into .cs source",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dso.SetDebugMode(flagDebug)
			decode.SetDebugMode(flagDebug)
			if flagCompare {
				return runCompare(args)
			}
			return runDecode(args)
		},
	}
	root.Flags().BoolVar(&flagDebug, "debug", false, "raise log verbosity and keep partial output on decode failure")
	root.Flags().BoolVar(&flagParseOnly, "parse-only", false, "emit <path>.txt table dumps instead of decompiling")
	root.Flags().BoolVar(&flagCompare, "compare", false, "structurally diff exactly two DSO files instead of decompiling")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runCompare implements --compare: it requires exactly two paths and
// reports every structural difference dsocmp.Compare finds between them.
// Finding differences does not fail the process (spec.md §6 only ties the
// exit code to decompilation success); a wrong number of paths or a file
// that does not parse does.
func runCompare(paths []string) error {
	if len(paths) != 2 {
		return fmt.Errorf("--compare requires exactly two files, got %d", len(paths))
	}
	a, err := parseFile(paths[0])
	if err != nil {
		return fmt.Errorf("parsing %s: %w", paths[0], err)
	}
	b, err := parseFile(paths[1])
	if err != nil {
		return fmt.Errorf("parsing %s: %w", paths[1], err)
	}
	diffs := dsocmp.Compare(a, b)
	if len(diffs) == 0 {
		fmt.Printf("%s and %s are structurally identical\n", paths[0], paths[1])
		return nil
	}
	fmt.Printf("%s and %s differ:\n", paths[0], paths[1])
	for _, d := range diffs {
		fmt.Printf("  %s\n", d)
	}
	return nil
}

// runDecode implements the default verb: parse, optionally dump tables,
// decode, and format each input, tracking which ones fully succeeded.
func runDecode(paths []string) error {
	var failed []string
	for _, path := range paths {
		if err := decodeOne(path); err != nil {
			log.Printf("%s: %v", path, err)
			failed = append(failed, path)
		}
	}

	if len(failed) > 0 {
		log.Printf("failed to fully decompile: %s", strings.Join(failed, ", "))
	}
	log.Printf("fully decompiled %d out of %d input files", len(paths)-len(failed), len(paths))

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(failed), len(paths))
	}
	return nil
}

func parseFile(path string) (*dso.File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return dso.Parse(binreader.New(raw))
}

// decodeOne runs one file through parse -> (optional table dump) ->
// decode -> format -> write, mirroring the reference driver's behavior: a
// parse failure aborts the file outright; a decode failure still attempts
// to write the partial tree when --debug is set, the way the source keeps
// a partially-decompiled .cs around for inspection (spec.md §7).
func decodeOne(path string) error {
	f, err := parseFile(path)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if flagParseOnly {
		return writeTableDump(path, f)
	}

	d := decode.New(f, filepath.Base(path))
	decodeErr := d.Run()
	if decodeErr != nil && !flagDebug {
		return fmt.Errorf("decode: %w", decodeErr)
	}

	outPath := outPathFor(path, ".cs")
	if err := writeFormatted(outPath, d); err != nil {
		if decodeErr == nil {
			return fmt.Errorf("format: %w", err)
		}
		return fmt.Errorf("decode: %w (and format of partial tree also failed: %v)", decodeErr, err)
	}

	if decodeErr != nil {
		return fmt.Errorf("decode (partial output written): %w", decodeErr)
	}
	return nil
}

func writeFormatted(outPath string, d *decode.Decoder) error {
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return ast.NewFormatter(out).Format(d.Tree().Root)
}

func writeTableDump(path string, f *dso.File) error {
	out, err := os.Create(outPathFor(path, ".txt"))
	if err != nil {
		return err
	}
	defer out.Close()
	return f.DumpTables(out)
}

func outPathFor(path, ext string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i] + ext
	}
	return path + ext
}
