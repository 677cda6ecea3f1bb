// cadgen turns tool-invocation batches (JSON produced by an upstream
// natural-language interface) into meshes.
//
//	cadgen run [-out scene.obj] batch.json [batch2.json ...]
//	cadgen tools
//
// Each batch file is one turn; models from earlier turns are retained by
// name across the session.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"cad-engine/internal/commands"
	"cad-engine/internal/config"
	"cad-engine/internal/dispatch"
	"cad-engine/internal/export"
	"cad-engine/internal/history"
	"cad-engine/internal/logging"
	"cad-engine/internal/mesh"
	"cad-engine/internal/scene"
	"cad-engine/internal/tools"
)

func main() {
	reg := commands.NewRegistry()

	runFlags := flag.NewFlagSet("run", flag.ContinueOnError)
	outPath := runFlags.String("out", "", "export meshes to this file (.obj or .stl)")
	slices := runFlags.Int("slices", 0, "override cylinder cross-section resolution")
	reg.Register("run", "process invocation batch files into meshes", runFlags, func(args []string) error {
		return runBatches(args, *outPath, *slices)
	})

	toolsFlags := flag.NewFlagSet("tools", flag.ContinueOnError)
	reg.Register("tools", "print the tool descriptor schemas as JSON", toolsFlags, func(args []string) error {
		return printTools()
	})

	if err := reg.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRegistry builds the tool registry from preferences and the primitive
// defaults file.
func newRegistry(prefs config.Prefs) (*tools.Registry, error) {
	opts := tools.DefaultOptions()
	opts.Resolution = prefs.AirfoilResolution
	defaults, err := config.LoadPrimitiveDefaults(config.DefaultsPath)
	if err != nil {
		return nil, fmt.Errorf("primitive defaults: %w", err)
	}
	if d, ok := defaults["Cube"]; ok {
		opts.CubeSize = d.Size
	}
	if d, ok := defaults["Cylinder"]; ok {
		opts.CylinderSize = d.Size
	}
	if d, ok := defaults["NACA4"]; ok {
		if d.Naca != "" {
			opts.NacaDigits = d.Naca
		}
		if d.Resolution > 0 {
			opts.Resolution = d.Resolution
		}
	}
	return tools.NewRegistry(opts), nil
}

func runBatches(paths []string, outPath string, slicesOverride int) error {
	if len(paths) == 0 {
		return fmt.Errorf("run: no batch files given (use - for stdin)")
	}
	prefs := config.Load()
	logging.SetLevel(prefs.LogLevel)

	reg, err := newRegistry(prefs)
	if err != nil {
		return err
	}
	d := dispatch.New(reg)
	d.Audit = history.New()

	mt := mesh.NewMaterializer()
	mt.Slices = prefs.CylinderSlices
	if slicesOverride > 2 {
		mt.Slices = slicesOverride
	}

	session := scene.NewSession()
	var lastMeshes []mesh.NamedMesh
	for _, path := range paths {
		raw, err := readBatch(path)
		if err != nil {
			return err
		}
		calls, err := dispatch.ParseCalls(string(raw))
		if err != nil {
			// Structurally invalid list: the whole batch aborts with the
			// first error.
			return fmt.Errorf("%s: %w", path, err)
		}

		scn := session.BeginTurn()
		res := d.Apply(scn, calls)
		meshes := mt.Materialize(scn.Models(), scn.TakeOperations())
		if err := session.EndTurn(); err != nil {
			return err
		}

		logging.Info("%s: %d model(s), %d operation(s), %d skipped, %d rejected, %d mesh(es)",
			path, res.ModelsCreated, res.OperationsQueued, res.Skipped, len(res.Rejected), len(meshes))
		for _, rerr := range res.Rejected {
			logging.Warn("%s: %v", path, rerr)
		}
		lastMeshes = meshes
	}

	if outPath != "" {
		if err := export.WriteFile(outPath, lastMeshes); err != nil {
			return err
		}
		logging.Info("exported %d mesh(es) to %s", len(lastMeshes), outPath)
	}
	return nil
}

func readBatch(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printTools() error {
	prefs := config.Load()
	reg, err := newRegistry(prefs)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(reg.Descriptors(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
