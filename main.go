// Command enclosure evaluates an enclosure script and writes the
// printable solids (STL), the gasket cutting outline (DXF) and a
// dimension sheet (PDF) next to the script.
//
// Usage:
//
//	enclosure [-o outdir] script.lisp
//
// A minimal script:
//
//	(build (enclosure :inner-width 31 :inner-length 71 :inner-height 16
//	                  :corner-screws false :middle-width-screws true))
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/enclosure/pkg/engine"
	"github.com/chazu/enclosure/pkg/export"
	"github.com/chazu/enclosure/pkg/kernel"
	"github.com/chazu/enclosure/pkg/kernel/prism"
)

func main() {
	outDir := flag.String("o", "", "output directory (default: script directory)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-o outdir] script.lisp\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	scriptPath := flag.Arg(0)

	src, err := os.ReadFile(scriptPath)
	if err != nil {
		log.Fatal(err)
	}

	eng := engine.NewEngine()
	design, evalErrs, err := eng.Evaluate(string(src))
	if err != nil {
		log.Fatal(err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", scriptPath, e.Error())
		}
		os.Exit(1)
	}
	if design.Result == nil {
		fmt.Fprintf(os.Stderr, "%s: script never called (build ...)\n", scriptPath)
		os.Exit(1)
	}

	dir := *outDir
	if dir == "" {
		dir = filepath.Dir(scriptPath)
	}
	base := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))

	res := design.Result
	k := prism.New()
	parts := []struct {
		suffix string
		solid  kernel.Solid
	}{
		{"_box.stl", res.Box},
		{"_lid.stl", res.Lid},
		{"_gasket.stl", res.Gasket},
	}
	for _, part := range parts {
		mesh, err := k.ToMesh(part.solid)
		if err != nil {
			log.Fatal(err)
		}
		path := filepath.Join(dir, base+part.suffix)
		if err := export.SaveSTL(path, mesh); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s (%d triangles)\n", path, mesh.TriangleCount())
	}

	dxfPath := filepath.Join(dir, base+"_gasket.dxf")
	if err := export.SaveGasketDXF(dxfPath, res.Params); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s\n", dxfPath)

	pdfPath := filepath.Join(dir, base+"_dimensions.pdf")
	if err := export.SaveDimensionSheet(pdfPath, res.Params); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s\n", pdfPath)
}
