// Command slicegen renders procedural study slices to PNG files, useful for
// inspecting the renderer output outside the viewer.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"medview/internal/anatomy"
	"medview/internal/study"
)

func main() {
	modalityFlag := flag.String("modality", "CT", "Modality: CT, MRI, X-Ray, or Ultrasound")
	from := flag.Int("from", 1, "First slice to render")
	to := flag.Int("to", 0, "Last slice to render (0 means same as -from)")
	total := flag.Int("total", 120, "Total slices in the stack")
	size := flag.Int("size", 512, "Output image edge length in pixels")
	outDir := flag.String("out", ".", "Output directory")
	flag.Parse()

	modality := study.ParseModality(*modalityFlag)
	if modality == study.ModalityUnknown {
		fmt.Fprintf(os.Stderr, "Unknown modality %q\n", *modalityFlag)
		os.Exit(1)
	}

	last := *to
	if last == 0 {
		last = *from
	}
	if *from < 1 || last < *from || last > *total {
		fmt.Fprintf(os.Stderr, "Invalid slice range %d-%d for a %d-slice stack\n",
			*from, last, *total)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for slice := *from; slice <= last; slice++ {
		img := anatomy.Render(modality, slice, *total, *size)
		name := fmt.Sprintf("%s_%03d.png", modality, slice)
		path := filepath.Join(*outDir, name)

		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", path, err)
			os.Exit(1)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "Failed to encode %s: %v\n", path, err)
			os.Exit(1)
		}
		f.Close()
		fmt.Printf("Wrote %s (%dx%d)\n", path, *size, *size)
	}
}
