// Package overlay defines the simulated AI finding overlays drawn above a
// slice: heatmap hotspots, segmentation regions, and annotation bounding
// boxes. All coordinates are percent of the image frame (0-100) so entries
// stay correctly placed under any display scaling.
package overlay

import (
	"medview/internal/study"
	"medview/pkg/geometry"
)

// Layer identifies one of the three independent overlay layers.
type Layer int

const (
	LayerHeatmap Layer = iota
	LayerSegmentation
	LayerAnnotation
)

func (l Layer) String() string {
	switch l {
	case LayerHeatmap:
		return "heatmap"
	case LayerSegmentation:
		return "segmentation"
	case LayerAnnotation:
		return "annotation"
	default:
		return "unknown"
	}
}

// RenderMode selects how segmentation regions are drawn.
type RenderMode int

const (
	RenderFilled RenderMode = iota
	RenderContour
	RenderBoth
)

// SliceBand restricts an entry to a normalized slice range. The zero value
// (Lo == Hi == 0) means the entry is visible on every slice.
type SliceBand struct {
	Lo float64
	Hi float64
}

// Contains reports whether the normalized slice position t falls inside the
// band. An unset band contains every position.
func (b SliceBand) Contains(t float64) bool {
	if b.Lo == 0 && b.Hi == 0 {
		return true
	}
	return t >= b.Lo && t <= b.Hi
}

// Hotspot is one heatmap focus of simulated model attention.
type Hotspot struct {
	Center    geometry.Point2D
	Radius    float64 // percent of the frame
	Intensity float64 // 0-1, drives the heat ramp
	Label     string
	Band      SliceBand
}

// Region is a simulated segmentation mask rendered as a polygon.
type Region struct {
	Points      []geometry.Point2D
	Label       string
	Description string
	DiceScore   float64 // simulated mask-agreement score
	Band        SliceBand
}

// Contains reports whether a percent-coordinate point lies inside the region.
func (r Region) Contains(p geometry.Point2D) bool {
	return geometry.PointInPolygon(p, r.Points)
}

// BoundingBox is a simulated detection annotation.
type BoundingBox struct {
	Rect        geometry.Rect
	Label       string
	Description string
	Confidence  float64
	Severity    string
	Measurement string
	Band        SliceBand
}

// Dataset groups the overlay entries for one modality.
type Dataset struct {
	Hotspots []Hotspot
	Regions  []Region
	Boxes    []BoundingBox
}

// Empty reports whether the dataset has no entries at all.
func (d Dataset) Empty() bool {
	return len(d.Hotspots) == 0 && len(d.Regions) == 0 && len(d.Boxes) == 0
}

// At returns the subset of the dataset visible at normalized slice position t.
func (d Dataset) At(t float64) Dataset {
	var out Dataset
	for _, h := range d.Hotspots {
		if h.Band.Contains(t) {
			out.Hotspots = append(out.Hotspots, h)
		}
	}
	for _, r := range d.Regions {
		if r.Band.Contains(t) {
			out.Regions = append(out.Regions, r)
		}
	}
	for _, b := range d.Boxes {
		if b.Band.Contains(t) {
			out.Boxes = append(out.Boxes, b)
		}
	}
	return out
}

// ByModality returns the fixture dataset for a modality. Unknown modalities
// yield an empty dataset rather than an error.
func ByModality(m study.Modality) Dataset {
	switch m {
	case study.ModalityCT:
		return ctDataset
	case study.ModalityMRI:
		return mriDataset
	case study.ModalityXRay:
		return xrayDataset
	case study.ModalityUltrasound:
		return ultrasoundDataset
	case study.ModalityUnknown:
		return Dataset{}
	default:
		return Dataset{}
	}
}
