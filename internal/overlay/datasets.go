package overlay

import "medview/pkg/geometry"

// Fixture datasets standing in for model output. Coordinates are percent of
// the frame; bands are normalized slice ranges.

var ctDataset = Dataset{
	Hotspots: []Hotspot{
		{
			Center:    geometry.NewPoint2D(68, 44),
			Radius:    7,
			Intensity: 0.92,
			Label:     "High attention",
			Band:      SliceBand{Lo: 0.4, Hi: 0.7},
		},
		{
			Center:    geometry.NewPoint2D(34, 58),
			Radius:    5,
			Intensity: 0.55,
			Label:     "Moderate attention",
		},
	},
	Regions: []Region{
		{
			Points: []geometry.Point2D{
				{X: 62, Y: 36}, {X: 74, Y: 38}, {X: 77, Y: 48},
				{X: 71, Y: 56}, {X: 61, Y: 52}, {X: 59, Y: 42},
			},
			Label:       "Right lower lobe",
			Description: "Segmented lobe containing the flagged nodule",
			DiceScore:   0.91,
			Band:        SliceBand{Lo: 0.35, Hi: 0.75},
		},
		{
			Points: []geometry.Point2D{
				{X: 24, Y: 34}, {X: 38, Y: 32}, {X: 42, Y: 46},
				{X: 36, Y: 60}, {X: 24, Y: 56},
			},
			Label:       "Left lung",
			Description: "Clear lung field",
			DiceScore:   0.95,
		},
	},
	Boxes: []BoundingBox{
		{
			Rect:        geometry.NewRect(64, 40, 9, 9),
			Label:       "Nodule",
			Description: "Solid nodule, smooth margins",
			Confidence:  0.87,
			Severity:    "moderate",
			Measurement: "8.4 mm",
			Band:        SliceBand{Lo: 0.4, Hi: 0.7},
		},
		{
			Rect:        geometry.NewRect(28, 28, 6, 5),
			Label:       "Granuloma",
			Description: "Calcified granuloma, benign appearance",
			Confidence:  0.93,
			Severity:    "benign",
			Measurement: "3.1 mm",
			Band:        SliceBand{Lo: 0.2, Hi: 0.45},
		},
	},
}

var mriDataset = Dataset{
	Hotspots: []Hotspot{
		{
			Center:    geometry.NewPoint2D(46, 38),
			Radius:    6,
			Intensity: 0.7,
			Label:     "FLAIR hyperintensity",
			Band:      SliceBand{Lo: 0.3, Hi: 0.6},
		},
	},
	Regions: []Region{
		{
			Points: []geometry.Point2D{
				{X: 40, Y: 30}, {X: 54, Y: 30}, {X: 58, Y: 42},
				{X: 50, Y: 50}, {X: 40, Y: 46},
			},
			Label:       "Periventricular region",
			Description: "White-matter region with scattered hyperintensities",
			DiceScore:   0.84,
			Band:        SliceBand{Lo: 0.25, Hi: 0.65},
		},
	},
	Boxes: []BoundingBox{
		{
			Rect:        geometry.NewRect(43, 34, 7, 6),
			Label:       "WM lesion",
			Description: "Largest white-matter focus",
			Confidence:  0.78,
			Severity:    "low",
			Measurement: "4.2 mm",
			Band:        SliceBand{Lo: 0.3, Hi: 0.6},
		},
	},
}

var xrayDataset = Dataset{
	Hotspots: []Hotspot{
		{
			Center:    geometry.NewPoint2D(36, 72),
			Radius:    9,
			Intensity: 0.6,
			Label:     "Basal attention",
		},
	},
	Regions: []Region{
		{
			Points: []geometry.Point2D{
				{X: 28, Y: 64}, {X: 44, Y: 62}, {X: 48, Y: 74},
				{X: 38, Y: 80}, {X: 27, Y: 76},
			},
			Label:       "Left base",
			Description: "Hazy opacity, possible early consolidation",
			DiceScore:   0.72,
		},
	},
	Boxes: []BoundingBox{
		{
			Rect:        geometry.NewRect(30, 64, 15, 13),
			Label:       "Opacity",
			Description: "Left basal opacity flagged for review",
			Confidence:  0.64,
			Severity:    "moderate",
			Measurement: "22 mm",
		},
	},
}

var ultrasoundDataset = Dataset{
	Hotspots: []Hotspot{
		{
			Center:    geometry.NewPoint2D(52, 50),
			Radius:    8,
			Intensity: 0.5,
			Label:     "Echogenic focus",
			Band:      SliceBand{Lo: 0.2, Hi: 0.8},
		},
	},
	Boxes: []BoundingBox{
		{
			Rect:        geometry.NewRect(47, 44, 11, 11),
			Label:       "Echogenic focus",
			Description: "Well-circumscribed echogenic focus",
			Confidence:  0.71,
			Severity:    "low",
			Measurement: "12 mm",
			Band:        SliceBand{Lo: 0.2, Hi: 0.8},
		},
	},
}
