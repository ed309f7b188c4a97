// Package study defines imaging study and report models plus the
// repository interface the UI reads them through.
package study

import (
	"strings"
	"time"
)

// Modality identifies the imaging technique of a study.
type Modality int

const (
	ModalityUnknown Modality = iota
	ModalityCT
	ModalityMRI
	ModalityXRay
	ModalityUltrasound
)

func (m Modality) String() string {
	switch m {
	case ModalityCT:
		return "CT"
	case ModalityMRI:
		return "MRI"
	case ModalityXRay:
		return "X-Ray"
	case ModalityUltrasound:
		return "Ultrasound"
	default:
		return "Unknown"
	}
}

// ParseModality maps a modality string to its enum value. Matching is
// case-insensitive and tolerates the common "xray"/"x-ray" spellings.
func ParseModality(s string) Modality {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ct":
		return ModalityCT
	case "mri", "mr":
		return ModalityMRI
	case "xray", "x-ray", "cr", "dx":
		return ModalityXRay
	case "ultrasound", "us":
		return ModalityUltrasound
	default:
		return ModalityUnknown
	}
}

// Status of a study in the reading workflow.
type Status int

const (
	StatusPending Status = iota
	StatusProcessing
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Image is a single stored image within a series.
type Image struct {
	FilePath string `json:"file_path"`
}

// Series groups the images of one acquisition.
type Series struct {
	Number      int     `json:"series_number"`
	Description string  `json:"series_description"`
	Images      []Image `json:"images"`
}

// Study represents one imaging study.
type Study struct {
	ID          string    `json:"study_id"`
	CaseID      string    `json:"case_id"`
	PatientName string    `json:"patient_name"`
	Modality    Modality  `json:"-"`
	BodyPart    string    `json:"body_part"`
	Status      Status    `json:"-"`
	StudyDate   time.Time `json:"study_date"`
	TotalSlices int       `json:"num_images"`
	Series      []Series  `json:"series"`
}

// Finding is one simulated AI finding attached to a report.
type Finding struct {
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
	Severity    string  `json:"severity"`
	Measurement string  `json:"measurement,omitempty"`
}

// Report is the simulated AI report for a study.
type Report struct {
	ID             string    `json:"id"`
	StudyID        string    `json:"study_id"`
	Overview       string    `json:"overview"`
	Findings       []Finding `json:"findings"`
	Impression     string    `json:"impression"`
	PatientSupport string    `json:"patient_support"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Measurements returns the measurement strings of all findings that carry one.
func (r *Report) Measurements() []string {
	var out []string
	for _, f := range r.Findings {
		if f.Measurement != "" {
			out = append(out, f.Measurement)
		}
	}
	return out
}

// FindingLabels returns the labels of all findings.
func (r *Report) FindingLabels() []string {
	labels := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		labels = append(labels, f.Label)
	}
	return labels
}
