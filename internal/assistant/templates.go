package assistant

import (
	"fmt"
	"strings"
)

// fallbackContent selects a canned response by keyword matching on the last
// user message. Branch order matters: the first match wins.
func fallbackContent(message string, c Context) string {
	msg := strings.ToLower(message)

	switch {
	case containsAny(msg, "size", "measure", "how big", "dimension", "mm", "diameter"):
		return measurementsTemplate(c)
	case containsAny(msg, "finding", "lesion", "abnormal", "nodule", "detect"):
		return findingsTemplate(c)
	case containsAny(msg, "overview", "summary", "summarize", "what does", "show"):
		return overviewTemplate(c)
	case containsAny(msg, "worried", "worry", "serious", "mean for me", "patient", "plain"):
		return patientSupportTemplate(c)
	default:
		return defaultTemplate(c)
	}
}

func measurementsTemplate(c Context) string {
	if len(c.Measurements.Data) == 0 {
		return "No measurements were recorded for this study."
	}
	return fmt.Sprintf("The key measurements from this study are: %s.",
		strings.Join(c.Measurements.Data, ", "))
}

func findingsTemplate(c Context) string {
	if len(c.Findings) == 0 {
		return "The analysis did not flag any findings for this study."
	}
	return fmt.Sprintf("The analysis flagged the following findings: %s. "+
		"Confidence scores and locations are shown on the annotation overlay.",
		strings.Join(c.Findings, "; "))
}

func overviewTemplate(c Context) string {
	if c.Overview == "" {
		return "No report overview is available for this study yet."
	}
	return c.Overview
}

func patientSupportTemplate(c Context) string {
	if c.PatientSupport == "" {
		return "A plain-language summary has not been prepared for this study yet."
	}
	return c.PatientSupport
}

func defaultTemplate(c Context) string {
	base := "I can answer questions about this study's findings, measurements, and report. " +
		"Try asking about the findings, the size of a finding, or for a summary."
	if c.Overview == "" {
		return base
	}
	return base + " For context: " + c.Overview
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
