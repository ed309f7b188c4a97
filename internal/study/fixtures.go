package study

import "time"

// FixtureRepository returns a repository pre-loaded with the demo studies
// and simulated AI reports shown when no backend is configured.
func FixtureRepository() *MemoryRepository {
	repo := NewMemoryRepository()

	chestCT := &Study{
		ID:          "STU-2024-0001",
		CaseID:      "CASE-1042",
		PatientName: "Jane Moreno",
		Modality:    ModalityCT,
		BodyPart:    "chest",
		Status:      StatusCompleted,
		StudyDate:   time.Date(2024, 11, 3, 9, 15, 0, 0, time.UTC),
		TotalSlices: 120,
	}
	repo.Add(chestCT, &Report{
		ID:      "RPT-0001",
		StudyID: chestCT.ID,
		Overview: "Contrast-enhanced chest CT. The AI pipeline flagged one " +
			"pulmonary nodule in the right lower lobe; remaining lung fields " +
			"are clear. Cardiac and mediastinal contours are unremarkable.",
		Findings: []Finding{
			{
				Label:       "Pulmonary nodule",
				Description: "Solid nodule with smooth margins in the right lower lobe",
				Confidence:  0.87,
				Severity:    "moderate",
				Measurement: "8.4 mm diameter",
			},
			{
				Label:       "Calcified granuloma",
				Description: "Small calcified granuloma, left upper lobe, benign appearance",
				Confidence:  0.93,
				Severity:    "benign",
				Measurement: "3.1 mm diameter",
			},
		},
		Impression: "Indeterminate 8 mm right lower lobe nodule. " +
			"Follow-up CT in 6 months suggested per Fleischner criteria.",
		PatientSupport: "A small spot was found in the right lung. Most spots " +
			"like this are harmless, and a follow-up scan is a routine precaution.",
		GeneratedAt: time.Date(2024, 11, 3, 9, 42, 0, 0, time.UTC),
	})

	brainMRI := &Study{
		ID:          "STU-2024-0002",
		CaseID:      "CASE-1087",
		PatientName: "Robert Ellis",
		Modality:    ModalityMRI,
		BodyPart:    "head",
		Status:      StatusCompleted,
		StudyDate:   time.Date(2024, 11, 5, 14, 0, 0, 0, time.UTC),
		TotalSlices: 96,
	}
	repo.Add(brainMRI, &Report{
		ID:      "RPT-0002",
		StudyID: brainMRI.ID,
		Overview: "Brain MRI with T1 and FLAIR sequences. Scattered " +
			"periventricular white-matter hyperintensities, otherwise normal " +
			"for age. No mass effect or midline shift.",
		Findings: []Finding{
			{
				Label:       "White matter hyperintensity",
				Description: "Periventricular FLAIR hyperintensities, nonspecific",
				Confidence:  0.78,
				Severity:    "low",
				Measurement: "largest focus 4.2 mm",
			},
		},
		Impression:     "Nonspecific white-matter changes, likely chronic microvascular.",
		PatientSupport: "The scan shows minor age-related changes that are common and usually not a cause for concern.",
		GeneratedAt:    time.Date(2024, 11, 5, 14, 31, 0, 0, time.UTC),
	})

	chestXRay := &Study{
		ID:          "STU-2024-0003",
		CaseID:      "CASE-1102",
		PatientName: "Amara Diallo",
		Modality:    ModalityXRay,
		BodyPart:    "chest",
		Status:      StatusProcessing,
		StudyDate:   time.Date(2024, 11, 7, 8, 5, 0, 0, time.UTC),
		TotalSlices: 1,
	}
	repo.Add(chestXRay, &Report{
		ID:      "RPT-0003",
		StudyID: chestXRay.ID,
		Overview: "PA chest radiograph. Possible left basal opacity flagged " +
			"for review; no pneumothorax or effusion detected.",
		Findings: []Finding{
			{
				Label:       "Basal opacity",
				Description: "Hazy opacity at the left lung base, possible early consolidation",
				Confidence:  0.64,
				Severity:    "moderate",
				Measurement: "22 mm extent",
			},
		},
		Impression:     "Possible early left basal consolidation; clinical correlation advised.",
		PatientSupport: "There is a faint shadow at the base of the left lung that the care team will review with you.",
		GeneratedAt:    time.Date(2024, 11, 7, 8, 18, 0, 0, time.UTC),
	})

	abdomenUS := &Study{
		ID:          "STU-2024-0004",
		CaseID:      "CASE-1042",
		PatientName: "Jane Moreno",
		Modality:    ModalityUltrasound,
		BodyPart:    "abdomen",
		Status:      StatusPending,
		StudyDate:   time.Date(2024, 11, 8, 11, 30, 0, 0, time.UTC),
		TotalSlices: 48,
	}
	repo.Add(abdomenUS, nil)

	return repo
}
