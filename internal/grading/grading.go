// Package grading computes dissertation marks and places books on the
// final results pipeline.
package grading

import (
	"math"

	"github.com/noah-isme/research-admin-gateway/internal/models"
)

// Weights of each component in the final dissertation mark.
const (
	WeightInternalText = 0.2
	WeightExternalText = 0.4
	WeightInternalViva = 0.2
	WeightExternalViva = 0.2
)

const (
	MinMark = 0.0
	MaxMark = 100.0
)

// Component names reported in Marks.Missing.
const (
	ComponentInternalText = "internalText"
	ComponentExternalText = "externalText"
	ComponentInternalViva = "internalViva"
	ComponentExternalViva = "externalViva"
)

// Marks are the components and totals of a book's final mark.
type Marks struct {
	InternalText float64  `json:"internalText"`
	ExternalText float64  `json:"externalText"`
	InternalViva float64  `json:"internalViva"`
	ExternalViva float64  `json:"externalViva"`
	TextTotal    float64  `json:"textTotal"`
	VivaTotal    float64  `json:"vivaTotal"`
	FinalMark    float64  `json:"finalMark"`
	Missing      []string `json:"missing,omitempty"`
}

// Complete reports whether every component was present.
func (m Marks) Complete() bool {
	return len(m.Missing) == 0
}

// ComputeBookMarks combines the current text examiners' grades with the
// current viva attempt's marks. Missing components count as zero.
func ComputeBookMarks(book models.Book) Marks {
	var m Marks

	if ex := book.CurrentExaminer(models.ExaminerInternal); ex != nil && ex.Grade != nil {
		m.InternalText = clamp(*ex.Grade)
	} else {
		m.Missing = append(m.Missing, ComponentInternalText)
	}
	if ex := book.CurrentExaminer(models.ExaminerExternal); ex != nil && ex.Grade != nil {
		m.ExternalText = clamp(*ex.Grade)
	} else {
		m.Missing = append(m.Missing, ComponentExternalText)
	}

	internalViva, externalViva := vivaMarks(book.CurrentViva())
	if internalViva != nil {
		m.InternalViva = clamp(*internalViva)
	} else {
		m.Missing = append(m.Missing, ComponentInternalViva)
	}
	if externalViva != nil {
		m.ExternalViva = clamp(*externalViva)
	} else {
		m.Missing = append(m.Missing, ComponentExternalViva)
	}

	m.TextTotal = round2(m.InternalText*WeightInternalText + m.ExternalText*WeightExternalText)
	m.VivaTotal = round2(m.InternalViva*WeightInternalViva + m.ExternalViva*WeightExternalViva)
	m.FinalMark = FinalMark(m.InternalText, m.ExternalText, m.InternalViva, m.ExternalViva)
	return m
}

// FinalMark is the weighted sum rounded to two decimals and bounded to [0,100].
func FinalMark(internalText, externalText, internalViva, externalViva float64) float64 {
	total := internalText*WeightInternalText +
		externalText*WeightExternalText +
		internalViva*WeightInternalViva +
		externalViva*WeightExternalViva
	return clamp(round2(total))
}

// vivaMarks returns the first internal and external mark of the attempt.
func vivaMarks(viva *models.Viva) (internal, external *float64) {
	if viva == nil {
		return nil, nil
	}
	for i := range viva.Marks {
		mark := viva.Marks[i].Mark
		switch viva.Marks[i].Type {
		case models.ExaminerInternal:
			if internal == nil {
				internal = &mark
			}
		case models.ExaminerExternal:
			if external == nil {
				external = &mark
			}
		}
	}
	return internal, external
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return MinMark
	}
	return math.Max(MinMark, math.Min(MaxMark, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
