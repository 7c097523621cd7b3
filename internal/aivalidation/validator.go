// Package aivalidation is the mocked AI layer. Every result is a fixed,
// deterministic stand-in for a real model; nothing here calls out or
// persists anything.
package aivalidation

import (
	"encoding/json"
	"fmt"
	"time"
)

// Fixed demo scores attached to every document and claim.
const (
	DocumentScore  = 85
	ClaimAIScore   = 85
	ClaimFraudRisk = 41
)

// Validations are the per-field document checks. The values are fixed
// demo output, not computed.
type Validations struct {
	ICDCode     bool `json:"icdCode"`
	ResumeMedis bool `json:"resumeMedis"`
	Signature   bool `json:"signature"`
	Tanggal     bool `json:"tanggal"`
}

// ExtractedData is the fixed demo extraction payload.
type ExtractedData struct {
	PatientName string `json:"patientName"`
	Diagnosis   string `json:"diagnosis"`
	ICDCode     string `json:"icdCode"`
	DoctorName  string `json:"doctorName"`
	Date        string `json:"date"`
}

// DocumentResult is the response of the mock document validation.
type DocumentResult struct {
	FileName        string        `json:"fileName"`
	FileType        string        `json:"fileType"`
	FileSize        int64         `json:"fileSize"`
	ValidationScore int           `json:"validationScore"`
	Status          string        `json:"status"`
	Validations     Validations   `json:"validations"`
	ExtractedData   ExtractedData `json:"extractedData"`
	Timestamp       time.Time     `json:"timestamp"`
}

// Validator produces mocked validation verdicts. The clock is injectable
// for tests.
type Validator struct {
	now func() time.Time
}

func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// ScoreStatus buckets a 0-100 score the way the original demo did.
func ScoreStatus(score int) string {
	switch {
	case score >= 85:
		return "excellent"
	case score >= 70:
		return "good"
	default:
		return "review"
	}
}

// ValidateDocument echoes the file metadata back with the fixed score,
// flags and extraction payload. Pure function of its inputs.
func (v *Validator) ValidateDocument(fileName, fileType string, fileSize int64) DocumentResult {
	now := v.now().UTC()
	return DocumentResult{
		FileName:        fileName,
		FileType:        fileType,
		FileSize:        fileSize,
		ValidationScore: DocumentScore,
		Status:          ScoreStatus(DocumentScore),
		Validations: Validations{
			ICDCode:     true,
			ResumeMedis: false,
			Signature:   true,
			Tanggal:     true,
		},
		ExtractedData: ExtractedData{
			PatientName: "Demo Patient",
			Diagnosis:   "Contoh Diagnosis",
			ICDCode:     "A00",
			DoctorName:  "dr. Demo",
			Date:        now.Format(time.RFC3339),
		},
		Timestamp: now,
	}
}

// ScoreClaim returns the fixed demo claim scores plus a verdict blob
// stored alongside the claim. Implements the claim service's Scorer.
func (v *Validator) ScoreClaim(serviceType, diagnosis string, amount float64) (int, int, json.RawMessage) {
	verdict, _ := json.Marshal(map[string]any{
		"engine":    "mock",
		"ai_score":  ClaimAIScore,
		"fraud":     ClaimFraudRisk,
		"scored_at": v.now().UTC().Format(time.RFC3339),
	})
	return ClaimAIScore, ClaimFraudRisk, verdict
}

// FraudAnalysis is the response of the mock fraud detection.
type FraudAnalysis struct {
	ClaimID        string    `json:"claimId"`
	FraudScore     int       `json:"fraudScore"`
	RiskLevel      string    `json:"riskLevel"`
	RiskFactors    []string  `json:"riskFactors"`
	Recommendation string    `json:"recommendation"`
	AIExplanation  string    `json:"aiExplanation"`
	Timestamp      time.Time `json:"timestamp"`
}

// DetectFraud derives a deterministic analysis from the claim's stored
// fraud score.
func (v *Validator) DetectFraud(claimID string, fraudScore int) FraudAnalysis {
	a := FraudAnalysis{
		ClaimID:     claimID,
		FraudScore:  fraudScore,
		RiskFactors: []string{},
		Timestamp:   v.now().UTC(),
	}
	switch {
	case fraudScore >= 80:
		a.RiskLevel = "high"
		a.RiskFactors = []string{
			"Duplicate claim pattern detected",
			"Unusual billing amount for diagnosis",
		}
		a.Recommendation = "Immediate investigation required"
	case fraudScore >= 60:
		a.RiskLevel = "medium"
		a.RiskFactors = []string{"Moderate risk pattern identified"}
		a.Recommendation = "Manual review recommended"
	default:
		a.RiskLevel = "low"
		a.Recommendation = "Low risk - proceed normally"
	}
	indicators := 8
	if fraudScore >= 80 {
		indicators = 15
	}
	a.AIExplanation = fmt.Sprintf(
		"Based on pattern analysis of %d key indicators including billing patterns, diagnosis codes, and historical data.",
		indicators,
	)
	return a
}
