package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type Category string

const (
	CategoryDepression Category = "depression"
	CategoryAnxiety    Category = "anxiety"
	CategorySleep      Category = "sleep"
	CategoryADHD       Category = "adhd"
	CategoryOCD        Category = "ocd"
	CategoryBipolar    Category = "bipolar"
	CategoryPTSD       Category = "ptsd"
)

var questionCategories = map[int]Category{
	1:  CategoryDepression,
	2:  CategoryAnxiety,
	3:  CategoryAnxiety,
	4:  CategoryDepression,
	5:  CategorySleep,
	6:  CategoryDepression,
	7:  CategoryAnxiety,
	8:  CategoryADHD,
	9:  CategoryOCD,
	10: CategoryOCD,
	11: CategoryBipolar,
	12: CategoryADHD,
	13: CategoryPTSD,
	14: CategoryPTSD,
	15: CategoryDepression,
}

// categoryOrder lists categories by the lowest question id mapped to them.
// It decides ties for the primary category: the first one reaching the
// highest subtotal wins.
var categoryOrder = []Category{
	CategoryDepression,
	CategoryAnxiety,
	CategorySleep,
	CategoryADHD,
	CategoryOCD,
	CategoryBipolar,
	CategoryPTSD,
}

// Question 15 asks about self harm
const selfHarmQuestion = "15"

const (
	SeverityMinimal  = "Minimal symptoms"
	SeverityMild     = "Mild symptoms"
	SeverityModerate = "Moderate symptoms"
	SeveritySevere   = "Severe symptoms"
	SeverityUrgent   = "Severe symptoms - Immediate attention required"

	DiagnosisLowRisk  = "Low risk - General wellness recommended"
	DiagnosisMild     = "Mild symptoms detected - Consider professional consultation"
	DiagnosisModerate = "Moderate symptoms - Professional evaluation recommended"
	DiagnosisSevere   = "Severe symptoms - Immediate professional help recommended"
	DiagnosisUrgent   = "URGENT: Please seek immediate professional help or contact emergency services"

	DiagnosisBipolar    = "Possible Bipolar Disorder - Further evaluation recommended"
	DiagnosisMDD        = "Possible Major Depressive Disorder"
	DiagnosisMildDep    = "Mild depressive symptoms"
	DiagnosisPTSD       = "Possible Post-Traumatic Stress Disorder (PTSD)"
	DiagnosisGAD        = "Possible Generalized Anxiety Disorder"
	DiagnosisMildAnx    = "Mild anxiety symptoms"
	DiagnosisOCD        = "Possible Obsessive-Compulsive Disorder (OCD)"
	DiagnosisMildOCD    = "Mild OCD symptoms"
	DiagnosisADHD       = "Possible Attention-Deficit/Hyperactivity Disorder (ADHD)"
	DiagnosisMildADHD   = "Mild attention-related concerns"
	DiagnosisMildPTSD   = "Mild trauma-related symptoms"
	DiagnosisMildMood   = "Mild mood-related concerns"
	DiagnosisSleepCheck = "Sleep disorder screening recommended"
)

type ScreeningResult struct {
	Score     int    `json:"score"`
	Severity  string `json:"severity"`
	Diagnosis string `json:"diagnosis"`
}

// AnalyzeScreening scores a questionnaire keyed by question id. Entries whose
// key or value isn't an integer are skipped, keys are not trimmed. Every parsed answer counts
// towards the score, mapped or not; only mapped ones feed the categories.
func AnalyzeScreening(responses map[string]any) ScreeningResult {
	total := 0
	subtotals := make(map[Category]int)

	for key, raw := range responses {
		q, err := strconv.Atoi(key)
		if err != nil {
			continue
		}

		val, ok := answerValue(raw)
		if !ok {
			continue
		}

		total += val
		if cat, ok := questionCategories[q]; ok {
			subtotals[cat] += val
		}
	}

	res := ScreeningResult{
		Score:    total,
		Severity: severityFor(total),
	}

	if total >= 10 && len(subtotals) > 0 {
		res.Diagnosis = diagnose(primaryCategory(subtotals), subtotals)
	}

	if res.Diagnosis == "" {
		res.Diagnosis = fallbackDiagnosis(total)
	}

	// Any numeric self harm answer counts here, fractions are truncated
	if raw, ok := responses[selfHarmQuestion]; ok {
		if val, ok := truncatedAnswer(raw); ok && val >= 2 {
			res.Severity = SeverityUrgent
			res.Diagnosis = DiagnosisUrgent
		}
	}

	return res
}

func severityFor(total int) string {
	switch {
	case total < 10:
		return SeverityMinimal
	case total < 15:
		return SeverityMild
	case total < 20:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

func fallbackDiagnosis(total int) string {
	switch {
	case total < 10:
		return DiagnosisLowRisk
	case total < 15:
		return DiagnosisMild
	case total < 20:
		return DiagnosisModerate
	default:
		return DiagnosisSevere
	}
}

func primaryCategory(subtotals map[Category]int) Category {
	var primary Category
	best := math.MinInt

	for _, cat := range categoryOrder {
		score, ok := subtotals[cat]
		if ok && score > best {
			primary, best = cat, score
		}
	}

	return primary
}

func diagnose(primary Category, subtotals map[Category]int) string {
	score := subtotals[primary]

	switch primary {
	case CategoryDepression:
		if subtotals[CategoryBipolar] >= 3 {
			return DiagnosisBipolar
		}
		return pick(score >= 6, DiagnosisMDD, DiagnosisMildDep)
	case CategoryAnxiety:
		if subtotals[CategoryPTSD] >= 4 {
			return DiagnosisPTSD
		}
		return pick(score >= 6, DiagnosisGAD, DiagnosisMildAnx)
	case CategoryOCD:
		return pick(score >= 4, DiagnosisOCD, DiagnosisMildOCD)
	case CategoryADHD:
		return pick(score >= 4, DiagnosisADHD, DiagnosisMildADHD)
	case CategoryPTSD:
		return pick(score >= 4, DiagnosisPTSD, DiagnosisMildPTSD)
	case CategoryBipolar:
		return pick(score >= 3, DiagnosisBipolar, DiagnosisMildMood)
	case CategorySleep:
		return DiagnosisSleepCheck
	}

	return ""
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func truncatedAnswer(raw any) (int, bool) {
	var f float64

	switch val := raw.(type) {
	case float64:
		f = val
	case json.Number:
		n, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return answerValue(raw)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

// answerValue accepts whole numbers, as decoded from JSON, and numeric strings
func answerValue(raw any) (int, bool) {
	switch val := raw.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return int(val), true
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	}

	return 0, false
}
