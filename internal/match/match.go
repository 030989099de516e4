// Package match implements the three-way verification of a submitted document
// against its order and the approved master standard for its product. The
// engine performs no I/O; identical inputs always produce identical results.
package match

import (
	"strings"

	"github.com/jmallard/countersign/internal/documents"
	"github.com/jmallard/countersign/internal/evidence"
)

// Result labels a comparison outcome. NoStandard marks the absence of an
// APPROVED master standard for the pair, which is never reported as a pass.
type Result string

const (
	ResultPass       Result = "PASS"
	ResultFail       Result = "FAIL"
	ResultNoStandard Result = "NO_STANDARD"
)

// RiskTier is the traffic-light classification of the extractor's confidence.
type RiskTier string

const (
	RiskLow    RiskTier = "LOW_RISK"
	RiskMedium RiskTier = "MEDIUM_RISK"
	RiskHigh   RiskTier = "HIGH_RISK"
)

// Field is a single expected-vs-observed value pair within a comparison.
type Field struct {
	Name     string `json:"name"`
	Expected string `json:"expected"`
	Observed string `json:"observed"`
	Match    bool   `json:"match"`
}

// Comparison is one leg of the three-way match.
type Comparison struct {
	Label  string  `json:"label"`
	Fields []Field `json:"fields"`
	Result Result  `json:"result"`
}

// Summary is the full three-way match outcome for a document.
type Summary struct {
	OrderMatch    Comparison `json:"order_match"`
	StandardMatch Comparison `json:"standard_match"`
	QualityScore  float64    `json:"quality_score"`
	Risk          RiskTier   `json:"risk"`
	Warning       string     `json:"warning,omitempty"`
}

// Evaluate compares the document's extracted values against its order and the
// approved master standard. A nil standard marks the standard comparison
// NO_STANDARD. Which fields apply is selected by document type: packing lists
// compare quantity and packaging; every other type compares batch and purity.
func Evaluate(doc documents.Document, order evidence.Order, standard *evidence.MasterStandard) Summary {
	extracted := doc.AIInsights.Extracted

	var fields []Field
	if doc.DocType.PackingList() {
		fields = []Field{
			compareField("quantity", order.Quantity, extracted.Quantity),
			compareField("packaging", order.PackagingReq, extracted.Packaging),
		}
	} else {
		fields = []Field{
			compareField("batch", order.Batch, extracted.Batch),
			compareField("purity", order.QualityReq, extracted.Purity),
		}
	}

	return Summary{
		OrderMatch: Comparison{
			Label:  "order-vs-evidence",
			Fields: fields,
			Result: resultOf(fields),
		},
		StandardMatch: compareStandard(standard, fields),
		QualityScore:  doc.AIInsights.QualityScore,
		Risk:          ClassifyRisk(doc.AIInsights.QualityScore),
		Warning:       warningOf(doc.AIInsights.Flag),
	}
}

// ClassifyRisk buckets an extraction quality score into a risk tier.
func ClassifyRisk(score float64) RiskTier {
	switch {
	case score >= 90:
		return RiskLow
	case score >= 70:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func compareField(name, expected string, observed *string) Field {
	f := Field{
		Name:     name,
		Expected: expected,
	}
	if observed != nil {
		f.Observed = *observed
	}
	f.Match = f.Observed != "" && canonical(f.Expected) == canonical(f.Observed)
	return f
}

// compareStandard checks each observed value against the standard's stated
// requirement text. The requirement is free text, so containment of the
// canonical value is the match criterion.
func compareStandard(standard *evidence.MasterStandard, observed []Field) Comparison {
	c := Comparison{Label: "standard-vs-evidence"}

	if standard == nil {
		c.Result = ResultNoStandard
		return c
	}

	requirement := canonical(standard.Requirement)
	c.Fields = make([]Field, len(observed))
	for i, f := range observed {
		sf := Field{
			Name:     f.Name,
			Expected: standard.Requirement,
			Observed: f.Observed,
		}
		sf.Match = sf.Observed != "" && strings.Contains(requirement, canonical(sf.Observed))
		c.Fields[i] = sf
	}

	c.Result = resultOf(c.Fields)
	return c
}

func resultOf(fields []Field) Result {
	for _, f := range fields {
		if !f.Match {
			return ResultFail
		}
	}
	return ResultPass
}

func warningOf(flag *string) string {
	if flag == nil {
		return ""
	}
	return *flag
}

func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
