package match_test

import (
	"reflect"
	"testing"

	"github.com/jmallard/countersign/internal/documents"
	"github.com/jmallard/countersign/internal/evidence"
	"github.com/jmallard/countersign/internal/match"
)

func strptr(s string) *string { return &s }

func packingListDoc(score float64) documents.Document {
	return documents.Document{
		DocType: documents.DocTypePackingList,
		AIInsights: documents.AIInsights{
			QualityScore: score,
			Extracted: documents.Extraction{
				Quantity:  strptr("500 units"),
				Packaging: strptr("blister pack"),
			},
		},
	}
}

func certificateDoc(score float64) documents.Document {
	return documents.Document{
		DocType: documents.DocTypeQualityCertificate,
		AIInsights: documents.AIInsights{
			QualityScore: score,
			Extracted: documents.Extraction{
				Batch:  strptr("B-2041"),
				Purity: strptr("99.8%"),
			},
		},
	}
}

func matchingOrder() evidence.Order {
	return evidence.Order{
		ID:           "ord-1",
		OrderNumber:  "PO-1001",
		Quantity:     "500 units",
		Batch:        "B-2041",
		PackagingReq: "blister pack",
		QualityReq:   "99.8%",
	}
}

func TestEvaluateFieldSelectionByDocType(t *testing.T) {
	order := matchingOrder()

	tests := []struct {
		name       string
		doc        documents.Document
		wantFields []string
	}{
		{
			name:       "packing list compares quantity and packaging",
			doc:        packingListDoc(95),
			wantFields: []string{"quantity", "packaging"},
		},
		{
			name:       "quality certificate compares batch and purity",
			doc:        certificateDoc(95),
			wantFields: []string{"batch", "purity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := match.Evaluate(tt.doc, order, nil)

			var got []string
			for _, f := range summary.OrderMatch.Fields {
				got = append(got, f.Name)
			}
			if !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
			if summary.OrderMatch.Result != match.ResultPass {
				t.Errorf("result = %s, want PASS", summary.OrderMatch.Result)
			}
		})
	}
}

func TestEvaluateDocTypeSpellingVariants(t *testing.T) {
	order := matchingOrder()

	variants := []documents.DocType{
		"Packing List",
		"PACKING-LIST",
		"vendor packing slip",
	}

	for _, dt := range variants {
		t.Run(string(dt), func(t *testing.T) {
			doc := packingListDoc(95)
			doc.DocType = dt

			summary := match.Evaluate(doc, order, nil)

			var got []string
			for _, f := range summary.OrderMatch.Fields {
				got = append(got, f.Name)
			}
			if !reflect.DeepEqual(got, []string{"quantity", "packaging"}) {
				t.Errorf("fields = %v, want quantity and packaging", got)
			}
			if summary.OrderMatch.Result != match.ResultPass {
				t.Errorf("result = %s, want PASS", summary.OrderMatch.Result)
			}
		})
	}
}

func TestEvaluateOrderMismatch(t *testing.T) {
	order := matchingOrder()
	order.Quantity = "600 units"

	summary := match.Evaluate(packingListDoc(95), order, nil)

	if summary.OrderMatch.Result != match.ResultFail {
		t.Errorf("result = %s, want FAIL", summary.OrderMatch.Result)
	}
	if summary.OrderMatch.Fields[0].Match {
		t.Error("quantity field should not match")
	}
	if !summary.OrderMatch.Fields[1].Match {
		t.Error("packaging field should match")
	}
}

func TestEvaluateMissingExtractedValueFails(t *testing.T) {
	doc := packingListDoc(95)
	doc.AIInsights.Extracted.Quantity = nil

	summary := match.Evaluate(doc, matchingOrder(), nil)

	if summary.OrderMatch.Result != match.ResultFail {
		t.Errorf("result = %s, want FAIL for absent observed value", summary.OrderMatch.Result)
	}
}

func TestEvaluateNoStandard(t *testing.T) {
	summary := match.Evaluate(packingListDoc(95), matchingOrder(), nil)

	if summary.StandardMatch.Result != match.ResultNoStandard {
		t.Errorf("standard result = %s, want NO_STANDARD", summary.StandardMatch.Result)
	}
	if len(summary.StandardMatch.Fields) != 0 {
		t.Errorf("standard fields = %d, want none", len(summary.StandardMatch.Fields))
	}
}

func TestEvaluateStandardComparison(t *testing.T) {
	standard := &evidence.MasterStandard{
		Title:       "Packing Standard v3",
		Requirement: "Ship 500 units in blister pack configuration",
		Status:      evidence.StandardApproved,
	}

	summary := match.Evaluate(packingListDoc(95), matchingOrder(), standard)

	if summary.StandardMatch.Result != match.ResultPass {
		t.Errorf("standard result = %s, want PASS", summary.StandardMatch.Result)
	}

	standard.Requirement = "Ship 600 units in shrink wrap"
	summary = match.Evaluate(packingListDoc(95), matchingOrder(), standard)

	if summary.StandardMatch.Result != match.ResultFail {
		t.Errorf("standard result = %s, want FAIL", summary.StandardMatch.Result)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	doc := certificateDoc(82)
	order := matchingOrder()
	standard := &evidence.MasterStandard{
		Requirement: "Batch B-2041 purity 99.8%",
		Status:      evidence.StandardApproved,
	}

	first := match.Evaluate(doc, order, standard)
	second := match.Evaluate(doc, order, standard)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different summaries")
	}
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		score float64
		want  match.RiskTier
	}{
		{100, match.RiskLow},
		{90, match.RiskLow},
		{89.9, match.RiskMedium},
		{70, match.RiskMedium},
		{69.9, match.RiskHigh},
		{0, match.RiskHigh},
	}

	for _, tt := range tests {
		if got := match.ClassifyRisk(tt.score); got != tt.want {
			t.Errorf("ClassifyRisk(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestEvaluateWarningSurfacedVerbatim(t *testing.T) {
	doc := packingListDoc(55)
	doc.AIInsights.Flag = strptr("Signature region illegible")

	summary := match.Evaluate(doc, matchingOrder(), nil)

	if summary.Warning != "Signature region illegible" {
		t.Errorf("warning = %q, want verbatim flag", summary.Warning)
	}
	if summary.Risk != match.RiskHigh {
		t.Errorf("risk = %s, want HIGH_RISK", summary.Risk)
	}
}
