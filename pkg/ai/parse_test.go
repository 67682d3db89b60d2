package ai

import (
	"errors"
	"strings"
	"testing"

	"cropdoc/pkg/errs"
)

const wellFormed = `{"disease":"Late Blight","confidence":88,"severity":"HIGH","crop":"Tomato","status":"DISEASED","treatment":"Apply copper-based fungicide, 2g/L, every 7 days","prevention":"Rotate crops, avoid overhead irrigation"}`

func TestParseDiagnosisWellFormed(t *testing.T) {
	d, err := ParseDiagnosis(wellFormed)
	if err != nil {
		t.Fatalf("ParseDiagnosis: %v", err)
	}
	if d.Disease != "Late Blight" || d.Confidence != 88 || d.Severity != "HIGH" || d.Status != "DISEASED" {
		t.Fatalf("unexpected payload: %+v", d)
	}
	if d.Crop != "Tomato" || !strings.Contains(d.Treatment, "copper") {
		t.Fatalf("extended attributes lost: %+v", d)
	}
}

func TestParseDiagnosisStripsFences(t *testing.T) {
	for _, raw := range []string{
		"```json\n" + wellFormed + "\n```",
		"```\n" + wellFormed + "\n```",
		"  \n" + wellFormed + "  \n",
	} {
		d, err := ParseDiagnosis(raw)
		if err != nil {
			t.Fatalf("ParseDiagnosis(%q): %v", raw[:20], err)
		}
		if d.Disease != "Late Blight" {
			t.Fatalf("disease = %s", d.Disease)
		}
	}
}

func TestParseDiagnosisNonJSON(t *testing.T) {
	raw := "I'm sorry, I can't analyze this image."
	_, err := ParseDiagnosis(raw)
	var ae *errs.AppError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if ae.Code != errs.CodeAIParseFailure || ae.Status != 502 {
		t.Fatalf("code=%s status=%d", ae.Code, ae.Status)
	}
	if ae.Raw != raw {
		t.Fatalf("raw text not preserved: %q", ae.Raw)
	}
}

func TestParseDiagnosisMissingKey(t *testing.T) {
	cases := map[string]string{
		"disease":    `{"confidence":50,"severity":"LOW","crop":"Rice","status":"HEALTHY","treatment":"x","prevention":"y"}`,
		"confidence": `{"disease":"Blast","severity":"LOW","crop":"Rice","status":"HEALTHY","treatment":"x","prevention":"y"}`,
		"prevention": `{"disease":"Blast","confidence":50,"severity":"LOW","crop":"Rice","status":"HEALTHY","treatment":"x"}`,
	}
	for field, raw := range cases {
		_, err := ParseDiagnosis(raw)
		var ae *errs.AppError
		if !errors.As(err, &ae) {
			t.Fatalf("%s: expected AppError, got %v", field, err)
		}
		if ae.Code != errs.CodeAIParseFailure {
			t.Fatalf("%s: code = %s", field, ae.Code)
		}
		if !strings.Contains(ae.Message, field) {
			t.Fatalf("%s: message %q does not name the field", field, ae.Message)
		}
	}
}

func TestParseDiagnosisLenientEnums(t *testing.T) {
	raw := `{"disease":"Rust","confidence":70,"severity":"catastrophic","crop":"Wheat","status":"kind_of_sick","treatment":"x","prevention":"y"}`
	d, err := ParseDiagnosis(raw)
	if err != nil {
		t.Fatalf("ParseDiagnosis: %v", err)
	}
	if d.Status != "UNKNOWN" {
		t.Fatalf("status = %s, want UNKNOWN", d.Status)
	}
	if d.Severity != "LOW" {
		t.Fatalf("severity = %s, want LOW", d.Severity)
	}

	// lowercase members of the known sets still map onto them
	raw2 := `{"disease":"Rust","confidence":70,"severity":"high","crop":"Wheat","status":"at_risk","treatment":"x","prevention":"y"}`
	d2, err := ParseDiagnosis(raw2)
	if err != nil {
		t.Fatalf("ParseDiagnosis: %v", err)
	}
	if d2.Status != "AT_RISK" || d2.Severity != "HIGH" {
		t.Fatalf("got %s/%s", d2.Status, d2.Severity)
	}
}

func TestParseDiagnosisClampsConfidence(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int
	}{
		{"150", 100},
		{"-5", 0},
		{"88.9", 88},
		{"0", 0},
	} {
		raw := `{"disease":"Rust","confidence":` + tc.in + `,"severity":"LOW","crop":"Wheat","status":"HEALTHY","treatment":"x","prevention":"y"}`
		d, err := ParseDiagnosis(raw)
		if err != nil {
			t.Fatalf("ParseDiagnosis(%s): %v", tc.in, err)
		}
		if d.Confidence != tc.want {
			t.Fatalf("confidence(%s) = %d, want %d", tc.in, d.Confidence, tc.want)
		}
	}
}

func TestParseDiagnosisNotACropFallback(t *testing.T) {
	raw := `{"disease":"Not a crop image","confidence":0,"severity":"LOW","crop":"Unknown","status":"UNKNOWN","treatment":"N/A","prevention":"N/A"}`
	d, err := ParseDiagnosis(raw)
	if err != nil {
		t.Fatalf("fallback payload must parse: %v", err)
	}
	if d.Disease != "Not a crop image" || d.Confidence != 0 || d.Status != "UNKNOWN" {
		t.Fatalf("unexpected fallback: %+v", d)
	}
}
