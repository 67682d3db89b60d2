package ai

import (
	"encoding/json"
	"strings"

	"cropdoc/entities"
	"cropdoc/pkg/errs"
)

// Diagnosis is the validated, typed payload recovered from raw model text.
type Diagnosis struct {
	Disease    string
	Confidence int
	Severity   string
	Crop       string
	Status     string
	Treatment  string
	Prevention string
}

var statusLookup = map[string]string{
	"HEALTHY":  entities.StatusHealthy,
	"DISEASED": entities.StatusDiseased,
	"AT_RISK":  entities.StatusAtRisk,
	"UNKNOWN":  entities.StatusUnknown,
}

var severityLookup = map[string]string{
	"LOW":    entities.SeverityLow,
	"MEDIUM": entities.SeverityMedium,
	"HIGH":   entities.SeverityHigh,
}

// ParseDiagnosis turns unreliable model text into a Diagnosis. Code fences are
// stripped, the JSON must parse strictly and carry every required key, and on
// any failure the raw text is returned inside the error so operators can see
// what the model actually said. Out-of-set status values map to UNKNOWN rather
// than failing, so minor model drift never breaks the pipeline.
func ParseDiagnosis(raw string) (Diagnosis, error) {
	text := stripFences(raw)

	var p struct {
		Disease    *string  `json:"disease"`
		Confidence *float64 `json:"confidence"`
		Severity   *string  `json:"severity"`
		Crop       *string  `json:"crop"`
		Status     *string  `json:"status"`
		Treatment  *string  `json:"treatment"`
		Prevention *string  `json:"prevention"`
	}
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return Diagnosis{}, errs.ParseFailure("model output is not valid JSON", raw)
	}

	missing := ""
	switch {
	case p.Disease == nil:
		missing = "disease"
	case p.Confidence == nil:
		missing = "confidence"
	case p.Severity == nil:
		missing = "severity"
	case p.Crop == nil:
		missing = "crop"
	case p.Status == nil:
		missing = "status"
	case p.Treatment == nil:
		missing = "treatment"
	case p.Prevention == nil:
		missing = "prevention"
	}
	if missing != "" {
		return Diagnosis{}, errs.ParseFailure("model output missing required field "+missing, raw)
	}

	status, ok := statusLookup[strings.ToUpper(strings.TrimSpace(*p.Status))]
	if !ok {
		status = entities.StatusUnknown
	}
	severity, ok := severityLookup[strings.ToUpper(strings.TrimSpace(*p.Severity))]
	if !ok {
		severity = entities.SeverityLow
	}

	return Diagnosis{
		Disease:    strings.TrimSpace(*p.Disease),
		Confidence: clampConfidence(*p.Confidence),
		Severity:   severity,
		Crop:       strings.TrimSpace(*p.Crop),
		Status:     status,
		Treatment:  strings.TrimSpace(*p.Treatment),
		Prevention: strings.TrimSpace(*p.Prevention),
	}, nil
}

func clampConfidence(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}

// stripFences removes leading/trailing markdown code fences (``` or ```json)
// that chat-tuned models like to wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
