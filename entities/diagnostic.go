package entities

import "time"

// Severity levels the model is allowed to return.
const (
	SeverityLow    = "LOW"
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"
)

// Coarse crop health classification.
const (
	StatusHealthy  = "HEALTHY"
	StatusDiseased = "DISEASED"
	StatusAtRisk   = "AT_RISK"
	StatusUnknown  = "UNKNOWN"
)

// Diagnostic is the stored outcome of one image analysis. Rows are created
// once on a successful parse and never updated; only owner-initiated deletion
// removes them.
type Diagnostic struct {
	DiagID     uint   `gorm:"primaryKey" json:"diag_id"`
	FarmID     uint   `gorm:"index" json:"farm_id"`
	ImageURL   string `json:"image_url"`
	Disease    string `json:"disease"`
	Confidence int    `json:"confidence"` // 0-100
	Severity   string `json:"severity"`   // LOW|MEDIUM|HIGH
	Status     string `json:"status"`     // HEALTHY|DISEASED|AT_RISK|UNKNOWN

	Crop       string `json:"crop"`
	Treatment  string `json:"treatment"`
	Prevention string `json:"prevention"`

	ModelVersion string    `json:"model_version"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
