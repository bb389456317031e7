package dto

import "time"

// GenerateReportRequest captures POST /monitoring/reports payload.
type GenerateReportRequest struct {
	StudentID   string `json:"studentId" validate:"required"`
	CurrentWeek int    `json:"currentWeek" validate:"required,min=1"`
}

// AgentStatusResponse exposes the active flag of each monitoring agent.
type AgentStatusResponse struct {
	Agents map[string]bool `json:"agents"`
}

// ToggleAgentResponse reports an agent's state after a toggle.
type ToggleAgentResponse struct {
	Agent  string `json:"agent"`
	Active bool   `json:"active"`
}

// ExportResponse points at a generated export artifact behind a signed
// download URL.
type ExportResponse struct {
	FileName  string    `json:"fileName"`
	Format    string    `json:"format"`
	SizeBytes int64     `json:"sizeBytes"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
