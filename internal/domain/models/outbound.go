package models

// OutboundMessageRequest represents a message to push through WhatsApp.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

// ShareReportRequest asks for the PNL digest of a date range to be sent to a
// WhatsApp recipient. Empty dates share the unfiltered report.
type ShareReportRequest struct {
	To        string `json:"to" binding:"required"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
