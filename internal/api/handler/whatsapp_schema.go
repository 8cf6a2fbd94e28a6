package handler

type statusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Connected     bool   `json:"connected"`
	QRCode        string `json:"qrCode,omitempty"`
}

type sendDirectRequest struct {
	To      string `json:"to"      validate:"required"`
	Message string `json:"message" validate:"required"`
}

type sendDirectResponse struct {
	MessageID string `json:"messageId"`
	ContactID string `json:"contactId"`
}

type sendBulkRequest struct {
	Contacts []string `json:"contacts" validate:"required,min=1,dive,required"`
	Message  string   `json:"message"  validate:"required"`
}

type bulkItem struct {
	ContactID string `json:"contactId"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type sendBulkResponse struct {
	BatchID     string     `json:"batchId"`
	TotalSent   int        `json:"totalSent"`
	TotalFailed int        `json:"totalFailed"`
	Results     []bulkItem `json:"results"`
	Errors      []bulkItem `json:"errors"`
}
