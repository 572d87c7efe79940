package models

// StatusResponse is the generic acknowledgement body used by the password
// endpoints: {"success": true, "message": "..."}.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
