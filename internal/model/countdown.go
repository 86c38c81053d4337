// internal/model/countdown.go
package model

// CountdownSnapshot is derived on each query from a trial's end date and
// the current time; it is never stored.
type CountdownSnapshot struct {
	TotalSeconds     int64        `json:"total_seconds"`
	DaysRemaining    int          `json:"days_remaining"`
	HoursRemaining   int          `json:"hours_remaining"`
	MinutesRemaining int          `json:"minutes_remaining"`
	UrgencyLevel     UrgencyLevel `json:"urgency_level"`
	CampaignsSent    []string     `json:"campaigns_sent"`
}
