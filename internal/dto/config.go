package dto

// ConfigResponse echoes the non-secret parts of the deployment
// configuration for the frontend.
type ConfigResponse struct {
	PaperlessBaseURL         string  `json:"paperless_base_url"`
	ProjectName              string  `json:"project_name"`
	ProjectTagName           string  `json:"project_tag_name"`
	DefaultCurrency          string  `json:"default_currency"`
	ReviewThreshold          float64 `json:"review_threshold"`
	SchedulerEnabled         bool    `json:"scheduler_enabled"`
	SchedulerIntervalMinutes int     `json:"scheduler_interval_minutes"`
	SchedulerRunOnStartup    bool    `json:"scheduler_run_on_startup"`
}
