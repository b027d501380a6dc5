package transfer

type PostCreation struct {
	Caption       string
	ScheduledTime string
}

type GenerateRequest struct {
	ContentType string `json:"content_type"`
	TemplateID  int64  `json:"template_id"`
}

type TemplateCreation struct {
	Name        string `json:"name"`
	Prompt      string `json:"prompt"`
	ContentType string `json:"content_type"`
	Active      *bool  `json:"active"`
}

type AccountCreation struct {
	AccountName     string `json:"account_name"`
	InstagramUserID string `json:"instagram_user_id"`
	AccessToken     string `json:"access_token"`
	ExpiresInDays   int    `json:"expires_in_days"`
}
