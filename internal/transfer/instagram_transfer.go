package transfer

// GraphAPIResult is the response shape shared by the media, media_publish and
// oauth endpoints of the Graph API: either an object id / token or an error
// envelope.
type GraphAPIResult struct {
	ID          string `json:"id"`
	AccessToken string `json:"access_token"`
	StatusCode  string `json:"status_code"`
	Error       struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FbtraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

type PublishResult struct {
	Success     bool   `json:"success"`
	InstagramID string `json:"instagram_id,omitempty"`
	Error       string `json:"error,omitempty"`
	Message     string `json:"message,omitempty"`
}
