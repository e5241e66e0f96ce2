package notification

type listInput struct{}

type listOutput struct {
	Body listResponse
}

type notificationJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

type listResponse struct {
	Success       bool               `json:"success"`
	Notifications []notificationJSON `json:"notifications"`
	Unread        int                `json:"unread"`
}

type readInput struct {
	ID string `path:"id" example:"1" doc:"ID уведомления"`
}

type readOutput struct {
	Body readResponse
}

type readResponse struct {
	Success bool `json:"success"`
	Unread  int  `json:"unread"`
}
