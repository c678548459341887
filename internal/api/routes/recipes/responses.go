package recipes

type MessageResponse struct {
	Message string `json:"message"`
}
