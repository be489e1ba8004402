package dto

type SendMessageReq struct {
	ReceiverID string `json:"receiverId" validate:"required,max=128"`
	Text       string `json:"text"       validate:"required,max=5000"`
}
