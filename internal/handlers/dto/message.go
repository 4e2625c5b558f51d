package dto

// SendMessageRequest — тело отправки сообщения. Пустой или пробельный
// текст отклоняет сервис, поэтому здесь только required.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateMessageRequest — тело правки. Текст опционален: без него
// сообщение остается прежним, но событие messageUpdated все равно уходит.
type UpdateMessageRequest struct {
	Content string `json:"content"`
}
