package chat

import "strings"

// RoomKey строит канонический ключ комнаты для пары участников.
// Порядок аргументов не влияет на результат.
func RoomKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}

// EventChannel строит ключ канала уведомлений: получатель-отправитель.
// Схема отличается от RoomKey (без сортировки), клиенты подписываются
// именно на такие каналы.
func EventChannel(recipient, sender string) string {
	return recipient + "-" + sender
}

// trimmed возвращает текст без краевых пробелов.
func trimmed(content string) string {
	return strings.TrimSpace(content)
}
