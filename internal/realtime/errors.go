package realtime

import "errors"

var (
	// Ошибки рукопожатия — соединение отклоняется до регистрации
	ErrNoCredential      = errors.New("no credential provided")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrExpiredCredential = errors.New("credential expired")

	// Ошибки событий
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrInvalidPayload  = errors.New("invalid event payload")
	ErrRoomNotFound    = errors.New("room not found")
	ErrNotParticipant  = errors.New("user is not a participant of the room")
)
