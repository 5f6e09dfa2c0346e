package realtime

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func newChatFixture() (*Hub, *ChatHandlers, *fakeChatStore) {
	h := newTestHub()
	store := newFakeChatStore()
	handlers := NewChatHandlers(h, NewGuard(store), store)
	return h, handlers, store
}

func TestChat_JoinParticipant(t *testing.T) {
	h, chat, store := newChatFixture()
	clientUser := uuid.New()
	roomID := store.addRoom(clientUser, uuid.New(), "Anna", "Boris")

	c := newTestClient(h, clientUser)
	drainEvents(t, c)

	chat.Join(c, rawPayload(t, roomRef{RoomID: roomID}))

	events := drainEvents(t, c)
	if _, ok := findEvent(events, EventChatJoined); !ok {
		t.Error("no chat:joined reply")
	}
	if !c.InChannel(ChatChannel(roomID)) {
		t.Error("client not subscribed to the room channel")
	}
}

func TestChat_JoinStrangerRejected(t *testing.T) {
	h, chat, store := newChatFixture()
	roomID := store.addRoom(uuid.New(), uuid.New(), "Anna", "Boris")

	stranger := newTestClient(h, uuid.New())
	drainEvents(t, stranger)

	chat.Join(stranger, rawPayload(t, roomRef{RoomID: roomID}))

	events := drainEvents(t, stranger)
	if _, ok := findEvent(events, EventError); !ok {
		t.Error("no error event for unauthorized join")
	}
	if _, ok := findEvent(events, EventChatJoined); ok {
		t.Error("stranger received chat:joined")
	}
	if stranger.InChannel(ChatChannel(roomID)) {
		t.Error("stranger was subscribed to the room channel")
	}
}

func TestChat_JoinMissingRoom(t *testing.T) {
	h, chat, _ := newChatFixture()

	c := newTestClient(h, uuid.New())
	drainEvents(t, c)

	chat.Join(c, rawPayload(t, roomRef{RoomID: uuid.New()}))

	if _, ok := findEvent(drainEvents(t, c), EventError); !ok {
		t.Error("no error event for missing room")
	}
}

func TestChat_LeaveIdempotent(t *testing.T) {
	h, chat, store := newChatFixture()
	clientUser := uuid.New()
	roomID := store.addRoom(clientUser, uuid.New(), "Anna", "Boris")

	c := newTestClient(h, clientUser)
	chat.Join(c, rawPayload(t, roomRef{RoomID: roomID}))
	drainEvents(t, c)

	chat.Leave(c, rawPayload(t, roomRef{RoomID: roomID}))
	chat.Leave(c, rawPayload(t, roomRef{RoomID: roomID}))

	if _, ok := findEvent(drainEvents(t, c), EventError); ok {
		t.Error("leave produced an error event")
	}
	if c.InChannel(ChatChannel(roomID)) {
		t.Error("client still in channel after leave")
	}
}

func TestChat_TypingBroadcast(t *testing.T) {
	h, chat, store := newChatFixture()
	clientUser := uuid.New()
	specialistUser := uuid.New()
	roomID := store.addRoom(clientUser, specialistUser, "Anna", "Boris")

	clientConn := newTestClient(h, clientUser)
	specialistConn := newTestClient(h, specialistUser)
	chat.Join(clientConn, rawPayload(t, roomRef{RoomID: roomID}))
	chat.Join(specialistConn, rawPayload(t, roomRef{RoomID: roomID}))
	drainEvents(t, clientConn)
	drainEvents(t, specialistConn)

	chat.Typing(specialistConn, rawPayload(t, typingPayload{RoomID: roomID, IsTyping: true}))

	events := drainEvents(t, clientConn)
	if got := countEvents(events, EventChatTyping); got != 1 {
		t.Fatalf("client got %d chat:typing events, want 1", got)
	}

	ev, _ := findEvent(events, EventChatTyping)
	var payload typingBroadcast
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatalf("failed to unmarshal typing payload: %v", err)
	}
	if !payload.IsTyping {
		t.Error("isTyping = false, want true")
	}
	if payload.UserID != specialistUser {
		t.Errorf("userId = %v, want %v", payload.UserID, specialistUser)
	}
	if payload.UserName != "Boris" {
		t.Errorf("userName = %q, want Boris", payload.UserName)
	}

	// Отправитель своей рассылки не получает
	if got := countEvents(drainEvents(t, specialistConn), EventChatTyping); got != 0 {
		t.Errorf("sender got %d chat:typing events, want 0", got)
	}
}

func TestChat_TypingStrangerSilentlyIgnored(t *testing.T) {
	h, chat, store := newChatFixture()
	clientUser := uuid.New()
	roomID := store.addRoom(clientUser, uuid.New(), "Anna", "Boris")

	clientConn := newTestClient(h, clientUser)
	chat.Join(clientConn, rawPayload(t, roomRef{RoomID: roomID}))
	stranger := newTestClient(h, uuid.New())
	drainEvents(t, clientConn)
	drainEvents(t, stranger)

	chat.Typing(stranger, rawPayload(t, typingPayload{RoomID: roomID, IsTyping: true}))

	if _, ok := findEvent(drainEvents(t, stranger), EventError); ok {
		t.Error("unauthorized typing produced a user-visible error")
	}
	if got := countEvents(drainEvents(t, clientConn), EventChatTyping); got != 0 {
		t.Errorf("room received %d typing events from a stranger, want 0", got)
	}
}

func TestChat_MarkReadBroadcastsReceipt(t *testing.T) {
	h, chat, store := newChatFixture()
	clientUser := uuid.New()
	specialistUser := uuid.New()
	roomID := store.addRoom(clientUser, specialistUser, "Anna", "Boris")
	msgID := store.addMessage(roomID, specialistUser)

	clientConn := newTestClient(h, clientUser)
	specialistConn := newTestClient(h, specialistUser)
	chat.Join(clientConn, rawPayload(t, roomRef{RoomID: roomID}))
	chat.Join(specialistConn, rawPayload(t, roomRef{RoomID: roomID}))
	drainEvents(t, clientConn)
	drainEvents(t, specialistConn)

	chat.MarkRead(clientConn, rawPayload(t, markReadPayload{MessageID: msgID, RoomID: roomID}))

	if msg := store.messages[msgID]; !msg.IsRead || msg.ReadAt == nil {
		t.Error("message was not persisted as read")
	}

	// Квитанция уходит всей комнате, включая автора сообщения
	for name, conn := range map[string]*Client{"reader": clientConn, "sender": specialistConn} {
		events := drainEvents(t, conn)
		ev, ok := findEvent(events, EventChatMessageRead)
		if !ok {
			t.Errorf("%s did not receive chat:message:read", name)
			continue
		}

		var receipt readReceipt
		if err := json.Unmarshal(ev.Data, &receipt); err != nil {
			t.Fatalf("failed to unmarshal receipt: %v", err)
		}
		if receipt.MessageID != msgID || receipt.ReadBy != clientUser {
			t.Errorf("%s got receipt %+v", name, receipt)
		}
	}
}

func TestChat_MarkReadBySenderIsNoOp(t *testing.T) {
	h, chat, store := newChatFixture()
	clientUser := uuid.New()
	specialistUser := uuid.New()
	roomID := store.addRoom(clientUser, specialistUser, "Anna", "Boris")
	msgID := store.addMessage(roomID, specialistUser)

	specialistConn := newTestClient(h, specialistUser)
	chat.Join(specialistConn, rawPayload(t, roomRef{RoomID: roomID}))
	drainEvents(t, specialistConn)

	chat.MarkRead(specialistConn, rawPayload(t, markReadPayload{MessageID: msgID, RoomID: roomID}))

	if store.messages[msgID].IsRead {
		t.Error("sender marked own message as read")
	}
	if len(store.markedIDs) != 0 {
		t.Error("store mutation happened for a self-read")
	}

	events := drainEvents(t, specialistConn)
	if _, ok := findEvent(events, EventChatMessageRead); ok {
		t.Error("self-read produced a broadcast")
	}
	if _, ok := findEvent(events, EventError); ok {
		t.Error("self-read produced an error event")
	}
}

func TestChat_MarkReadWrongRoomIsNoOp(t *testing.T) {
	h, chat, store := newChatFixture()
	clientUser := uuid.New()
	specialistUser := uuid.New()
	roomID := store.addRoom(clientUser, specialistUser, "Anna", "Boris")
	otherRoomID := store.addRoom(clientUser, specialistUser, "Anna", "Boris")
	msgID := store.addMessage(otherRoomID, specialistUser)

	clientConn := newTestClient(h, clientUser)
	drainEvents(t, clientConn)

	chat.MarkRead(clientConn, rawPayload(t, markReadPayload{MessageID: msgID, RoomID: roomID}))

	if store.messages[msgID].IsRead {
		t.Error("message in another room was marked read")
	}
}
