package realtime

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGuard_ChatRoomAccess(t *testing.T) {
	store := newFakeChatStore()
	clientUser := uuid.New()
	specialistUser := uuid.New()
	roomID := store.addRoom(clientUser, specialistUser, "Anna", "Boris")

	guard := NewGuard(store)

	if _, err := guard.ChatRoomAccess(clientUser, roomID); err != nil {
		t.Errorf("client access error = %v, want nil", err)
	}
	if _, err := guard.ChatRoomAccess(specialistUser, roomID); err != nil {
		t.Errorf("specialist access error = %v, want nil", err)
	}

	if _, err := guard.ChatRoomAccess(uuid.New(), roomID); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("stranger access error = %v, want ErrNotParticipant", err)
	}

	if _, err := guard.ChatRoomAccess(clientUser, uuid.New()); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("missing room error = %v, want ErrRoomNotFound", err)
	}
}

func TestGuard_CanJoinChatRoom(t *testing.T) {
	store := newFakeChatStore()
	clientUser := uuid.New()
	specialistUser := uuid.New()
	roomID := store.addRoom(clientUser, specialistUser, "Anna", "Boris")

	guard := NewGuard(store)

	cases := []struct {
		name   string
		userID uuid.UUID
		roomID uuid.UUID
		want   bool
	}{
		{"client", clientUser, roomID, true},
		{"specialist", specialistUser, roomID, true},
		{"stranger", uuid.New(), roomID, false},
		{"missing room", clientUser, uuid.New(), false},
	}

	for _, tc := range cases {
		got, err := guard.CanJoinChatRoom(tc.userID, tc.roomID)
		if err != nil {
			t.Errorf("%s: error = %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: CanJoinChatRoom() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestGuard_CanJoinNotificationChannel(t *testing.T) {
	guard := NewGuard(newFakeChatStore())
	userID := uuid.New()

	if !guard.CanJoinNotificationChannel(userID, userID) {
		t.Error("own channel must be joinable")
	}
	if guard.CanJoinNotificationChannel(userID, uuid.New()) {
		t.Error("foreign channel must not be joinable")
	}
}
