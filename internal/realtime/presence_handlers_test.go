package realtime

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func newPresenceFixture() (*Hub, *PresenceHandlers) {
	h := newTestHub()
	return h, NewPresenceHandlers(h, h.presence)
}

func TestPresence_UpdateStatusBroadcasts(t *testing.T) {
	h, pres := newPresenceFixture()
	c := newTestClient(h, uuid.New())
	observer := newTestClient(h, uuid.New())
	drainEvents(t, c)
	drainEvents(t, observer)

	pres.UpdateStatus(c, rawPayload(t, statusPayload{Status: StatusAway}))

	rec, _ := h.presence.Get(c.UserID)
	if rec.Status != StatusAway {
		t.Errorf("Status = %v, want away", rec.Status)
	}

	ev, ok := findEvent(drainEvents(t, observer), EventUserStatus)
	if !ok {
		t.Fatal("observer did not receive user:status")
	}

	var payload StatusBroadcast
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatalf("failed to unmarshal status broadcast: %v", err)
	}
	if payload.UserID != c.UserID || payload.Status != StatusAway {
		t.Errorf("broadcast = %+v", payload)
	}

	// Сам отправитель рассылку не получает
	if _, ok := findEvent(drainEvents(t, c), EventUserStatus); ok {
		t.Error("sender received its own status broadcast")
	}
}

func TestPresence_UpdateStatusRejectsOffline(t *testing.T) {
	h, pres := newPresenceFixture()
	c := newTestClient(h, uuid.New())
	drainEvents(t, c)

	pres.UpdateStatus(c, rawPayload(t, statusPayload{Status: StatusOffline}))

	if _, ok := findEvent(drainEvents(t, c), EventError); !ok {
		t.Error("offline status was accepted via presence:update")
	}

	rec, _ := h.presence.Get(c.UserID)
	if rec.Status != StatusOnline {
		t.Errorf("Status = %v, want online untouched", rec.Status)
	}
}

func TestPresence_GetUserAfterStatusChange(t *testing.T) {
	h, pres := newPresenceFixture()
	c := newTestClient(h, uuid.New())
	other := newTestClient(h, uuid.New())
	pres.UpdateStatus(c, rawPayload(t, statusPayload{Status: StatusAway}))
	drainEvents(t, other)

	pres.GetUser(other, rawPayload(t, userRef{UserID: c.UserID}))

	ev, ok := findEvent(drainEvents(t, other), EventPresenceUserStatus)
	if !ok {
		t.Fatal("no presence:user-status reply")
	}

	var reply userStatusReply
	if err := json.Unmarshal(ev.Data, &reply); err != nil {
		t.Fatalf("failed to unmarshal reply: %v", err)
	}
	if reply.Status != StatusAway {
		t.Errorf("status = %v, want away", reply.Status)
	}
	if reply.LastSeen == nil {
		t.Error("lastSeen is nil for a known user")
	}
}

func TestPresence_GetUserNeverConnected(t *testing.T) {
	h, pres := newPresenceFixture()
	c := newTestClient(h, uuid.New())
	drainEvents(t, c)

	pres.GetUser(c, rawPayload(t, userRef{UserID: uuid.New()}))

	ev, ok := findEvent(drainEvents(t, c), EventPresenceUserStatus)
	if !ok {
		t.Fatal("no presence:user-status reply")
	}

	var reply userStatusReply
	if err := json.Unmarshal(ev.Data, &reply); err != nil {
		t.Fatalf("failed to unmarshal reply: %v", err)
	}
	if reply.Status != StatusOffline {
		t.Errorf("status = %v, want offline", reply.Status)
	}
	if reply.LastSeen != nil {
		t.Error("lastSeen must be null for a user that never connected")
	}
}

func TestPresence_JoinChatBroadcasts(t *testing.T) {
	h, pres := newPresenceFixture()
	roomID := uuid.New()

	viewer := newTestClient(h, uuid.New())
	pres.JoinChat(viewer, rawPayload(t, roomRef{RoomID: roomID}))
	drainEvents(t, viewer)

	joiner := newTestClient(h, uuid.New())
	drainEvents(t, joiner)
	pres.JoinChat(joiner, rawPayload(t, roomRef{RoomID: roomID}))

	if _, ok := findEvent(drainEvents(t, viewer), EventPresenceUserJoined); !ok {
		t.Error("viewer did not receive presence:user-joined")
	}

	pres.LeaveChat(joiner, rawPayload(t, roomRef{RoomID: roomID}))

	if _, ok := findEvent(drainEvents(t, viewer), EventPresenceUserLeft); !ok {
		t.Error("viewer did not receive presence:user-left")
	}
	if joiner.InChannel(PresenceChannel(roomID)) {
		t.Error("joiner still in presence channel after leave")
	}
}
