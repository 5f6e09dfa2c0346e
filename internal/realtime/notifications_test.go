package realtime

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func newNotificationFixture() (*Hub, *NotificationHandlers, *fakeNotificationStore) {
	h := newTestHub()
	store := newFakeNotificationStore()
	return h, NewNotificationHandlers(h, store), store
}

func TestNotifications_SubscribeIdempotent(t *testing.T) {
	h, notif, _ := newNotificationFixture()
	c := newTestClient(h, uuid.New())
	drainEvents(t, c)

	notif.Subscribe(c)
	notif.Subscribe(c)

	if !c.InChannel(NotificationsChannel(c.UserID)) {
		t.Error("client not subscribed to notifications channel")
	}
	if _, ok := findEvent(drainEvents(t, c), EventError); ok {
		t.Error("subscribe produced an error event")
	}

	notif.Unsubscribe(c)
	if c.InChannel(NotificationsChannel(c.UserID)) {
		t.Error("client still subscribed after unsubscribe")
	}
}

func TestNotifications_MarkReadOwnNotification(t *testing.T) {
	h, notif, store := newNotificationFixture()
	c := newTestClient(h, uuid.New())
	notifID := store.add(c.UserID)
	drainEvents(t, c)

	notif.MarkRead(c, rawPayload(t, notificationRef{NotificationID: notifID}))

	if store.notifications[notifID].ReadAt == nil {
		t.Error("notification was not marked read")
	}

	ev, ok := findEvent(drainEvents(t, c), EventNotificationsRead)
	if !ok {
		t.Fatal("no notifications:read confirmation")
	}

	var ref notificationRef
	if err := json.Unmarshal(ev.Data, &ref); err != nil {
		t.Fatalf("failed to unmarshal confirmation: %v", err)
	}
	if ref.NotificationID != notifID {
		t.Errorf("confirmed id = %v, want %v", ref.NotificationID, notifID)
	}
}

func TestNotifications_MarkReadForeignNotification(t *testing.T) {
	h, notif, store := newNotificationFixture()
	c := newTestClient(h, uuid.New())
	foreignID := store.add(uuid.New())
	drainEvents(t, c)

	notif.MarkRead(c, rawPayload(t, notificationRef{NotificationID: foreignID}))

	if store.notifications[foreignID].ReadAt != nil {
		t.Error("foreign notification was mutated")
	}
	if _, ok := findEvent(drainEvents(t, c), EventError); !ok {
		t.Error("no error event for foreign notification")
	}
}

func TestNotifications_MarkReadMissing(t *testing.T) {
	h, notif, _ := newNotificationFixture()
	c := newTestClient(h, uuid.New())
	drainEvents(t, c)

	notif.MarkRead(c, rawPayload(t, notificationRef{NotificationID: uuid.New()}))

	if _, ok := findEvent(drainEvents(t, c), EventError); !ok {
		t.Error("no error event for missing notification")
	}
}

func TestNotifications_MarkAllReadThenZeroUnread(t *testing.T) {
	h, notif, store := newNotificationFixture()
	c := newTestClient(h, uuid.New())
	store.add(c.UserID)
	store.add(c.UserID)
	store.add(c.UserID)
	foreign := store.add(uuid.New())
	drainEvents(t, c)

	notif.MarkAllRead(c)

	if _, ok := findEvent(drainEvents(t, c), EventNotificationsAllRead); !ok {
		t.Error("no notifications:all-read confirmation")
	}
	if store.notifications[foreign].ReadAt != nil {
		t.Error("mark-all-read touched another user's notification")
	}

	notif.GetUnreadCount(c)

	ev, ok := findEvent(drainEvents(t, c), EventNotificationsCount)
	if !ok {
		t.Fatal("no notifications:unread-count reply")
	}

	var payload struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatalf("failed to unmarshal count: %v", err)
	}
	if payload.Count != 0 {
		t.Errorf("count = %d, want 0", payload.Count)
	}
}

func TestNotifications_MarkAllReadNoUnreadIsNoError(t *testing.T) {
	h, notif, _ := newNotificationFixture()
	c := newTestClient(h, uuid.New())
	drainEvents(t, c)

	notif.MarkAllRead(c)

	events := drainEvents(t, c)
	if _, ok := findEvent(events, EventNotificationsAllRead); !ok {
		t.Error("no confirmation when nothing was unread")
	}
	if _, ok := findEvent(events, EventError); ok {
		t.Error("error event for empty mark-all-read")
	}
}
