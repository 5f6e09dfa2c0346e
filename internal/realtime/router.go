package realtime

import "log"

// Router раскидывает входящие события по трем группам обработчиков.
// Паника обработчика не должна уронить соединение — гасим и логируем.
type Router struct {
	chat          *ChatHandlers
	notifications *NotificationHandlers
	presence      *PresenceHandlers
}

func NewRouter(chat *ChatHandlers, notifications *NotificationHandlers, presence *PresenceHandlers) *Router {
	return &Router{
		chat:          chat,
		notifications: notifications,
		presence:      presence,
	}
}

func (r *Router) Dispatch(c *Client, ev *Event) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in event handler %s: %v", ev.Event, rec)
			c.SendError("internal error")
		}
	}()

	switch ev.Event {
	// Чат
	case EventChatJoin:
		r.chat.Join(c, ev.Data)
	case EventChatLeave:
		r.chat.Leave(c, ev.Data)
	case EventChatTyping:
		r.chat.Typing(c, ev.Data)
	case EventChatMessageRead:
		r.chat.MarkRead(c, ev.Data)

	// Уведомления
	case EventNotificationsSubscribe:
		r.notifications.Subscribe(c)
	case EventNotificationsUnsubscribe:
		r.notifications.Unsubscribe(c)
	case EventNotificationsMarkRead:
		r.notifications.MarkRead(c, ev.Data)
	case EventNotificationsMarkAllRead:
		r.notifications.MarkAllRead(c)
	case EventNotificationsUnreadCount:
		r.notifications.GetUnreadCount(c)

	// Присутствие
	case EventPresenceUpdate:
		r.presence.UpdateStatus(c, ev.Data)
	case EventPresenceGetOnline:
		r.presence.GetOnline(c)
	case EventPresenceGetUser:
		r.presence.GetUser(c, ev.Data)
	case EventPresenceJoinChat:
		r.presence.JoinChat(c, ev.Data)
	case EventPresenceLeaveChat:
		r.presence.LeaveChat(c, ev.Data)

	default:
		log.Printf("Unknown event: %s", ev.Event)
	}
}
