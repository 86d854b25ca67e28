package dispatch

import (
	"roompush/internal/domain"
	"roompush/internal/fcm"
	"roompush/internal/model"
)

// Delivery hints the mobile client registers channels and sounds under.
const (
	androidChannelID   = "room_alerts_channel"
	androidSound       = "n1"
	androidClickAction = "FLUTTER_NOTIFICATION_CLICK"
	apnsSound          = "n1.mp3"
	apnsAlertCategory  = "ROOM_NOTIFICATION"
)

// Localized fallback copy, shown when the event carries no explicit text.
const (
	fallbackAlertTitle    = "تنبيه من الأصدقاء"
	fallbackAlertBodyName = " ينادي عليك"
	fallbackAlertBody     = "ينادي عليك أحد أصدقائك"
	fallbackSnippetName   = " أرسل رسالة"
	fallbackSnippet       = "رسالة جديدة في الغرفة"
	fallbackRoomName      = "غرفة الدردشة"
)

// ComposeMessage builds the provider payload for one device token.
func ComposeMessage(event model.RoomEvent, token string) *fcm.Message {
	if event.Kind == domain.EventTypeRoomMessage {
		return composeRoomMessage(event, token)
	}
	return composeRoomAlert(event, token)
}

func composeRoomAlert(event model.RoomEvent, token string) *fcm.Message {
	title := event.Title
	if title == "" {
		title = fallbackAlertTitle
	}
	body := event.Body
	if body == "" {
		if event.SenderName != "" {
			body = event.SenderName + fallbackAlertBodyName
		} else {
			body = fallbackAlertBody
		}
	}

	data := map[string]string{
		"type":      domain.EventTypeRoomAlert,
		"room_id":   event.RoomID,
		"sender_id": event.SenderID,
	}
	putNonEmpty(data, "sender_name", event.SenderName)
	putNonEmpty(data, "link", event.Link)
	putNonEmpty(data, "image_url", event.ImageURL)

	aps := fcm.Aps{
		Sound:    apnsSound,
		Badge:    1,
		Category: apnsAlertCategory,
	}
	apns := &fcm.APNSConfig{}
	if event.ImageURL != "" {
		aps.MutableContent = 1
		apns.FCMOptions = &fcm.APNSFCMOptions{Image: event.ImageURL}
	}
	apns.Payload = fcm.APNSPayload{Aps: aps}

	return &fcm.Message{
		Token: token,
		Notification: &fcm.Notification{
			Title: title,
			Body:  body,
			Image: event.ImageURL,
		},
		Data: data,
		Android: &fcm.AndroidConfig{
			Priority: "HIGH",
			Notification: &fcm.AndroidNotification{
				ChannelID:   androidChannelID,
				Sound:       androidSound,
				ClickAction: androidClickAction,
				Image:       event.ImageURL,
			},
		},
		APNS: apns,
	}
}

func composeRoomMessage(event model.RoomEvent, token string) *fcm.Message {
	snippet := event.Content
	if snippet == "" {
		if event.SenderName != "" {
			snippet = event.SenderName + fallbackSnippetName
		} else {
			snippet = fallbackSnippet
		}
	}

	roomName := event.RoomName
	if roomName == "" {
		roomName = fallbackRoomName
	}

	title := roomName
	if event.SenderName != "" {
		title = event.SenderName + " • " + roomName
	}

	data := map[string]string{
		"type":      domain.EventTypeRoomMessage,
		"room_id":   event.RoomID,
		"content":   snippet,
		"room_name": roomName,
		"sender_id": event.SenderID,
	}
	putNonEmpty(data, "message_id", event.MessageID)
	putNonEmpty(data, "sender_name", event.SenderName)
	putNonEmpty(data, "sender_avatar", event.SenderAvatar)

	return &fcm.Message{
		Token: token,
		Notification: &fcm.Notification{
			Title: title,
			Body:  snippet,
		},
		Data: data,
		Android: &fcm.AndroidConfig{
			Priority: "HIGH",
			Notification: &fcm.AndroidNotification{
				ChannelID: androidChannelID,
				Sound:     androidSound,
			},
		},
		APNS: &fcm.APNSConfig{
			Payload: fcm.APNSPayload{
				Aps: fcm.Aps{
					ContentAvailable: 1,
					Sound:            apnsSound,
				},
			},
		},
	}
}

// putNonEmpty keeps the data payload free of empty-string values so the
// client never has to special-case them.
func putNonEmpty(data map[string]string, key, value string) {
	if value != "" {
		data[key] = value
	}
}
