package fcm

// FCM HTTP v1 message shapes. Key spellings here are part of the contract
// with the mobile client and APNs and must not be normalized.

type Message struct {
	Token        string            `json:"token"`
	Notification *Notification     `json:"notification,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
	Android      *AndroidConfig    `json:"android,omitempty"`
	APNS         *APNSConfig       `json:"apns,omitempty"`
}

type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

type AndroidConfig struct {
	Priority     string               `json:"priority,omitempty"`
	Notification *AndroidNotification `json:"notification,omitempty"`
}

type AndroidNotification struct {
	ChannelID   string `json:"channel_id,omitempty"`
	Sound       string `json:"sound,omitempty"`
	ClickAction string `json:"click_action,omitempty"`
	Image       string `json:"image,omitempty"`
}

type APNSConfig struct {
	Payload    APNSPayload     `json:"payload"`
	FCMOptions *APNSFCMOptions `json:"fcm_options,omitempty"`
}

type APNSPayload struct {
	Aps Aps `json:"aps"`
}

type Aps struct {
	Sound            string `json:"sound,omitempty"`
	Badge            int    `json:"badge,omitempty"`
	Category         string `json:"category,omitempty"`
	ContentAvailable int    `json:"content_available,omitempty"`
	MutableContent   int    `json:"mutable-content,omitempty"`
}

type APNSFCMOptions struct {
	Image string `json:"image,omitempty"`
}
