package models

// FlashType is the severity of a flash message
type FlashType string

const (
	FlashSuccess FlashType = "success"
	FlashInfo    FlashType = "info"
	FlashWarning FlashType = "warning"
	FlashDanger  FlashType = "danger"
)

// Flash is a one-time notification shown on the next rendered page
type Flash struct {
	Type    FlashType `json:"type"`
	Intro   string    `json:"intro"`
	Message string    `json:"message"`
}

// NewFlash builds a flash message
func NewFlash(t FlashType, intro, message string) *Flash {
	return &Flash{Type: t, Intro: intro, Message: message}
}
