package domain

import (
	"path"
	"strings"
	"time"
)

type MessageDirection string

const (
	DirectionIncoming MessageDirection = "incoming"
	DirectionOutgoing MessageDirection = "outgoing"
)

type MessageType string

const (
	MessageText     MessageType = "text"
	MessageImage    MessageType = "image"
	MessageAudio    MessageType = "audio"
	MessageVideo    MessageType = "video"
	MessageDocument MessageType = "document"
)

type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
	StatusFailed    MessageStatus = "failed"
	StatusReceived  MessageStatus = "received"
)

// Settable reports whether an operator may move a message into status s.
// "received" is reserved for inbound messages.
func (s MessageStatus) Settable() bool {
	switch s {
	case StatusSent, StatusDelivered, StatusRead, StatusFailed:
		return true
	}
	return false
}

// Message is one WhatsApp message exchanged with a contact.
type Message struct {
	ID                string           `json:"id"`
	ContactID         string           `json:"contactId"`
	Direction         MessageDirection `json:"direction"`
	Type              MessageType      `json:"messageType"`
	Content           string           `json:"content"`
	MediaURL          string           `json:"mediaUrl,omitempty"`
	WhatsAppMessageID string           `json:"whatsappMessageId,omitempty"`
	Status            MessageStatus    `json:"status"`
	IsDeleted         bool             `json:"-"`
	Timestamp         time.Time        `json:"timestamp"`
}

var mediaExtensions = map[string]MessageType{
	"jpg": MessageImage, "jpeg": MessageImage, "png": MessageImage, "gif": MessageImage,
	"mp3": MessageAudio, "wav": MessageAudio, "ogg": MessageAudio,
	"mp4": MessageVideo, "avi": MessageVideo, "mov": MessageVideo,
	"pdf": MessageDocument, "doc": MessageDocument, "docx": MessageDocument,
	"xls": MessageDocument, "xlsx": MessageDocument, "txt": MessageDocument,
}

// DetectMessageType infers the message type from the extension of mediaURL.
// Messages without media, or with an unknown extension, are text.
func DetectMessageType(mediaURL string) MessageType {
	if mediaURL == "" {
		return MessageText
	}
	if i := strings.IndexAny(mediaURL, "?#"); i >= 0 {
		mediaURL = mediaURL[:i]
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(mediaURL), "."))
	if t, ok := mediaExtensions[ext]; ok {
		return t
	}
	return MessageText
}
