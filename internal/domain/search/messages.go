package search

import (
	"fmt"
	"strings"
)

// MessageMode decides how much of the ErrorKind shows through in user messages.
type MessageMode string

const (
	// MessageModeCollapsed shows one rate-limit message and one generic message.
	MessageModeCollapsed MessageMode = "collapsed"
	// MessageModeDetailed shows a message per ErrorKind.
	MessageModeDetailed MessageMode = "detailed"
)

const (
	MessageRateLimited = "We are using a free API which has hit its limit. Please try again tomorrow."
	MessageGeneric     = "An unexpected error occurred. Please check your connection."
)

var detailedMessages = map[ErrorKind]string{
	ErrorKindTimeout:            "The search took too long to respond. Please try again.",
	ErrorKindNetworkUnavailable: "The search service could not be reached. Please check your connection.",
	ErrorKindNotFound:           "The search service endpoint was not found.",
	ErrorKindServiceUnavailable: "The search service is temporarily unavailable. Please try again later.",
	ErrorKindMalformed:          "The search service returned a response we could not understand.",
	ErrorKindRateLimited:        MessageRateLimited,
	ErrorKindUnknown:            MessageGeneric,
}

// ParseMessageMode validates a configured mode string.
func ParseMessageMode(raw string) (MessageMode, error) {
	switch mode := MessageMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return MessageModeCollapsed, nil
	case MessageModeCollapsed, MessageModeDetailed:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported error message mode %q", raw)
	}
}

// FailureView is the user-facing side of a failed search.
type FailureView struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// NewFailureView turns a failure into what the presentation layer shows.
// A raw message containing "limit" always yields the rate-limit message,
// whatever the classified kind was.
func NewFailureView(err error, mode MessageMode) FailureView {
	kind := Classify(err)
	raw := ""
	if err != nil {
		raw = err.Error()
	}

	if kind == ErrorKindRateLimited || strings.Contains(raw, "limit") {
		return FailureView{Kind: ErrorKindRateLimited, Message: MessageRateLimited}
	}

	if mode == MessageModeDetailed {
		if msg, ok := detailedMessages[kind]; ok {
			return FailureView{Kind: kind, Message: msg}
		}
	}
	return FailureView{Kind: kind, Message: MessageGeneric}
}
