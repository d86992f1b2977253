package domain

import "time"

type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// AlertTTL is how long a banner stays before it dismisses itself.
const AlertTTL = 5 * time.Second

// AlertCategory groups banners that replace each other.
type AlertCategory string

const (
	CategoryValidation AlertCategory = "validation"
	CategoryFlash      AlertCategory = "flash"
	CategoryFault      AlertCategory = "fault"
)

type Alert struct {
	Severity Severity      `json:"severity"`
	Category AlertCategory `json:"category"`
	Message  string        `json:"message"`
}

func ErrorAlert(category AlertCategory, message string) Alert {
	return Alert{Severity: SeverityError, Category: category, Message: message}
}

func SuccessAlert(category AlertCategory, message string) Alert {
	return Alert{Severity: SeveritySuccess, Category: category, Message: message}
}
