package checkoutsession

import (
	"errors"
	"fmt"
	"time"
)

type Mode string

const (
	ModeNativeUI        Mode = "native"
	ModeWebViewRedirect Mode = "webview"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNativeUI, "":
		return ModeNativeUI, nil
	case ModeWebViewRedirect:
		return ModeWebViewRedirect, nil
	default:
		return "", fmt.Errorf("unknown checkout mode %q", s)
	}
}

func (m Mode) Label() string {
	if m == ModeWebViewRedirect {
		return "Web View (Safari)"
	}
	return "Card UI"
}

type State string

const (
	StateIdle     State = "idle"
	StatePending  State = "pending"
	StateResolved State = "resolved"
)

type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeSuccess   Outcome = "success"
	OutcomeFailure   Outcome = "failure"
	OutcomeDismissed Outcome = "dismissed"
)

type ResolvedBy string

const (
	ResolvedByDelegate ResolvedBy = "delegate"
	ResolvedByRedirect ResolvedBy = "redirect"
	ResolvedByTimeout  ResolvedBy = "timeout"
)

var (
	ErrEmptyURL             = errors.New("checkout url is empty")
	ErrInvalidURL           = errors.New("checkout url is not a valid absolute url")
	ErrSessionAlreadyActive = errors.New("a checkout session is already pending")
	ErrCheckoutUnavailable  = errors.New("checkout could not be opened")
	ErrStopped              = errors.New("checkout session controller is not running")
)

type CheckoutSession struct {
	UID           string
	TargetURL     string
	Mode          Mode
	State         State
	Outcome       Outcome
	ResolvedBy    ResolvedBy
	CreatedAt     time.Time
	ResolvedAt    time.Time
	OptIns        []string
	PageLoadTimes []time.Duration `datastore:",noindex"`
}

type NotificationKind string

const (
	NotificationResolved   NotificationKind = "resolved"
	NotificationOptIn      NotificationKind = "optin"
	NotificationPageLoaded NotificationKind = "pageLoaded"
)

// Notification is what the presentation layer gets to see. Kind tells which of the other fields are set.
type Notification struct {
	Kind      NotificationKind
	Session   *CheckoutSession
	Outcome   Outcome
	OptInKind string
	PageLoad  time.Duration
}
