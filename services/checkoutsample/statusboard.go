package checkoutsample

import (
	"context"
	"fmt"
	"sync"

	"github.com/MarcGrol/stashpaysample/lib/mylog"
	"github.com/MarcGrol/stashpaysample/services/checkoutsession"
)

const (
	statusReady          = "Ready"
	statusOpening        = "Opening checkout..."
	statusPaymentSuccess = "Payment Success"
	statusPaymentFailed  = "Payment Failed"
	statusDismissed      = "Dialog dismissed"

	alertPaymentSuccess = "Payment completed successfully"
	alertPaymentFailed  = "Payment failed"
	alertEmptyURL       = "Please enter a URL"
)

// StatusBoard holds what the sample page shows: a status line and an optional alert
type StatusBoard struct {
	logger mylog.Logger
	mutex  sync.Mutex
	status string
	alert  string
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{
		logger: mylog.New("checkoutsample"),
		status: statusReady,
	}
}

// Present is called by the checkout session controller
func (b *StatusBoard) Present(c context.Context, notification checkoutsession.Notification) {
	traceLabel := ""
	if notification.Session != nil {
		traceLabel = notification.Session.UID
	}

	switch notification.Kind {
	case checkoutsession.NotificationResolved:
		switch notification.Outcome {
		case checkoutsession.OutcomeSuccess:
			b.show(statusPaymentSuccess, alertPaymentSuccess)
		case checkoutsession.OutcomeFailure:
			b.show(statusPaymentFailed, alertPaymentFailed)
		case checkoutsession.OutcomeDismissed:
			b.show(statusDismissed, "")
		}
		b.logger.Log(c, traceLabel, mylog.SeverityInfo, "Checkout resolved: %s", notification.Outcome)

	case checkoutsession.NotificationOptIn:
		b.show(fmt.Sprintf("Opt-in: %s", notification.OptInKind), "")
		b.logger.Log(c, traceLabel, mylog.SeverityInfo, "Opt-in received: %s", notification.OptInKind)

	case checkoutsession.NotificationPageLoaded:
		b.logger.Log(c, traceLabel, mylog.SeverityInfo, "Checkout page loaded in %dms", notification.PageLoad.Milliseconds())
	}
}

func (b *StatusBoard) SetStatus(status string) {
	b.show(status, "")
}

func (b *StatusBoard) Alert(alert string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.alert = alert
}

// Status returns the status line and the pending alert
func (b *StatusBoard) Status() (string, string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.status, b.alert
}

// TakeAlert returns the pending alert and clears it, so it is shown once
func (b *StatusBoard) TakeAlert() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	alert := b.alert
	b.alert = ""
	return alert
}

func (b *StatusBoard) show(status string, alert string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.status = status
	if alert != "" {
		b.alert = alert
	}
}
