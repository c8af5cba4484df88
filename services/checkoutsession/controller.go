package checkoutsession

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MarcGrol/stashpaysample/lib/myevents"
	"github.com/MarcGrol/stashpaysample/lib/mylog"
	"github.com/MarcGrol/stashpaysample/lib/mymetrics"
	"github.com/MarcGrol/stashpaysample/lib/mypublisher"
	"github.com/MarcGrol/stashpaysample/lib/mystore"
	"github.com/MarcGrol/stashpaysample/lib/mytime"
	"github.com/MarcGrol/stashpaysample/lib/myuuid"
	"github.com/MarcGrol/stashpaysample/services/checkoutevents"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Controller owns at most one pending checkout session.
//
// All session state is owned by the goroutine executing Run: every operation is
// handed over to it and applied there in arrival order, and the presenter is
// called from it as well. A session is resolved at most once; whatever arrives
// later for the same session is ignored.
//
// Starting a checkout while another one is pending is rejected with
// ErrSessionAlreadyActive; the pending session is never superseded.
type Controller struct {
	logger    mylog.Logger
	sdk       CheckoutSDK
	presenter Presenter
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	history   mystore.Store[CheckoutSession]
	publisher mypublisher.Publisher
	metrics   *mymetrics.Metrics
	timeout   time.Duration

	inbox   chan func()
	stopped chan struct{}
	running atomic.Bool

	// snapshots for readers outside the loop
	current atomic.Pointer[CheckoutSession]
	last    atomic.Pointer[CheckoutSession]

	// owned by the loop
	pending  *CheckoutSession
	timer    *time.Timer
	expiring string
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewController(sdk CheckoutSDK, presenter Presenter, nower mytime.Nower, uuider myuuid.UUIDer,
	history mystore.Store[CheckoutSession], publisher mypublisher.Publisher, metrics *mymetrics.Metrics, timeout time.Duration) *Controller {
	return &Controller{
		logger:    mylog.New("checkoutsession"),
		sdk:       sdk,
		presenter: presenter,
		nower:     nower,
		uuider:    uuider,
		history:   history,
		publisher: publisher,
		metrics:   metrics,
		timeout:   timeout,
		inbox:     make(chan func()),
		stopped:   make(chan struct{}),
	}
}

// Run processes all session operations until c is cancelled. It can only be called once.
func (s *Controller) Run(c context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("checkout session controller is already running")
	}
	defer close(s.stopped)

	s.logger.Log(c, "", mylog.SeverityInfo, "Checkout session controller started")
	for {
		select {
		case <-c.Done():
			s.stopTimer()
			s.logger.Log(c, "", mylog.SeverityInfo, "Checkout session controller stopped")
			return nil
		case f := <-s.inbox:
			f()
		}
	}
}

// do executes f on the loop and waits for it to complete
func (s *Controller) do(c context.Context, f func()) error {
	done := make(chan struct{})
	select {
	case s.inbox <- func() {
		defer close(done)
		f()
	}:
	case <-s.stopped:
		return ErrStopped
	case <-c.Done():
		return c.Err()
	}
	<-done
	return nil
}

func (s *Controller) State() State {
	if s.current.Load() != nil {
		return StatePending
	}
	return StateIdle
}

// Current returns the pending session, if any
func (s *Controller) Current() (CheckoutSession, bool) {
	session := s.current.Load()
	if session == nil {
		return CheckoutSession{}, false
	}
	return session.clone(), true
}

// LastSession returns the most recently resolved session, if any
func (s *Controller) LastSession() (CheckoutSession, bool) {
	session := s.last.Load()
	if session == nil {
		return CheckoutSession{}, false
	}
	return session.clone(), true
}

// Sessions lists the session history, oldest first
func (s *Controller) Sessions(c context.Context) ([]CheckoutSession, error) {
	return s.history.Query(c, nil, "CreatedAt")
}

func (s *Controller) StartCheckout(c context.Context, url string, mode Mode) error {
	url = strings.TrimSpace(url)
	if url == "" {
		s.metrics.SessionRejected("empty_url")
		return ErrEmptyURL
	}
	err := validate.Var(url, "url")
	if err != nil {
		s.metrics.SessionRejected("invalid_url")
		return fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}
	if mode != ModeNativeUI && mode != ModeWebViewRedirect {
		s.metrics.SessionRejected("invalid_mode")
		return fmt.Errorf("unknown checkout mode %q", mode)
	}

	var session CheckoutSession
	var alreadyActive bool
	err = s.do(c, func() {
		if s.pending != nil {
			alreadyActive = true
			session = s.pending.clone()
			return
		}
		session = CheckoutSession{
			UID:       s.uuider.Create(),
			TargetURL: url,
			Mode:      mode,
			State:     StatePending,
			CreatedAt: s.nower.Now(),
		}
		s.begin(c, session)
	})
	if err != nil {
		return err
	}
	if alreadyActive {
		s.metrics.SessionRejected("already_active")
		s.logger.Log(c, session.UID, mylog.SeverityWarn, "Rejected checkout of %s: session %s is still pending", url, session.UID)
		return ErrSessionAlreadyActive
	}

	s.logger.Log(c, session.UID, mylog.SeverityInfo, "Opening checkout %s in mode %s", url, mode)

	err = s.sdk.OpenCheckout(c, url, mode)
	if err != nil {
		s.metrics.SessionRejected("unavailable")
		s.logger.Log(c, session.UID, mylog.SeverityError, "Error opening checkout: %s", err)
		c = context.WithoutCancel(c)
		_ = s.do(c, func() {
			s.abandon(c, session.UID, err)
		})
		return fmt.Errorf("%w: %s", ErrCheckoutUnavailable, err)
	}

	s.metrics.SessionStarted(string(mode))

	return nil
}

// HandleRedirectEvent resolves the pending session when uri carries a result marker.
// It returns false when the uri is unrelated to checkout.
func (s *Controller) HandleRedirectEvent(c context.Context, uri string) bool {
	outcome, matched := ClassifyRedirect(uri)
	s.metrics.RedirectReceived(matched)
	if !matched {
		return false
	}

	var session CheckoutSession
	var resolved bool
	err := s.do(c, func() {
		session, resolved = s.resolve(c, outcome, ResolvedByRedirect)
	})
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Redirect %s not processed: %s", uri, err)
		return true
	}
	if !resolved {
		s.logger.Log(c, "", mylog.SeverityInfo, "Ignoring redirect %s: no pending checkout session", uri)
		return true
	}

	err = s.sdk.DismissWithResult(c, outcome == OutcomeSuccess)
	if err != nil {
		s.logger.Log(c, session.UID, mylog.SeverityWarn, "Error dismissing checkout: %s", err)
	}

	return true
}

func (s *Controller) OnPaymentComplete(c context.Context) {
	s.resolveFromDelegate(c, OutcomeSuccess)
}

func (s *Controller) OnPaymentFailed(c context.Context) {
	s.resolveFromDelegate(c, OutcomeFailure)
}

func (s *Controller) OnDismissed(c context.Context) {
	s.resolveFromDelegate(c, OutcomeDismissed)
}

func (s *Controller) OnOptIn(c context.Context, kind string) {
	s.metrics.OptInReceived(kind)

	err := s.do(c, func() {
		var session *CheckoutSession
		if s.pending != nil {
			s.pending.OptIns = append(s.pending.OptIns, kind)
			s.publishCurrent()
			s.record(c, *s.pending)
			s.publish(c, checkoutevents.OptInReceived{
				SessionUID: s.pending.UID,
				Kind:       kind,
			})
			snapshot := s.pending.clone()
			session = &snapshot
		}
		s.presenter.Present(c, Notification{
			Kind:      NotificationOptIn,
			Session:   session,
			OptInKind: kind,
		})
	})
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Opt-in %s not processed: %s", kind, err)
	}
}

func (s *Controller) OnPageLoadTiming(c context.Context, elapsed time.Duration) {
	s.metrics.PageLoaded(elapsed)

	err := s.do(c, func() {
		var session *CheckoutSession
		if s.pending != nil {
			s.pending.PageLoadTimes = append(s.pending.PageLoadTimes, elapsed)
			s.publishCurrent()
			snapshot := s.pending.clone()
			session = &snapshot
		}
		s.presenter.Present(c, Notification{
			Kind:     NotificationPageLoaded,
			Session:  session,
			PageLoad: elapsed,
		})
	})
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Page load timing not processed: %s", err)
	}
}

func (s *Controller) resolveFromDelegate(c context.Context, outcome Outcome) {
	err := s.do(c, func() {
		resolvedBy := ResolvedByDelegate
		if outcome == OutcomeDismissed && s.pending != nil && s.expiring == s.pending.UID {
			// the dismissal was requested by expire
			resolvedBy = ResolvedByTimeout
		}
		_, resolved := s.resolve(c, outcome, resolvedBy)
		if !resolved {
			s.logger.Log(c, "", mylog.SeverityInfo, "Ignoring %s callback: no pending checkout session", outcome)
		}
	})
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Callback %s not processed: %s", outcome, err)
	}
}

// expire dismisses a session that stayed pending for too long. The session is only resolved once
// the SDK actually closed the checkout; when it refuses, the timer is armed again.
func (s *Controller) expire(sessionUID string) {
	c := context.Background()

	var stillPending bool
	err := s.do(c, func() {
		if s.pending == nil || s.pending.UID != sessionUID {
			return
		}
		s.timer = nil
		s.expiring = sessionUID
		stillPending = true
	})
	if err != nil || !stillPending {
		return
	}

	dismissErr := s.sdk.Dismiss(c)

	_ = s.do(c, func() {
		s.expiring = ""
		if s.pending == nil || s.pending.UID != sessionUID {
			return
		}
		if dismissErr != nil {
			s.armTimer(sessionUID)
			return
		}
		s.resolve(c, OutcomeDismissed, ResolvedByTimeout)
	})

	if dismissErr != nil {
		s.logger.Log(c, sessionUID, mylog.SeverityWarn, "Checkout session timed out but could not be dismissed, retrying in %s: %s", s.timeout, dismissErr)
		return
	}
	s.logger.Log(c, sessionUID, mylog.SeverityWarn, "Checkout session expired after %s", s.timeout)
}

// Everything below runs on the loop

func (s *Controller) begin(c context.Context, session CheckoutSession) {
	s.pending = &session
	s.publishCurrent()

	if s.timeout > 0 {
		s.armTimer(session.UID)
	}

	s.record(c, session)
	s.publish(c, checkoutevents.CheckoutStarted{
		SessionUID: session.UID,
		TargetURL:  session.TargetURL,
		Mode:       string(session.Mode),
	})
}

func (s *Controller) abandon(c context.Context, sessionUID string, cause error) {
	if s.pending == nil || s.pending.UID != sessionUID {
		return
	}
	s.pending = nil
	s.stopTimer()
	s.current.Store(nil)

	s.publish(c, checkoutevents.CheckoutAbandoned{
		SessionUID: sessionUID,
		Reason:     cause.Error(),
	})
}

func (s *Controller) resolve(c context.Context, outcome Outcome, resolvedBy ResolvedBy) (CheckoutSession, bool) {
	if s.pending == nil {
		return CheckoutSession{}, false
	}

	now := s.nower.Now()
	session := s.pending.clone()
	session.State = StateResolved
	session.Outcome = outcome
	session.ResolvedBy = resolvedBy
	session.ResolvedAt = now

	s.pending = nil
	s.stopTimer()
	s.last.Store(&session)

	s.logger.Log(c, session.UID, mylog.SeverityInfo, "Checkout session resolved: %s (by %s)", outcome, resolvedBy)

	elapsed := now.Sub(session.CreatedAt)
	s.metrics.SessionResolved(string(outcome), string(resolvedBy), elapsed)
	s.record(c, session)
	s.publish(c, checkoutevents.CheckoutResolved{
		SessionUID:     session.UID,
		Outcome:        string(outcome),
		ResolvedBy:     string(resolvedBy),
		DurationMillis: elapsed.Milliseconds(),
	})

	reported := session.clone()
	s.presenter.Present(c, Notification{
		Kind:    NotificationResolved,
		Session: &reported,
		Outcome: outcome,
	})

	// back to idle once the outcome has been reported
	s.current.Store(nil)

	return session.clone(), true
}

func (s *Controller) publishCurrent() {
	snapshot := s.pending.clone()
	s.current.Store(&snapshot)
}

func (s *Controller) armTimer(sessionUID string) {
	s.timer = time.AfterFunc(s.timeout, func() {
		s.expire(sessionUID)
	})
}

func (s *Controller) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Controller) record(c context.Context, session CheckoutSession) {
	err := s.history.Put(c, session.UID, session)
	if err != nil {
		s.logger.Log(c, session.UID, mylog.SeverityError, "Error recording checkout session: %s", err)
	}
}

func (s *Controller) publish(c context.Context, event myevents.Event) {
	err := s.publisher.Publish(c, checkoutevents.TopicName, event)
	if err != nil {
		s.logger.Log(c, event.GetAggregateName(), mylog.SeverityError, "Error publishing %s: %s", event.GetEventTypeName(), err)
	}
}

func (s CheckoutSession) clone() CheckoutSession {
	s.OptIns = append([]string(nil), s.OptIns...)
	s.PageLoadTimes = append([]time.Duration(nil), s.PageLoadTimes...)
	return s
}
