package stashpay

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/MarcGrol/stashpaysample/lib/mylog"
	"github.com/MarcGrol/stashpaysample/lib/mytime"
	"github.com/MarcGrol/stashpaysample/services/checkoutsession"
)

//go:generate mockgen -source=card.go -package stashpay -destination delegate_mock.go Delegate

// Delegate receives what the checkout surface reports
type Delegate interface {
	OnPaymentComplete(c context.Context)
	OnPaymentFailed(c context.Context)
	OnDismissed(c context.Context)
	OnOptIn(c context.Context, kind string)
	OnPageLoadTiming(c context.Context, elapsed time.Duration)
}

var (
	ErrAlreadyPresented   = errors.New("a checkout is already presented")
	ErrNotPresented       = errors.New("no checkout is presented")
	ErrPurchaseProcessing = errors.New("purchase is being processed")
	ErrUnknownEvent       = errors.New("unknown bridge event")
)

// Presentation describes the checkout surface as it is currently shown
type Presentation struct {
	Presented          bool
	URL                string
	Mode               checkoutsession.Mode
	PurchaseProcessing bool
	OpenedAt           time.Time
}

// Card is the host side of the checkout surface. At most one surface is presented at a time.
type Card struct {
	logger mylog.Logger
	nower  mytime.Nower
	theme  string

	mutex         sync.Mutex
	delegate      Delegate
	forceWebBased bool
	presentation  Presentation
	resultSent    bool
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewCard(nower mytime.Nower, theme string, forceWebBased bool) *Card {
	return &Card{
		logger:        mylog.New("stashpay"),
		nower:         nower,
		theme:         theme,
		forceWebBased: forceWebBased,
	}
}

func (s *Card) SetDelegate(delegate Delegate) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.delegate = delegate
}

func (s *Card) SetForceWebBasedCheckout(force bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.forceWebBased = force
}

func (s *Card) ForceWebBasedCheckout() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.forceWebBased
}

func (s *Card) Presentation() Presentation {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.presentation
}

func (s *Card) IsCurrentlyPresented() bool {
	return s.Presentation().Presented
}

func (s *Card) IsPurchaseProcessing() bool {
	return s.Presentation().PurchaseProcessing
}

func (s *Card) OpenCheckout(c context.Context, checkoutURL string, mode checkoutsession.Mode) error {
	themed, err := withTheme(checkoutURL, s.theme)
	if err != nil {
		return fmt.Errorf("error parsing checkout url %s: %w", checkoutURL, err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.presentation.Presented {
		return ErrAlreadyPresented
	}
	if s.forceWebBased {
		mode = checkoutsession.ModeWebViewRedirect
	}

	s.presentation = Presentation{
		Presented: true,
		URL:       themed,
		Mode:      mode,
		OpenedAt:  s.nower.Now(),
	}
	s.resultSent = false

	s.logger.Log(c, "", mylog.SeverityInfo, "Presenting checkout %s as %s", themed, mode.Label())

	return nil
}

// DismissWithResult closes the surface after the host learned the payment result by other means
func (s *Card) DismissWithResult(c context.Context, success bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.presentation.Presented {
		return ErrNotPresented
	}
	s.resultSent = true
	s.close()

	s.logger.Log(c, "", mylog.SeverityInfo, "Checkout dismissed with result (success:%v)", success)

	return nil
}

// Dismiss closes the surface without a result. It is refused while a purchase is processing.
func (s *Card) Dismiss(c context.Context) error {
	delegate, notify, err := s.dismiss()
	if err != nil {
		return err
	}
	if notify && delegate != nil {
		delegate.OnDismissed(c)
	}
	return nil
}

func (s *Card) dismiss() (Delegate, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.presentation.Presented {
		return nil, false, nil
	}
	if s.presentation.PurchaseProcessing {
		return nil, false, ErrPurchaseProcessing
	}
	notify := !s.resultSent
	s.close()

	return s.delegate, notify, nil
}

// HandleBridgeEvent translates a message posted by the checkout page into delegate calls
func (s *Card) HandleBridgeEvent(c context.Context, event BridgeEvent) error {
	switch event.Name {
	case EventPaymentSuccess:
		delegate := s.closeWithResult()
		if delegate != nil {
			delegate.OnPaymentComplete(c)
		}

	case EventPaymentFailure:
		delegate := s.closeWithResult()
		if delegate != nil {
			delegate.OnPaymentFailed(c)
		}

	case EventPurchaseProcessing:
		s.mutex.Lock()
		if s.presentation.Presented {
			s.presentation.PurchaseProcessing = true
		}
		s.mutex.Unlock()

	case EventOptIn:
		delegate, notifyDismissed := s.closeAfterOptIn()
		if delegate != nil {
			delegate.OnOptIn(c, event.OptInType)
			if notifyDismissed {
				delegate.OnDismissed(c)
			}
		}

	case EventPageLoaded:
		delegate := s.currentDelegate()
		if delegate != nil {
			delegate.OnPageLoadTiming(c, time.Duration(event.LoadTimeMillis)*time.Millisecond)
		}

	case EventDismissed:
		return s.Dismiss(c)

	default:
		return fmt.Errorf("%w: %s", ErrUnknownEvent, event.Name)
	}

	return nil
}

func (s *Card) closeWithResult() Delegate {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.resultSent = true
	s.close()

	return s.delegate
}

// closeAfterOptIn closes the surface even while a purchase is processing
func (s *Card) closeAfterOptIn() (Delegate, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.presentation.Presented {
		return s.delegate, false
	}
	notifyDismissed := !s.resultSent
	s.close()

	return s.delegate, notifyDismissed
}

func (s *Card) currentDelegate() Delegate {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.delegate
}

// caller holds the lock
func (s *Card) close() {
	s.presentation = Presentation{}
}

func withTheme(checkoutURL string, theme string) (string, error) {
	u, err := url.Parse(checkoutURL)
	if err != nil {
		return "", err
	}
	if theme == "" {
		return u.String(), nil
	}
	query := u.Query()
	query.Set("theme", theme)
	u.RawQuery = query.Encode()

	return u.String(), nil
}
