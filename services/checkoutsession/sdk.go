package checkoutsession

import "context"

//go:generate mockgen -source=sdk.go -package checkoutsession -destination sdk_mock.go CheckoutSDK,Presenter

// CheckoutSDK is the part of the checkout SDK the controller drives
type CheckoutSDK interface {
	OpenCheckout(c context.Context, url string, mode Mode) error
	DismissWithResult(c context.Context, success bool) error
	Dismiss(c context.Context) error
}

// Presenter receives every notification on the controller's goroutine, one at a time.
// It must not call back into the controller synchronously.
type Presenter interface {
	Present(c context.Context, notification Notification)
}
