package stashpay

import (
	"net/url"

	formcodec "github.com/go-playground/form/v4"
)

const (
	EventPaymentSuccess     = "paymentSuccess"
	EventPaymentFailure     = "paymentFailure"
	EventPurchaseProcessing = "purchaseProcessing"
	EventOptIn              = "optin"
	EventPageLoaded         = "pageLoaded"
	EventDismissed          = "dismissed"
)

// BridgeEvent is a message posted by the checkout page to its host
type BridgeEvent struct {
	Name           string `form:"-"`
	OptInType      string `form:"optinType"`
	LoadTimeMillis int64  `form:"loadTimeMs"`
}

func NewBridgeEvent(name string, values url.Values) (BridgeEvent, error) {
	event := BridgeEvent{}
	err := formcodec.NewDecoder().Decode(&event, values)
	if err != nil {
		return event, err
	}
	event.Name = name

	return event, nil
}
