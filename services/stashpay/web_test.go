package stashpay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/stashpaysample/services/checkoutsession"
)

func TestBridgeWebService(t *testing.T) {

	t.Run("Payment success", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		c, router, card, delegate := setupWeb(t, ctrl)

		// given
		require.NoError(t, card.OpenCheckout(c, checkoutURL, checkoutsession.ModeNativeUI))
		delegate.EXPECT().OnPaymentComplete(gomock.Any())

		// when
		response := post(router, "/stashpay/bridge/paymentSuccess", "")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "paymentSuccess processed")
		assert.False(t, card.IsCurrentlyPresented())
	})

	t.Run("Opt-in with kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		c, router, card, delegate := setupWeb(t, ctrl)

		// given
		require.NoError(t, card.OpenCheckout(c, checkoutURL, checkoutsession.ModeNativeUI))
		delegate.EXPECT().OnOptIn(gomock.Any(), "marketing")
		delegate.EXPECT().OnDismissed(gomock.Any())

		// when
		response := post(router, "/stashpay/bridge/optin", "optinType=marketing")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
	})

	t.Run("Opt-in while processing", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		c, router, card, delegate := setupWeb(t, ctrl)

		// given
		require.NoError(t, card.OpenCheckout(c, checkoutURL, checkoutsession.ModeNativeUI))
		assert.Equal(t, http.StatusOK, post(router, "/stashpay/bridge/purchaseProcessing", "").Code)
		delegate.EXPECT().OnOptIn(gomock.Any(), "marketing")
		delegate.EXPECT().OnDismissed(gomock.Any())

		// when
		response := post(router, "/stashpay/bridge/optin", "optinType=marketing")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.False(t, card.IsCurrentlyPresented())
	})

	t.Run("Page loaded with timing", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		_, router, _, delegate := setupWeb(t, ctrl)

		// given
		delegate.EXPECT().OnPageLoadTiming(gomock.Any(), 300*time.Millisecond)

		// when
		response := post(router, "/stashpay/bridge/pageLoaded", "loadTimeMs=300")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
	})

	t.Run("Invalid timing", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		_, router, _, _ := setupWeb(t, ctrl)

		// when
		response := post(router, "/stashpay/bridge/pageLoaded", "loadTimeMs=soon")

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("Dismiss while processing", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		c, router, card, _ := setupWeb(t, ctrl)

		// given
		require.NoError(t, card.OpenCheckout(c, checkoutURL, checkoutsession.ModeNativeUI))
		assert.Equal(t, http.StatusOK, post(router, "/stashpay/bridge/purchaseProcessing", "").Code)

		// when
		response := post(router, "/stashpay/bridge/dismissed", "")

		// then
		assert.Equal(t, http.StatusConflict, response.Code)
	})

	t.Run("Unknown event", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		_, router, _, _ := setupWeb(t, ctrl)

		// when
		response := post(router, "/stashpay/bridge/teleport", "")

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}

func setupWeb(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, *Card, *MockDelegate) {
	c, card, delegate := setupCard(t, ctrl, false)

	router := mux.NewRouter()
	err := NewWebService(card).RegisterEndpoints(c, router)
	require.NoError(t, err)

	return c, router, card, delegate
}

func post(router *mux.Router, path string, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}
