package checkoutsample

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/stashpaysample/lib/mymetrics"
	"github.com/MarcGrol/stashpaysample/lib/mypublisher"
	"github.com/MarcGrol/stashpaysample/lib/mystore"
	"github.com/MarcGrol/stashpaysample/lib/mytime"
	"github.com/MarcGrol/stashpaysample/lib/myuuid"
	"github.com/MarcGrol/stashpaysample/services/checkoutsession"
	"github.com/MarcGrol/stashpaysample/services/stashpay"
)

const checkoutURL = "https://pay.example.com/checkout/123"

func TestSampleWebService(t *testing.T) {

	t.Run("Index page", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, _, _ := setup(t, ctrl)

		// when
		response := do(router, http.MethodGet, "/", "")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "Ready")
		assert.Contains(t, response.Body.String(), checkoutURL)
	})

	t.Run("Start checkout in card ui", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, controller, card, board := setup(t, ctrl)

		// when
		response := do(router, http.MethodPost, "/checkout", "url="+checkoutURL+"&mode=native")

		// then
		assert.Equal(t, http.StatusSeeOther, response.Code)
		assert.Equal(t, "/", response.Header().Get("Location"))
		assert.Equal(t, checkoutsession.StatePending, controller.State())
		assert.True(t, card.IsCurrentlyPresented())
		status, _ := board.Status()
		assert.Equal(t, "Opening checkout...", status)

		// and the page embeds the checkout
		page := do(router, http.MethodGet, "/", "")
		assert.Contains(t, page.Body.String(), "<iframe")
	})

	t.Run("Start checkout in web view", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, _, _ := setup(t, ctrl)

		// when
		response := do(router, http.MethodPost, "/checkout", "url="+checkoutURL+"&mode=webview")

		// then
		assert.Equal(t, http.StatusSeeOther, response.Code)
		assert.Equal(t, checkoutURL+"?theme=light", response.Header().Get("Location"))
	})

	t.Run("Start checkout without url", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, controller, card, board := setup(t, ctrl)

		// when
		response := do(router, http.MethodPost, "/checkout", "url=&mode=native")

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Equal(t, checkoutsession.StateIdle, controller.State())
		assert.False(t, card.IsCurrentlyPresented())
		status, alert := board.Status()
		assert.Equal(t, "Ready", status)
		assert.Equal(t, "Please enter a URL", alert)
	})

	t.Run("Start checkout with unknown mode", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, _, _ := setup(t, ctrl)

		// when
		response := do(router, http.MethodPost, "/checkout", "url="+checkoutURL+"&mode=popup")

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("Start checkout while pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, _, _ := setup(t, ctrl)

		// given
		require.Equal(t, http.StatusSeeOther, do(router, http.MethodPost, "/checkout", "url="+checkoutURL).Code)

		// when
		response := do(router, http.MethodPost, "/checkout", "url="+checkoutURL)

		// then
		assert.Equal(t, http.StatusConflict, response.Code)
	})

	t.Run("Success redirect resolves the checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, controller, card, board := setup(t, ctrl)

		// given
		require.Equal(t, http.StatusSeeOther, do(router, http.MethodPost, "/checkout", "url="+checkoutURL+"&mode=webview").Code)

		// when
		response := do(router, http.MethodGet, "/stash/purchaseSuccess", "")

		// then
		assert.Equal(t, http.StatusSeeOther, response.Code)
		assert.Equal(t, "/", response.Header().Get("Location"))
		assert.Equal(t, checkoutsession.StateIdle, controller.State())
		assert.False(t, card.IsCurrentlyPresented())
		status, alert := board.Status()
		assert.Equal(t, "Payment Success", status)
		assert.Equal(t, "Payment completed successfully", alert)

		// and the alert is shown once
		page := do(router, http.MethodGet, "/", "")
		assert.Contains(t, page.Body.String(), "Payment completed successfully")
		_, alert = board.Status()
		assert.Empty(t, alert)
	})

	t.Run("Result redirect without checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, _, board := setup(t, ctrl)

		// when
		response := do(router, http.MethodGet, "/stash/purchaseFailure", "")

		// then
		assert.Equal(t, http.StatusSeeOther, response.Code)
		status, _ := board.Status()
		assert.Equal(t, "Ready", status)
	})

	t.Run("Unrelated redirect", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, _, _ := setup(t, ctrl)

		// when
		response := do(router, http.MethodGet, "/stash/somethingElse", "")

		// then
		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Payment failure reported by checkout page", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, controller, _, board := setup(t, ctrl)

		// given
		require.Equal(t, http.StatusSeeOther, do(router, http.MethodPost, "/checkout", "url="+checkoutURL).Code)

		// when
		response := do(router, http.MethodPost, "/stashpay/bridge/paymentFailure", "")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, checkoutsession.StateIdle, controller.State())
		status, alert := board.Status()
		assert.Equal(t, "Payment Failed", status)
		assert.Equal(t, "Payment failed", alert)

		// and a late redirect does not change anything
		assert.Equal(t, http.StatusSeeOther, do(router, http.MethodGet, "/stash/purchaseSuccess", "").Code)
		status, _ = board.Status()
		assert.Equal(t, "Payment Failed", status)
	})

	t.Run("Opt-in reported by checkout page", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, controller, _, board := setup(t, ctrl)

		// given
		require.Equal(t, http.StatusSeeOther, do(router, http.MethodPost, "/checkout", "url="+checkoutURL).Code)

		// when
		response := do(router, http.MethodPost, "/stashpay/bridge/optin", "optinType=newsletter")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		last, found := controller.LastSession()
		require.True(t, found)
		assert.Equal(t, checkoutsession.OutcomeDismissed, last.Outcome)
		assert.Equal(t, []string{"newsletter"}, last.OptIns)
		status, _ := board.Status()
		assert.Equal(t, "Dialog dismissed", status)
	})

	t.Run("Timed out checkout is dismissed", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, controller, card, board := setupWithTimeout(t, ctrl, 30*time.Millisecond)

		// when
		require.Equal(t, http.StatusSeeOther, do(router, http.MethodPost, "/checkout", "url="+checkoutURL).Code)

		// then
		assert.Eventually(t, func() bool {
			return controller.State() == checkoutsession.StateIdle
		}, 2*time.Second, 10*time.Millisecond)
		last, found := controller.LastSession()
		require.True(t, found)
		assert.Equal(t, checkoutsession.OutcomeDismissed, last.Outcome)
		assert.Equal(t, checkoutsession.ResolvedByTimeout, last.ResolvedBy)
		assert.False(t, card.IsCurrentlyPresented())
		status, _ := board.Status()
		assert.Equal(t, "Dialog dismissed", status)
	})

	t.Run("Timeout does not interrupt a processing purchase", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, controller, card, board := setupWithTimeout(t, ctrl, 30*time.Millisecond)

		// given
		require.Equal(t, http.StatusSeeOther, do(router, http.MethodPost, "/checkout", "url="+checkoutURL).Code)
		require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/stashpay/bridge/purchaseProcessing", "").Code)

		// when
		time.Sleep(120 * time.Millisecond)

		// then
		assert.Equal(t, checkoutsession.StatePending, controller.State())
		assert.True(t, card.IsCurrentlyPresented())

		// and the payment result still arrives
		require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/stashpay/bridge/paymentSuccess", "").Code)
		last, found := controller.LastSession()
		require.True(t, found)
		assert.Equal(t, checkoutsession.OutcomeSuccess, last.Outcome)
		status, _ := board.Status()
		assert.Equal(t, "Payment Success", status)

		// and a next checkout can be opened
		assert.Equal(t, http.StatusSeeOther, do(router, http.MethodPost, "/checkout", "url="+checkoutURL).Code)
	})

	t.Run("Switch to web view mode", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, card, board := setup(t, ctrl)

		// when
		response := do(router, http.MethodPost, "/mode", "webView=true")

		// then
		assert.Equal(t, http.StatusSeeOther, response.Code)
		assert.True(t, card.ForceWebBasedCheckout())
		status, _ := board.Status()
		assert.Equal(t, "Mode: Web View (Safari)", status)

		// and checkouts now open in the web view
		response = do(router, http.MethodPost, "/checkout", "url="+checkoutURL)
		assert.Equal(t, checkoutURL+"?theme=light", response.Header().Get("Location"))
	})

	t.Run("Switch back to card ui", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, card, board := setup(t, ctrl)
		card.SetForceWebBasedCheckout(true)

		// when
		response := do(router, http.MethodPost, "/mode", "webView=false")

		// then
		assert.Equal(t, http.StatusSeeOther, response.Code)
		assert.False(t, card.ForceWebBasedCheckout())
		status, _ := board.Status()
		assert.Equal(t, "Mode: Card UI", status)
	})

	t.Run("Status as json", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, _, _ := setup(t, ctrl)

		// given
		require.Equal(t, http.StatusSeeOther, do(router, http.MethodPost, "/checkout", "url="+checkoutURL).Code)

		// when
		response := do(router, http.MethodGet, "/status", "")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		status := Status{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &status))
		assert.Equal(t, checkoutsession.StatePending, status.State)
		assert.Equal(t, "Opening checkout...", status.StatusText)
		require.NotNil(t, status.Current)
		assert.Equal(t, "session-1", status.Current.UID)
		assert.True(t, status.Presentation.Presented)
	})

	t.Run("Session history as json", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, _, _ := setup(t, ctrl)

		// given
		require.Equal(t, http.StatusSeeOther, do(router, http.MethodPost, "/checkout", "url="+checkoutURL).Code)
		require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/stashpay/bridge/paymentSuccess", "").Code)

		// when
		response := do(router, http.MethodGet, "/sessions", "")

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		sessions := []checkoutsession.CheckoutSession{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &sessions))
		require.Len(t, sessions, 1)
		assert.Equal(t, checkoutsession.OutcomeSuccess, sessions[0].Outcome)
		assert.Equal(t, checkoutsession.ResolvedByDelegate, sessions[0].ResolvedBy)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *checkoutsession.Controller, *stashpay.Card, *StatusBoard) {
	return setupWithTimeout(t, ctrl, 0)
}

func setupWithTimeout(t *testing.T, ctrl *gomock.Controller, timeout time.Duration) (*mux.Router, *checkoutsession.Controller, *stashpay.Card, *StatusBoard) {
	c, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	count := 0
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().DoAndReturn(func() string {
		count++
		return fmt.Sprintf("session-%d", count)
	}).AnyTimes()
	publisher := mypublisher.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	history, _, err := mystore.NewInMemoryStore[checkoutsession.CheckoutSession](c)
	require.NoError(t, err)

	board := NewStatusBoard()
	card := stashpay.NewCard(nower, "light", false)
	controller := checkoutsession.NewController(card, board, nower, uuider, history, publisher, mymetrics.New("test"), timeout)
	card.SetDelegate(controller)
	go func() {
		_ = controller.Run(c)
	}()

	router := mux.NewRouter()
	require.NoError(t, NewWebService(controller, card, board, checkoutURL).RegisterEndpoints(c, router))
	require.NoError(t, stashpay.NewWebService(card).RegisterEndpoints(c, router))

	return router, controller, card, board
}

func do(router *mux.Router, method string, path string, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}
