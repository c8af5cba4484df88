package stashpay

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/stashpaysample/lib/mycontext"
	"github.com/MarcGrol/stashpaysample/lib/myerrors"
	"github.com/MarcGrol/stashpaysample/lib/myhttp"
	"github.com/MarcGrol/stashpaysample/lib/mylog"
)

type webService struct {
	logger mylog.Logger
	card   *Card
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(card *Card) *webService {
	return &webService{
		logger: mylog.New("stashpay"),
		card:   card,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/stashpay/bridge/{event}", s.bridgeEvent()).Methods("POST")

	return nil
}

// bridgeEvent receives the messages the checkout page posts to its host
func (s *webService) bridgeEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		event, err := NewBridgeEvent(mux.Vars(r)["event"], r.Form)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		s.logger.Log(c, "", mylog.SeverityInfo, "Received bridge event %s", event.Name)

		err = s.card.HandleBridgeEvent(c, event)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnknownEvent):
				responseWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(err))
			case errors.Is(err, ErrPurchaseProcessing):
				responseWriter.WriteError(c, w, 4, myerrors.NewConflictError(err))
			default:
				responseWriter.WriteError(c, w, 5, myerrors.NewInternalError(err))
			}
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: event.Name + " processed",
		})
	}
}
