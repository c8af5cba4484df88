package warmup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/stashpaysample/lib/mycontext"
	"github.com/MarcGrol/stashpaysample/lib/myerrors"
	"github.com/MarcGrol/stashpaysample/lib/myhttp"
	"github.com/MarcGrol/stashpaysample/lib/mylog"
	"github.com/MarcGrol/stashpaysample/lib/mystore"
	"github.com/MarcGrol/stashpaysample/services/checkoutsession"
)

type webService struct {
	logger  mylog.Logger
	history mystore.Store[checkoutsession.CheckoutSession]
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(history mystore.Store[checkoutsession.CheckoutSession]) *webService {
	return &webService{
		logger:  mylog.New("warmup"),
		history: history,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

// warmupPage touches the session store so the first checkout does not pay for connecting to it
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		sessions, err := s.history.List(c)
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewUnavailableError(fmt.Errorf("session store not reachable: %s", err)))
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Successfully processed warmup request (%d sessions)", len(sessions)),
		})
	}
}
