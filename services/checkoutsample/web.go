package checkoutsample

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/stashpaysample/lib/mycontext"
	"github.com/MarcGrol/stashpaysample/lib/myerrors"
	"github.com/MarcGrol/stashpaysample/lib/myhttp"
	"github.com/MarcGrol/stashpaysample/lib/mylog"
	"github.com/MarcGrol/stashpaysample/services/checkoutsession"
	"github.com/MarcGrol/stashpaysample/services/stashpay"
)

//go:embed templates
var templateFolder embed.FS
var (
	indexPageTemplate *template.Template
)

func init() {
	indexPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/index.html"))
}

type checkoutForm struct {
	URL  string `form:"url"`
	Mode string `form:"mode"`
}

type modeForm struct {
	WebView bool `form:"webView"`
}

type Status struct {
	State        checkoutsession.State
	StatusText   string
	Alert        string
	WebViewMode  bool
	ModeLabel    string
	Current      *checkoutsession.CheckoutSession
	LastSession  *checkoutsession.CheckoutSession
	Presentation stashpay.Presentation
}

type indexPageInfo struct {
	DefaultURL string
	Status
}

type webService struct {
	logger     mylog.Logger
	controller *checkoutsession.Controller
	card       *stashpay.Card
	board      *StatusBoard
	defaultURL string
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(controller *checkoutsession.Controller, card *stashpay.Card, board *StatusBoard, defaultURL string) *webService {
	return &webService{
		logger:     mylog.New("checkoutsample"),
		controller: controller,
		card:       card,
		board:      board,
		defaultURL: defaultURL,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/", s.indexPage()).Methods("GET")
	router.HandleFunc("/checkout", s.startCheckout()).Methods("POST")
	router.HandleFunc("/mode", s.toggleMode()).Methods("POST")
	router.HandleFunc("/stash/{marker}", s.redirectEvent()).Methods("GET")
	router.HandleFunc("/status", s.status()).Methods("GET")
	router.HandleFunc("/sessions", s.sessions()).Methods("GET")

	return nil
}

func (s *webService) indexPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		status := s.currentStatus()
		status.Alert = s.board.TakeAlert()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := indexPageTemplate.Execute(w, indexPageInfo{
			DefaultURL: s.defaultURL,
			Status:     status,
		})
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInternalError(fmt.Errorf("error executing template: %s", err)))
			return
		}
	}
}

// startCheckout opens the checkout surface for the submitted url
func (s *webService) startCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		form, err := parseCheckoutForm(r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		mode, err := checkoutsession.ParseMode(form.Mode)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}
		if form.Mode == "" && s.card.ForceWebBasedCheckout() {
			mode = checkoutsession.ModeWebViewRedirect
		}

		previousStatus, _ := s.board.Status()
		s.board.SetStatus(statusOpening)

		err = s.controller.StartCheckout(c, form.URL, mode)
		if err != nil {
			s.board.SetStatus(previousStatus)
			switch {
			case errors.Is(err, checkoutsession.ErrEmptyURL):
				s.board.Alert(alertEmptyURL)
				responseWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(err))
			case errors.Is(err, checkoutsession.ErrInvalidURL):
				s.board.Alert(err.Error())
				responseWriter.WriteError(c, w, 4, myerrors.NewInvalidInputError(err))
			case errors.Is(err, checkoutsession.ErrSessionAlreadyActive):
				s.board.Alert(err.Error())
				responseWriter.WriteError(c, w, 5, myerrors.NewConflictError(err))
			case errors.Is(err, checkoutsession.ErrCheckoutUnavailable):
				s.board.Alert(err.Error())
				responseWriter.WriteError(c, w, 6, myerrors.NewUnavailableError(err))
			default:
				responseWriter.WriteError(c, w, 7, myerrors.NewInternalError(err))
			}
			return
		}

		presentation := s.card.Presentation()
		if presentation.Presented && presentation.Mode == checkoutsession.ModeWebViewRedirect {
			http.Redirect(w, r, presentation.URL, http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *webService) toggleMode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}
		form := modeForm{}
		err = formcodec.NewDecoder().Decode(&form, r.Form)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		s.card.SetForceWebBasedCheckout(form.WebView)
		s.board.SetStatus(fmt.Sprintf("Mode: %s", modeOf(form.WebView).Label()))

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// redirectEvent intercepts the deep-link the checkout page navigates to when it is done
func (s *webService) redirectEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		uri := myhttp.HostnameWithScheme(r) + r.URL.RequestURI()
		handled := s.controller.HandleRedirectEvent(c, uri)
		if !handled {
			responseWriter.WriteError(c, w, 1, myerrors.NewNotFoundError(fmt.Errorf("redirect %s is not a checkout result", r.URL.Path)))
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *webService) status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		responseWriter.Write(c, w, http.StatusOK, s.currentStatus())
	}
}

func (s *webService) sessions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		sessions, err := s.controller.Sessions(c)
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}

		responseWriter.Write(c, w, http.StatusOK, sessions)
	}
}

func (s *webService) currentStatus() Status {
	statusText, alert := s.board.Status()
	webView := s.card.ForceWebBasedCheckout()

	status := Status{
		State:        s.controller.State(),
		StatusText:   statusText,
		Alert:        alert,
		WebViewMode:  webView,
		ModeLabel:    modeOf(webView).Label(),
		Presentation: s.card.Presentation(),
	}
	if current, found := s.controller.Current(); found {
		status.Current = &current
	}
	if last, found := s.controller.LastSession(); found {
		status.LastSession = &last
	}

	return status
}

func parseCheckoutForm(r *http.Request) (checkoutForm, error) {
	err := r.ParseForm()
	if err != nil {
		return checkoutForm{}, err
	}

	form := checkoutForm{}
	err = formcodec.NewDecoder().Decode(&form, r.Form)
	if err != nil {
		return form, fmt.Errorf("error decoding form: %s", err)
	}

	return form, nil
}

func modeOf(webView bool) checkoutsession.Mode {
	if webView {
		return checkoutsession.ModeWebViewRedirect
	}
	return checkoutsession.ModeNativeUI
}
