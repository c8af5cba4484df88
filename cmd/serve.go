package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/MarcGrol/stashpaysample/lib/myconfig"
	"github.com/MarcGrol/stashpaysample/lib/myevents"
	"github.com/MarcGrol/stashpaysample/lib/mylog"
	"github.com/MarcGrol/stashpaysample/lib/mymetrics"
	"github.com/MarcGrol/stashpaysample/lib/mypublisher"
	"github.com/MarcGrol/stashpaysample/lib/mypubsub"
	"github.com/MarcGrol/stashpaysample/lib/myqueue"
	"github.com/MarcGrol/stashpaysample/lib/mystore"
	"github.com/MarcGrol/stashpaysample/lib/mytime"
	"github.com/MarcGrol/stashpaysample/lib/myuuid"
	"github.com/MarcGrol/stashpaysample/services/checkoutevents"
	"github.com/MarcGrol/stashpaysample/services/checkoutsample"
	"github.com/MarcGrol/stashpaysample/services/checkoutsession"
	"github.com/MarcGrol/stashpaysample/services/stashpay"
	"github.com/MarcGrol/stashpaysample/services/warmup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sample web app",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := myconfig.Load()
	if err != nil {
		return err
	}
	mylog.Configure(cfg.GoogleCloudProject, cfg.LogLevel)
	logger := mylog.New("serve")

	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := mux.NewRouter()

	publisher, cleanup, err := createPublisher(c, cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	publisher.RegisterEndpoints(c, router)

	metrics := mymetrics.New(cfg.MetricsNamespace)
	metrics.RegisterEndpoints(router)

	history, historyCleanup, err := mystore.New[checkoutsession.CheckoutSession](c, cfg.GoogleCloudProject)
	if err != nil {
		return fmt.Errorf("error creating session store: %s", err)
	}
	defer historyCleanup()
	warmup.NewService(history).RegisterEndpoints(c, router)

	nower := mytime.RealNower{}
	board := checkoutsample.NewStatusBoard()
	card := stashpay.NewCard(nower, cfg.Theme, cfg.ForceWebBasedCheckout)
	controller := checkoutsession.NewController(card, board, nower, myuuid.RealUUIDer{}, history, publisher, metrics, cfg.SessionTimeout)
	card.SetDelegate(controller)

	go func() {
		err := controller.Run(c)
		if err != nil {
			logger.Log(c, "", mylog.SeverityError, "Error running checkout session controller: %s", err)
			stop()
		}
	}()

	err = stashpay.NewWebService(card).RegisterEndpoints(c, router)
	if err != nil {
		return fmt.Errorf("error registering bridge endpoints: %s", err)
	}
	err = checkoutsample.NewWebService(controller, card, board, cfg.DefaultCheckoutURL).RegisterEndpoints(c, router)
	if err != nil {
		return fmt.Errorf("error registering sample endpoints: %s", err)
	}

	return startWebServerBlocking(c, logger, cfg.Address(), router)
}

func createPublisher(c context.Context, cfg myconfig.Config) (*mypublisher.TransactionalPublisher, func(), error) {
	outbox, outboxCleanup, err := mystore.New[myevents.EventEnvelope](c, cfg.GoogleCloudProject)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating outbox: %s", err)
	}
	pubsub, pubsubCleanup, err := mypubsub.New(c, cfg.GoogleCloudProject)
	if err != nil {
		outboxCleanup()
		return nil, nil, fmt.Errorf("error creating pubsub: %s", err)
	}
	queue, queueCleanup, err := myqueue.New(c, myqueue.Target{
		ProjectID:  cfg.GoogleCloudProject,
		LocationID: cfg.LocationID,
		QueueName:  cfg.QueueName,
	})
	if err != nil {
		pubsubCleanup()
		outboxCleanup()
		return nil, nil, fmt.Errorf("error creating task queue: %s", err)
	}
	cleanup := func() {
		queueCleanup()
		pubsubCleanup()
		outboxCleanup()
	}

	publisher := mypublisher.New(outbox, pubsub, queue, mytime.RealNower{})
	err = publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	return publisher, cleanup, nil
}

func startWebServerBlocking(c context.Context, logger mylog.Logger, address string, router *mux.Router) error {
	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Log(c, "", mylog.SeverityInfo, "Starting webserver on %s (try http://localhost%s)", address, address)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting webserver on %s: %s", address, err)
		}
		return nil
	case <-c.Done():
	}

	logger.Log(context.Background(), "", mylog.SeverityInfo, "Shutting down webserver")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
