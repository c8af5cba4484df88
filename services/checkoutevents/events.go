package checkoutevents

const (
	TopicName             = "checkout"
	checkoutStartedName   = TopicName + ".started"
	checkoutResolvedName  = TopicName + ".resolved"
	checkoutOptInName     = TopicName + ".optin"
	checkoutAbandonedName = TopicName + ".abandoned"
)

type CheckoutStarted struct {
	SessionUID string
	TargetURL  string
	Mode       string
}

func (e CheckoutStarted) GetEventTypeName() string {
	return checkoutStartedName
}

func (e CheckoutStarted) GetAggregateName() string {
	return e.SessionUID
}

// CheckoutAbandoned is emitted when the checkout surface could not be opened for a started session
type CheckoutAbandoned struct {
	SessionUID string
	Reason     string
}

func (e CheckoutAbandoned) GetEventTypeName() string {
	return checkoutAbandonedName
}

func (e CheckoutAbandoned) GetAggregateName() string {
	return e.SessionUID
}

type CheckoutResolved struct {
	SessionUID     string
	Outcome        string
	ResolvedBy     string
	DurationMillis int64
}

func (e CheckoutResolved) GetEventTypeName() string {
	return checkoutResolvedName
}

func (e CheckoutResolved) GetAggregateName() string {
	return e.SessionUID
}

type OptInReceived struct {
	SessionUID string
	Kind       string
}

func (e OptInReceived) GetEventTypeName() string {
	return checkoutOptInName
}

func (e OptInReceived) GetAggregateName() string {
	return e.SessionUID
}
