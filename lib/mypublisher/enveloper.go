package mypublisher

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/stashpaysample/lib/myevents"
	"github.com/MarcGrol/stashpaysample/lib/mytime"
)

type enveloper struct {
	nower mytime.Nower
}

func newEnveloper(nower mytime.Nower) enveloper {
	return enveloper{
		nower: nower,
	}
}

func (e enveloper) do(topic string, event myevents.Event) (myevents.EventEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return myevents.EventEnvelope{}, fmt.Errorf("error marshalling event-payload: %s", err)
	}

	envelope := myevents.EventEnvelope{
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	}
	// The uid is content based and excludes the timestamp: publishing the same event twice is idempotent
	envelope.UID = checksum(envelope)
	envelope.CreatedAt = e.nower.Now()

	return envelope, nil
}

func checksum(envelope myevents.EventEnvelope) string {
	sum := sha256.Sum256([]byte(envelope.Topic + "|" + envelope.AggregateUID + "|" + envelope.EventTypeName + "|" + envelope.EventPayload))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
