package mypubsub

import "context"

//go:generate mockgen -source=api.go -package mypubsub -destination pubsub_mock.go PubSub
type PubSub interface {
	CreateTopic(c context.Context, topic string) error
	Publish(c context.Context, topic string, data string) error
}

// New returns a Cloud Pub/Sub client for the given project, or an in-memory fake when no project is set
func New(c context.Context, projectID string) (PubSub, func(), error) {
	if projectID == "" {
		return NewFakePubSub(), func() {}, nil
	}
	return newGcloudPubSub(c, projectID)
}
