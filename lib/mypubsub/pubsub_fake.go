package mypubsub

import (
	"context"
	"sync"
)

// FakePubSub keeps published messages in memory, per topic
type FakePubSub struct {
	sync.Mutex
	Topics map[string][]string
}

func NewFakePubSub() *FakePubSub {
	return &FakePubSub{
		Topics: map[string][]string{},
	}
}

func (ps *FakePubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	if _, exists := ps.Topics[topic]; !exists {
		ps.Topics[topic] = []string{}
	}
	return nil
}

func (ps *FakePubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.Topics[topic] = append(ps.Topics[topic], data)
	return nil
}

func (ps *FakePubSub) Published(topic string) []string {
	ps.Lock()
	defer ps.Unlock()

	return append([]string{}, ps.Topics[topic]...)
}
