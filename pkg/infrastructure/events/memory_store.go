package events

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/sirupsen/logrus"
)

// InMemoryEventStore keeps events for the lifetime of the process.
// Subscribers are notified asynchronously; handler errors are logged.
type subscription struct {
	id      SubscriptionID
	handler EventHandler
}

type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers map[string][]subscription
	mutex       sync.RWMutex
	logger      logrus.FieldLogger
	wg          sync.WaitGroup
}

func NewInMemoryEventStore(logger logrus.FieldLogger) *InMemoryEventStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]subscription),
		logger:      logger,
	}
}

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.streams[streamID] == nil {
		s.streams[streamID] = make([]Event, 0)
	}

	eventWithVersion := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}

	s.streams[streamID] = append(s.streams[streamID], eventWithVersion)

	s.wg.Add(1)
	go s.notifySubscribers(eventWithVersion)

	return nil
}

func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}

	if fromVersion < 1 {
		fromVersion = 1
	}

	if fromVersion > len(events) {
		return []Event{}, nil
	}

	return events[fromVersion-1:], nil
}

// Subscribe registers handler for eventTypes and returns the id Unsubscribe takes
func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) (SubscriptionID, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := SubscriptionID(uuid.New())
	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], subscription{id: id, handler: handler})
	}

	return id, nil
}

// Unsubscribe removes the subscription from every event type it was registered for
func (s *InMemoryEventStore) Unsubscribe(id SubscriptionID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	found := false
	for eventType, subs := range s.subscribers {
		kept := make([]subscription, 0, len(subs))
		for _, sub := range subs {
			if sub.id == id {
				found = true
				continue
			}
			kept = append(kept, sub)
		}
		s.subscribers[eventType] = kept
	}

	if !found {
		return fmt.Errorf("subscription %s not found", id)
	}
	return nil
}

// Wait blocks until every subscriber notification dispatched so far has returned
func (s *InMemoryEventStore) Wait() {
	s.wg.Wait()
}

func (s *InMemoryEventStore) notifySubscribers(event Event) {
	defer s.wg.Done()

	s.mutex.RLock()
	subs := s.subscribers[event.Type()]
	s.mutex.RUnlock()

	for _, sub := range subs {
		handler := sub.handler
		if !handler.CanHandle(event.Type()) {
			continue
		}
		if err := handler.Handle(event); err != nil {
			s.logger.WithFields(logrus.Fields{
				"event_type": event.Type(),
				"stream":     event.StreamID(),
			}).WithError(err).Warn("event handler failed")
		}
	}
}
