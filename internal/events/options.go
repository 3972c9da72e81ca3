package events

type ProducerOptions func(e *EventProducer)

// WithOutputTopic sets the topic, or NATS subject, the events are written to.
func WithOutputTopic(topic string) ProducerOptions {
	return func(e *EventProducer) {
		if topic != "" {
			e.topic = topic
		}
	}
}
