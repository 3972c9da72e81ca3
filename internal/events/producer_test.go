package events

import (
	"bytes"
	"context"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("producer", Ordered, func() {
	Context("write", func() {
		It("writes successfully", func() {
			w := newTestWriter()
			kp := NewEventProducer(w, WithOutputTopic("jobs.status"))

			err := kp.Write(context.TODO(), JobStatusChangedKind, bytes.NewReader([]byte(`{"status":"applied"}`)))
			Expect(err).To(BeNil())
			Eventually(w.Len).Should(Equal(1))

			e := w.Get(0)
			Expect(e.Type()).To(Equal(JobStatusChangedKind))
			Expect(e.Source()).To(Equal(eventSource))
			Expect(e.Data()).To(MatchJSON(`{"status":"applied"}`))
			Expect(w.Topic()).To(Equal("jobs.status"))

			err = kp.Write(context.TODO(), JobStatusChangedKind, bytes.NewReader([]byte(`{}`)))
			Expect(err).To(BeNil())
			Eventually(w.Len).Should(Equal(2))

			Expect(kp.Close()).To(Succeed())
			Expect(w.closed).To(BeTrue())
		})

		It("flushes pending events on close", func() {
			w := newTestWriter()
			kp := NewEventProducer(w)

			for i := 0; i < 10; i++ {
				Expect(kp.Write(context.TODO(), JobStatusChangedKind, bytes.NewReader([]byte(`{}`)))).To(Succeed())
			}
			Expect(kp.Close()).To(Succeed())
			Expect(w.Len()).To(Equal(10))
			Expect(w.Topic()).To(Equal(defaultTopic))
		})
	})

	Context("writer", func() {
		It("builds the configured writer", func() {
			w, err := NewWriter(WriterStdout, "")
			Expect(err).To(BeNil())
			Expect(w).To(BeAssignableToTypeOf(&StdoutWriter{}))

			w, err = NewWriter(WriterNone, "")
			Expect(err).To(BeNil())
			Expect(w).To(BeAssignableToTypeOf(NoopWriter{}))

			_, err = NewWriter("kafka", "")
			Expect(err).ToNot(BeNil())
		})

		It("fails when nats is unreachable", func() {
			_, err := NewWriter(WriterNats, "nats://127.0.0.1:1")
			Expect(err).ToNot(BeNil())
		})
	})
})

type testwriter struct {
	mu       sync.Mutex
	messages []cloudevents.Event
	topic    string
	closed   bool
}

func newTestWriter() *testwriter {
	return &testwriter{messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, e)
	t.topic = topic
	return nil
}

func (t *testwriter) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

func (t *testwriter) Get(i int) cloudevents.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.messages[i]
}

func (t *testwriter) Topic() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.topic
}

func (t *testwriter) Close(_ context.Context) error {
	t.closed = true
	return nil
}
