package triage_test

import (
	"context"
	"errors"

	"github.com/findajob/job-triage/internal/triage"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("triage session", func() {
	var (
		ctx  context.Context
		fake *fakeClient
	)

	BeforeEach(func() {
		ctx = context.Background()
		fake = newFakeClient(3)
	})

	Context("navigation", func() {
		It("starts on the first item", func() {
			s := triage.NewSession(fake, nil, triage.ViewState{}, triage.Options{})
			Expect(s.Snapshot().State).To(Equal(triage.StateLoading))

			s.Start(ctx)

			snap := s.Snapshot()
			Expect(snap.State).To(Equal(triage.StateReady))
			Expect(snap.Item.Id).To(Equal(int64(10)))
			Expect(snap.Position).To(Equal(0))
			Expect(snap.Total).To(Equal(int64(3)))
			Expect(fake.queries[0].PageSize).To(Equal(1))
		})

		It("passes the view query to the client", func() {
			view := triage.ViewState{Filter: triage.Filter{Status: "new", Employer: "acme"}, SortBy: "status", Order: "asc"}
			s := triage.NewSession(fake, nil, view, triage.Options{})
			s.Start(ctx)

			q := fake.queries[0]
			Expect(q.Status).To(Equal("new"))
			Expect(q.Employer).To(Equal("acme"))
			Expect(q.SortBy).To(Equal("status"))
			Expect(q.Order).To(Equal("asc"))
			Expect(q.Page).To(Equal(1))
		})

		It("advances and regresses within bounds", func() {
			s := triage.NewSession(fake, nil, triage.ViewState{}, triage.Options{})
			s.Start(ctx)

			s.Regress(ctx)
			Expect(s.Snapshot().Position).To(Equal(0))
			Expect(fake.queries).To(HaveLen(1))

			s.Advance(ctx)
			s.Advance(ctx)
			Expect(s.Snapshot().Item.Id).To(Equal(int64(30)))

			s.Advance(ctx)
			Expect(s.Snapshot().Position).To(Equal(2))
			Expect(fake.queries).To(HaveLen(3))

			s.Regress(ctx)
			snap := s.Snapshot()
			Expect(snap.Position).To(Equal(1))
			Expect(snap.Item.Id).To(Equal(int64(20)))
		})

		It("reports empty results", func() {
			fake = newFakeClient(0)
			s := triage.NewSession(fake, nil, triage.ViewState{}, triage.Options{})
			s.Start(ctx)

			snap := s.Snapshot()
			Expect(snap.State).To(Equal(triage.StateEmpty))
			Expect(snap.Item).To(BeNil())
			Expect(snap.Total).To(BeZero())

			s.Advance(ctx)
			Expect(fake.queries).To(HaveLen(1))
		})

		It("clamps the cursor when items vanished", func() {
			s := triage.NewSession(fake, nil, triage.ViewState{Page: 7}, triage.Options{})
			s.Start(ctx)

			snap := s.Snapshot()
			Expect(snap.State).To(Equal(triage.StateReady))
			Expect(snap.Position).To(Equal(2))
			Expect(snap.Item.Id).To(Equal(int64(30)))
			Expect(fake.queries).To(HaveLen(2))
			Expect(fake.queries[1].Page).To(Equal(3))
		})

		It("turns fetch failures into the error state and recovers on reload", func() {
			fake.setListErr(errors.New("connection refused"))
			s := triage.NewSession(fake, nil, triage.ViewState{}, triage.Options{})
			s.Start(ctx)

			snap := s.Snapshot()
			Expect(snap.State).To(Equal(triage.StateError))
			Expect(snap.Message).To(ContainSubstring("connection refused"))

			fake.setListErr(nil)
			s.Reload(ctx)
			Expect(s.Snapshot().State).To(Equal(triage.StateReady))
			Expect(s.Snapshot().Message).To(BeEmpty())
		})
	})

	Context("status writes", func() {
		It("marks applied and advances", func() {
			s := triage.NewSession(fake, nil, triage.ViewState{}, triage.Options{})
			s.Start(ctx)

			s.MarkApplied(ctx)
			Expect(fake.Writes()).To(Equal([]write{{id: 10, status: "applied"}}))
			Expect(s.Snapshot().Item.Id).To(Equal(int64(20)))

			s.MarkRejected(ctx)
			Expect(fake.Writes()[1]).To(Equal(write{id: 20, status: "user_rejected"}))
			Expect(s.Snapshot().Item.Id).To(Equal(int64(30)))
		})

		It("stays on the last item after marking it", func() {
			s := triage.NewSession(fake, nil, triage.ViewState{Page: 3}, triage.Options{})
			s.Start(ctx)

			s.MarkApplied(ctx)
			Expect(fake.Writes()).To(HaveLen(1))
			Expect(s.Snapshot().Position).To(Equal(2))
		})

		It("advances past a failed write and publishes it", func() {
			fake.setErr = errors.New("boom")
			s := triage.NewSession(fake, nil, triage.ViewState{}, triage.Options{EventBuffer: 10})
			s.Start(ctx)

			s.MarkApplied(ctx)
			Expect(s.Snapshot().Item.Id).To(Equal(int64(20)))

			var failed []triage.Event
			for len(s.Events()) > 0 {
				e := <-s.Events()
				if e.Kind == triage.EventStatusWriteFailed {
					failed = append(failed, e)
				}
			}
			Expect(failed).To(HaveLen(1))
			Expect(failed[0].ProcessedJobID).To(Equal(int64(10)))
			Expect(failed[0].Status).To(Equal("applied"))
			Expect(failed[0].Err).To(MatchError("boom"))
		})

		It("stays on the item with strict writes", func() {
			fake.setErr = errors.New("boom")
			s := triage.NewSession(fake, nil, triage.ViewState{}, triage.Options{StrictWrites: true})
			s.Start(ctx)

			s.MarkRejected(ctx)
			Expect(s.Snapshot().Item.Id).To(Equal(int64(10)))
			Expect(fake.queries).To(HaveLen(1))
		})

		It("does not write without a current item", func() {
			fake = newFakeClient(0)
			s := triage.NewSession(fake, nil, triage.ViewState{}, triage.Options{})
			s.Start(ctx)

			s.MarkApplied(ctx)
			Expect(fake.Writes()).To(BeEmpty())
		})
	})

	Context("concurrency", func() {
		It("applies the last issued navigation only", func() {
			s := triage.NewSession(fake, nil, triage.ViewState{}, triage.Options{})
			s.Start(ctx)

			release := make(chan struct{})
			fake.mu.Lock()
			fake.block[2] = release
			fake.mu.Unlock()

			done := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				defer close(done)
				s.Advance(ctx)
			}()
			Eventually(fake.started).Should(Receive(Equal(2)))
			Expect(s.Snapshot().State).To(Equal(triage.StateLoading))

			// issued after the blocked fetch, answered before it
			s.Advance(ctx)
			Expect(s.Snapshot().Item.Id).To(Equal(int64(30)))

			close(release)
			Eventually(done).Should(BeClosed())

			snap := s.Snapshot()
			Expect(snap.State).To(Equal(triage.StateReady))
			Expect(snap.Position).To(Equal(2))
			Expect(snap.Item.Id).To(Equal(int64(30)))
		})
	})

	Context("view state", func() {
		It("restores the saved view and saves after navigation", func() {
			store := &memoryViewStore{state: &triage.ViewState{Filter: triage.Filter{Title: "go"}, Page: 2}}
			s := triage.NewSession(fake, store, triage.ViewState{}, triage.Options{})
			s.Start(ctx)

			Expect(fake.queries[0].Title).To(Equal("go"))
			Expect(s.Snapshot().Item.Id).To(Equal(int64(20)))

			s.Advance(ctx)
			saved, saves := store.Saved()
			Expect(saves).To(Equal(2))
			Expect(saved.Page).To(Equal(3))
			Expect(saved.Filter.Title).To(Equal("go"))
			Expect(s.View().Page).To(Equal(3))
		})

		It("keeps going when the store fails", func() {
			store := &memoryViewStore{saveErr: errUnavailable}
			s := triage.NewSession(fake, store, triage.ViewState{}, triage.Options{})
			s.Start(ctx)
			s.Advance(ctx)

			Expect(s.Snapshot().Item.Id).To(Equal(int64(20)))
			_, saves := store.Saved()
			Expect(saves).To(Equal(2))
		})

		It("does not save failed fetches", func() {
			store := &memoryViewStore{}
			fake.setListErr(errors.New("down"))
			s := triage.NewSession(fake, store, triage.ViewState{}, triage.Options{})
			s.Start(ctx)

			_, saves := store.Saved()
			Expect(saves).To(BeZero())
		})
	})
})
