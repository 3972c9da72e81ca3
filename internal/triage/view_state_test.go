package triage_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/findajob/job-triage/internal/triage"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("view stores", func() {
	Context("file", func() {
		It("returns nil before anything was saved", func() {
			store := triage.NewFileViewStore(filepath.Join(GinkgoT().TempDir(), "view.yaml"))
			state, err := store.Load(context.TODO())
			Expect(err).To(BeNil())
			Expect(state).To(BeNil())
		})

		It("round trips the view state as yaml", func() {
			path := filepath.Join(GinkgoT().TempDir(), "nested", "view.yaml")
			store := triage.NewFileViewStore(path)

			view := triage.ViewState{Filter: triage.Filter{Status: "new", Seniority: "Associate"}, SortBy: "seniority", Order: "asc", Page: 4}
			Expect(store.Save(context.TODO(), view)).To(Succeed())

			contents, err := os.ReadFile(path)
			Expect(err).To(BeNil())
			Expect(string(contents)).To(ContainSubstring("sortBy: seniority"))

			loaded, err := store.Load(context.TODO())
			Expect(err).To(BeNil())
			Expect(*loaded).To(Equal(view))
		})

		It("fails on a corrupt file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "view.yaml")
			Expect(os.WriteFile(path, []byte("page: [1"), 0600)).To(Succeed())

			_, err := triage.NewFileViewStore(path).Load(context.TODO())
			Expect(err).ToNot(BeNil())
		})
	})

	Context("redis", func() {
		It("rejects an invalid url", func() {
			_, err := triage.NewRedisViewStore("localhost:6379", "")
			Expect(err).ToNot(BeNil())
		})

		It("fails when redis is unreachable", func() {
			store, err := triage.NewRedisViewStore("redis://127.0.0.1:1/0", "")
			Expect(err).To(BeNil())
			defer store.Close()

			Expect(store.Save(context.TODO(), triage.ViewState{Page: 1})).ToNot(Succeed())
		})

		It("round trips the view state", func() {
			url := os.Getenv("TRIAGE_TEST_REDIS_URL")
			if url == "" {
				Skip("TRIAGE_TEST_REDIS_URL not set")
			}

			store, err := triage.NewRedisViewStore(url, "job-triage:test-view-state")
			Expect(err).To(BeNil())
			defer store.Close()

			view := triage.ViewState{Filter: triage.Filter{Employer: "acme"}, Page: 2}
			Expect(store.Save(context.TODO(), view)).To(Succeed())

			loaded, err := store.Load(context.TODO())
			Expect(err).To(BeNil())
			Expect(*loaded).To(Equal(view))
		})
	})
})
