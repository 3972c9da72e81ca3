package store_test

import (
	"context"
	"fmt"
	"time"

	"github.com/findajob/job-triage/internal/store"
	"github.com/findajob/job-triage/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("job store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		s, gormdb = newTestStore()
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM jobs;")
	})

	Context("get", func() {
		It("successfully gets a job", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, 7, "ext-7", "Platform Engineer", "Initech", "Mid-Senior level", "applied", "2024-02-01 08:00:00", "2024-02-01 08:00:00"))
			Expect(tx.Error).To(BeNil())

			job, err := s.Job().Get(context.TODO(), 7)
			Expect(err).To(BeNil())
			Expect(job.ExternalID).To(Equal("ext-7"))
			Expect(job.Title).To(Equal("Platform Engineer"))
			Expect(job.Employer).To(Equal("Initech"))
			Expect(job.Seniority).To(Equal("Mid-Senior level"))
			Expect(job.Status).To(Equal(model.JobStatusApplied))
		})

		It("fails with not found", func() {
			_, err := s.Job().Get(context.TODO(), 404)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("update status", func() {
		It("writes status and a newer updated_at", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, 1, "ext-1", "Go Engineer", "Acme", "Associate", "new", "2024-01-01 10:00:00", "2024-01-01 10:00:00"))
			Expect(tx.Error).To(BeNil())

			before := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

			err := s.Job().UpdateStatus(context.TODO(), 1, model.JobStatusInterviewScheduled)
			Expect(err).To(BeNil())

			job, err := s.Job().Get(context.TODO(), 1)
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal(model.JobStatusInterviewScheduled))
			Expect(job.UpdatedAt.After(before)).To(BeTrue())
			Expect(job.Title).To(Equal("Go Engineer"))
			Expect(job.Employer).To(Equal("Acme"))
			Expect(job.ExternalID).To(Equal("ext-1"))
		})

		It("touches only the target row", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, 1, "ext-1", "Go Engineer", "Acme", "Associate", "new", "2024-01-01 10:00:00", "2024-01-01 10:00:00"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobStm, 2, "ext-2", "SRE", "Acme", "Associate", "new", "2024-01-01 10:00:00", "2024-01-01 10:00:00"))
			Expect(tx.Error).To(BeNil())

			err := s.Job().UpdateStatus(context.TODO(), 2, model.JobStatusOfferReceived)
			Expect(err).To(BeNil())

			var count int
			tx = gormdb.Raw("SELECT COUNT(*) FROM jobs WHERE status = 'new';").Scan(&count)
			Expect(tx.Error).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("fails with not found when no row matches", func() {
			err := s.Job().UpdateStatus(context.TODO(), 404, model.JobStatusApplied)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})
})
