package store_test

import (
	"context"
	"fmt"

	"github.com/findajob/job-triage/internal/store"
	"github.com/findajob/job-triage/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func viewIDs(views model.JobViewList) []int64 {
	ids := make([]int64, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

var _ = Describe("processed job store", Ordered, func() {
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
		gormdb.Exec("DELETE FROM processed_jobs;")
		gormdb.Exec("DELETE FROM jobs;")
	})

	insertJob := func(id int64, title, employer, seniority, status, createdAt string) {
		tx := gormdb.Exec(fmt.Sprintf(insertJobStm, id, fmt.Sprintf("ext-%d", id), title, employer, seniority, status, createdAt, createdAt))
		Expect(tx.Error).To(BeNil())
	}

	insertProcessed := func(id, jobID int64, processingStatus string) {
		tx := gormdb.Exec(fmt.Sprintf(insertProcessedJobStm, id, jobID, "run-1", processingStatus, "2024-03-01 00:00:00", "2024-03-01 00:00:00"))
		Expect(tx.Error).To(BeNil())
	}

	Context("visibility", func() {
		It("lists completed processed jobs only", func() {
			insertJob(1, "Go Engineer", "Acme", "Associate", "new", "2024-01-01 10:00:00")
			insertJob(2, "SRE", "Initech", "Associate", "new", "2024-01-02 10:00:00")
			insertJob(3, "DBA", "Globex", "Associate", "new", "2024-01-03 10:00:00")
			insertProcessed(10, 1, "completed")
			insertProcessed(20, 2, "pending")
			insertProcessed(30, 3, "failed")

			views, err := s.ProcessedJob().List(context.TODO(), store.NewProcessedJobQueryFilter(), store.NewProcessedJobQueryOptions())
			Expect(err).To(BeNil())
			Expect(views).To(HaveLen(1))
			Expect(views[0].ID).To(Equal(int64(10)))
			Expect(views[0].JobID).To(Equal(int64(1)))
			Expect(views[0].ExternalJobID).To(Equal("ext-1"))
			Expect(views[0].Title).To(Equal("Go Engineer"))
			Expect(views[0].Employer).To(Equal("Acme"))
			Expect(views[0].Status).To(Equal(model.JobStatusNew))
			Expect(views[0].ProcessingStatus).To(Equal(model.ProcessingStatusCompleted))
			Expect(views[0].RunID).To(Equal("run-1"))

			total, err := s.ProcessedJob().Count(context.TODO(), store.NewProcessedJobQueryFilter())
			Expect(err).To(BeNil())
			Expect(total).To(Equal(int64(1)))
		})

		It("surfaces only the newest completed record of a job", func() {
			insertJob(1, "Go Engineer", "Acme", "Associate", "new", "2024-01-01 10:00:00")
			insertProcessed(10, 1, "completed")
			insertProcessed(11, 1, "completed")
			insertProcessed(12, 1, "failed")

			views, err := s.ProcessedJob().List(context.TODO(), nil, nil)
			Expect(err).To(BeNil())
			Expect(viewIDs(views)).To(Equal([]int64{11}))

			_, err = s.ProcessedJob().Get(context.TODO(), 10)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("gets a visible processed job", func() {
			insertJob(1, "Go Engineer", "Acme", "Associate", "applied", "2024-01-01 10:00:00")
			insertProcessed(10, 1, "completed")

			view, err := s.ProcessedJob().Get(context.TODO(), 10)
			Expect(err).To(BeNil())
			Expect(view.JobID).To(Equal(int64(1)))
			Expect(view.Status).To(Equal(model.JobStatusApplied))
		})

		It("does not get a pending processed job", func() {
			insertJob(1, "Go Engineer", "Acme", "Associate", "new", "2024-01-01 10:00:00")
			insertProcessed(10, 1, "pending")

			_, err := s.ProcessedJob().Get(context.TODO(), 10)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("resolves the job id of any processed job", func() {
			insertJob(1, "Go Engineer", "Acme", "Associate", "new", "2024-01-01 10:00:00")
			insertProcessed(10, 1, "pending")

			jobID, err := s.ProcessedJob().GetJobID(context.TODO(), 10)
			Expect(err).To(BeNil())
			Expect(jobID).To(Equal(int64(1)))

			_, err = s.ProcessedJob().GetJobID(context.TODO(), 404)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("filters", func() {
		BeforeEach(func() {
			insertJob(1, "Senior Go Engineer", "Acme Corp", "Mid-Senior level", "new", "2024-01-01 10:00:00")
			insertJob(2, "Backend Developer", "ACME Labs", "Associate", "applied", "2024-01-02 10:00:00")
			insertJob(3, "Go_Developer 100%", "Initech", "associate", "new", "2024-01-03 10:00:00")
			insertJob(4, "GoXDeveloper", "Globex", "Director", "user_rejected", "2024-01-04 10:00:00")
			insertProcessed(10, 1, "completed")
			insertProcessed(20, 2, "completed")
			insertProcessed(30, 3, "completed")
			insertProcessed(40, 4, "completed")
		})

		list := func(filter *store.ProcessedJobQueryFilter) []int64 {
			views, err := s.ProcessedJob().List(context.TODO(), filter, store.NewProcessedJobQueryOptions().WithSort(store.SortByCreatedTime, store.SortAscending))
			Expect(err).To(BeNil())
			return viewIDs(views)
		}

		It("filters by status", func() {
			Expect(list(store.NewProcessedJobQueryFilter().ByStatus(model.JobStatusNew))).To(Equal([]int64{10, 30}))
		})

		It("filters by seniority ignoring case", func() {
			Expect(list(store.NewProcessedJobQueryFilter().BySeniority("ASSOCIATE"))).To(Equal([]int64{20, 30}))
		})

		It("filters by employer substring ignoring case", func() {
			Expect(list(store.NewProcessedJobQueryFilter().ByEmployerLike("acme"))).To(Equal([]int64{10, 20}))
		})

		It("filters by title substring ignoring case", func() {
			Expect(list(store.NewProcessedJobQueryFilter().ByTitleLike("DEVELOPER"))).To(Equal([]int64{20, 30, 40}))
		})

		It("treats like wildcards literally", func() {
			Expect(list(store.NewProcessedJobQueryFilter().ByTitleLike("go_"))).To(Equal([]int64{30}))
			Expect(list(store.NewProcessedJobQueryFilter().ByTitleLike("100%"))).To(Equal([]int64{30}))
			Expect(list(store.NewProcessedJobQueryFilter().ByTitleLike("%"))).To(Equal([]int64{30}))
		})

		It("combines filters with and", func() {
			filter := store.NewProcessedJobQueryFilter().ByEmployerLike("acme").ByStatus(model.JobStatusApplied)
			Expect(list(filter)).To(Equal([]int64{20}))

			total, err := s.ProcessedJob().Count(context.TODO(), filter)
			Expect(err).To(BeNil())
			Expect(total).To(Equal(int64(1)))
		})
	})

	Context("sorting", func() {
		BeforeEach(func() {
			insertJob(1, "beta", "Zeta", "Director", "applied", "2024-01-01 10:00:00")
			insertJob(2, "Alpha", "yankee", "Internship", "offer_rejected", "2024-01-02 10:00:00")
			insertJob(3, "gamma", "Xray", "Not Applicable", "new", "2024-01-03 10:00:00")
			insertJob(4, "Delta", "whiskey", "Mid-Senior level", "applied", "2024-01-04 10:00:00")
			insertProcessed(10, 1, "completed")
			insertProcessed(20, 2, "completed")
			insertProcessed(30, 3, "completed")
			insertProcessed(40, 4, "completed")
		})

		sorted := func(field store.SortField, dir store.SortDirection) []int64 {
			views, err := s.ProcessedJob().List(context.TODO(), nil, store.NewProcessedJobQueryOptions().WithSort(field, dir))
			Expect(err).To(BeNil())
			return viewIDs(views)
		}

		It("sorts by created time", func() {
			Expect(sorted(store.SortByCreatedTime, store.SortDescending)).To(Equal([]int64{40, 30, 20, 10}))
			Expect(sorted(store.SortByCreatedTime, store.SortAscending)).To(Equal([]int64{10, 20, 30, 40}))
		})

		It("sorts by status rank with created time tie-break", func() {
			Expect(sorted(store.SortByStatus, store.SortAscending)).To(Equal([]int64{30, 10, 40, 20}))
		})

		It("reverses the status order exactly", func() {
			asc := sorted(store.SortByStatus, store.SortAscending)
			desc := sorted(store.SortByStatus, store.SortDescending)
			reversed := make([]int64, len(asc))
			for i := range asc {
				reversed[len(asc)-1-i] = asc[i]
			}
			Expect(desc).To(Equal(reversed))
		})

		It("sorts by seniority rank with unranked last", func() {
			Expect(sorted(store.SortBySeniority, store.SortAscending)).To(Equal([]int64{20, 40, 10, 30}))
		})

		It("sorts by title ignoring case", func() {
			Expect(sorted(store.SortByTitle, store.SortAscending)).To(Equal([]int64{20, 10, 40, 30}))
		})

		It("sorts by employer ignoring case", func() {
			Expect(sorted(store.SortByEmployer, store.SortDescending)).To(Equal([]int64{10, 20, 30, 40}))
		})

		It("paginates after sorting", func() {
			opts := store.NewProcessedJobQueryOptions().WithSort(store.SortByCreatedTime, store.SortAscending).WithLimit(2).WithOffset(2)
			views, err := s.ProcessedJob().List(context.TODO(), nil, opts)
			Expect(err).To(BeNil())
			Expect(viewIDs(views)).To(Equal([]int64{30, 40}))

			total, err := s.ProcessedJob().Count(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(total).To(Equal(int64(4)))
		})
	})
})
