package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	api "github.com/findajob/job-triage/api/v1alpha1"
	"github.com/findajob/job-triage/internal/client"
	"github.com/findajob/job-triage/pkg/requestid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("jobs client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	newServer := func(handler http.HandlerFunc) *client.JobsClient {
		server := httptest.NewServer(handler)
		DeferCleanup(server.Close)
		return client.NewJobsClient(server.URL+"/", 5*time.Second)
	}

	Describe("ListProcessedJobs", func() {
		It("sends the query parameters and decodes the page", func() {
			c := newServer(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodGet))
				Expect(r.URL.Path).To(Equal("/api/v1/processed-jobs"))
				q := r.URL.Query()
				Expect(q.Get("status")).To(Equal("new"))
				Expect(q.Get("employer")).To(Equal("Acme"))
				Expect(q.Get("sortBy")).To(Equal("status"))
				Expect(q.Get("page")).To(Equal("3"))
				Expect(q.Get("pageSize")).To(Equal("1"))
				Expect(q.Has("title")).To(BeFalse())
				Expect(r.Header.Get(requestid.Header)).ToNot(BeEmpty())

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(api.JobList{
					Items:    []api.JobView{{Id: 7, Title: "Engineer"}},
					Total:    9,
					Page:     3,
					PageSize: 1,
				})
			})

			list, err := c.ListProcessedJobs(ctx, client.ListQuery{Status: "new", Employer: "Acme", SortBy: "status", Page: 3, PageSize: 1})
			Expect(err).To(BeNil())
			Expect(list.Total).To(Equal(int64(9)))
			Expect(list.Items).To(HaveLen(1))
			Expect(list.Items[0].Id).To(Equal(int64(7)))
		})

		It("forwards the request id of the context", func() {
			c := newServer(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get(requestid.Header)).To(Equal("req-1"))
				_, _ = w.Write([]byte(`{"items":[],"total":0,"page":1,"pageSize":20}`))
			})

			_, err := c.ListProcessedJobs(requestid.ToContext(ctx, "req-1"), client.ListQuery{})
			Expect(err).To(BeNil())
		})

		It("returns an api error with the server message", func() {
			c := newServer(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"page must be at least 1","requestId":"srv-1"}`))
			})

			_, err := c.ListProcessedJobs(ctx, client.ListQuery{Page: -1})
			Expect(err).ToNot(BeNil())

			var apiErr *client.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(apiErr.Message).To(Equal("page must be at least 1"))
			Expect(apiErr.RequestID).To(Equal("srv-1"))
		})

		It("falls back to the raw body for non json errors", func() {
			c := newServer(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("upstream down"))
			})

			_, err := c.ListProcessedJobs(ctx, client.ListQuery{})
			var apiErr *client.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.Message).To(Equal("upstream down"))
		})

		It("times out", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			}))
			defer server.Close()

			c := client.NewJobsClient(server.URL, 20*time.Millisecond)
			_, err := c.ListProcessedJobs(ctx, client.ListQuery{})
			Expect(err).ToNot(BeNil())
		})
	})

	Describe("GetProcessedJob", func() {
		It("returns a not found api error", func() {
			c := newServer(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/v1/processed-jobs/42"))
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message":"processed job 42 not found"}`))
			})

			_, err := c.GetProcessedJob(ctx, 42)
			var apiErr *client.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("SetStatus", func() {
		It("puts the status", func() {
			c := newServer(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPut))
				Expect(r.URL.Path).To(Equal("/api/v1/processed-jobs/5/status"))
				Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))

				body, err := io.ReadAll(r.Body)
				Expect(err).To(BeNil())
				Expect(string(body)).To(MatchJSON(`{"status":"applied"}`))

				_ = json.NewEncoder(w).Encode(api.StatusUpdateResponse{JobId: 2, ProcessedJobId: 5, Status: "applied"})
			})

			resp, err := c.SetStatus(ctx, 5, "applied")
			Expect(err).To(BeNil())
			Expect(resp.JobId).To(Equal(int64(2)))
			Expect(resp.Status).To(Equal("applied"))
		})
	})

	Describe("ListJobStatuses", func() {
		It("decodes the statuses", func() {
			c := newServer(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/v1/job-statuses"))
				_, _ = w.Write([]byte(`["new","applied"]`))
			})

			statuses, err := c.ListJobStatuses(ctx)
			Expect(err).To(BeNil())
			Expect(statuses).To(Equal(api.JobStatusList{"new", "applied"}))
		})
	})

	Describe("HealthCheck", func() {
		It("fails on non 200", func() {
			c := newServer(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			})

			Expect(c.HealthCheck(ctx)).ToNot(Succeed())
		})
	})
})

var _ = Describe("client config", func() {
	It("persists and parses the config", func() {
		root := GinkgoT().TempDir()
		GinkgoT().Setenv(client.TestRootDirEnvKey, root)

		Expect(client.WriteConfig("/conf/client.yaml", "http://localhost:8080")).To(Succeed())

		cfg, err := client.ParseConfigFile("/conf/client.yaml")
		Expect(err).To(BeNil())
		Expect(cfg.Service.Server).To(Equal("http://localhost:8080"))
	})

	It("rejects a server without hostname", func() {
		cfg := client.NewDefault()
		cfg.Service.Server = "not a url"
		Expect(cfg.Validate()).ToNot(Succeed())

		cfg.Service.Server = ""
		Expect(cfg.Validate()).ToNot(Succeed())
	})
})
