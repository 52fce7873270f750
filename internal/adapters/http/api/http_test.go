package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/halcyonfi/verdict/internal/adapters/http/api"
	"github.com/halcyonfi/verdict/internal/adapters/repository"
	app "github.com/halcyonfi/verdict/internal/app"
	"github.com/halcyonfi/verdict/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// newTestMux starts a service and registers the API routes on a fresh mux.
func newTestMux(ctx context.Context, opts ...app.Option) (*http.ServeMux, *app.Service) {
	base := []app.Option{
		app.WithWorkerCount(2),
		app.WithQueueSize(16),
	}
	svc := app.New(append(base, opts...)...)
	if err := svc.Start(ctx); err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux, svc
}

func doJSON(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

const validAssessBody = `{
	"full_name": "Ada Lovelace",
	"ssn": "123-45-6789",
	"annual_income": 120000,
	"total_assets": 650000,
	"company_name": "Analytical Engines",
	"industry_sector": "technology"
}`

func TestAssessEndpoint(t *testing.T) {
	Convey("Given the assess endpoint", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		mux, svc := newTestMux(ctx)
		defer svc.Stop()

		Convey("When posting a valid borrower", func() {
			rec := doJSON(mux, http.MethodPost, "/assess", validAssessBody)

			Convey("Then it should return the full assessment", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body map[string]json.RawMessage
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body, ShouldContainKey, "credit")
				So(body, ShouldContainKey, "esg")
				So(body, ShouldContainKey, "income_assets")
				So(body, ShouldContainKey, "composite")
			})
		})

		Convey("When posting malformed JSON", func() {
			rec := doJSON(mux, http.MethodPost, "/assess", `{"full_name": `)

			Convey("Then it should reject the request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting an invalid SSN", func() {
			rec := doJSON(mux, http.MethodPost, "/assess",
				`{"full_name": "Ada", "ssn": "12-34", "annual_income": 1, "total_assets": 1}`)

			Convey("Then it should reject the request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "ssn")
			})
		})

		Convey("When posting negative amounts", func() {
			rec := doJSON(mux, http.MethodPost, "/assess",
				`{"full_name": "Ada", "ssn": "123456789", "annual_income": -1, "total_assets": 0}`)

			Convey("Then it should reject the request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using the wrong method", func() {
			rec := doJSON(mux, http.MethodGet, "/assess", "")

			Convey("Then it should return not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestBatchEndpoints(t *testing.T) {
	Convey("Given the batch endpoints", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		mux, svc := newTestMux(ctx, app.WithMaxBatchRows(10))
		defer svc.Stop()

		batchBody := `{"rows": [
			{"name": "Ada", "ssn": "123-45-6789", "annual_income": "120000", "total_assets": "650000", "company": "Acme", "industry": "technology"},
			{"name": "Grace", "ssn": "987-65-4321", "annual_income": "90000", "total_assets": "120000", "company": "Globex", "industry": "finance"}
		]}`

		Convey("When submitting a batch", func() {
			rec := doJSON(mux, http.MethodPost, "/batch", batchBody)

			Convey("Then it should be accepted with a job id", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)

				var ack struct {
					JobID  string `json:"job_id"`
					Status string `json:"status"`
					Rows   int    `json:"rows"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack.JobID, ShouldNotBeEmpty)
				So(ack.Status, ShouldEqual, "accepted")
				So(ack.Rows, ShouldEqual, 2)

				Convey("And the job should become retrievable and complete", func() {
					var job repository.Job
					deadline := time.After(5 * time.Second)
				loop:
					for {
						select {
						case <-deadline:
							break loop
						case <-time.After(20 * time.Millisecond):
							getRec := doJSON(mux, http.MethodGet, "/batch/"+ack.JobID, "")
							So(getRec.Code, ShouldEqual, http.StatusOK)
							So(json.Unmarshal(getRec.Body.Bytes(), &job), ShouldBeNil)
							if job.Status == repository.StatusCompleted {
								break loop
							}
						}
					}
					So(job.Status, ShouldEqual, repository.StatusCompleted)
					So(job.Results, ShouldHaveLength, 2)
					So(job.Summary.TotalProcessed, ShouldEqual, 2)
				})
			})
		})

		Convey("When submitting an empty batch", func() {
			rec := doJSON(mux, http.MethodPost, "/batch", `{"rows": []}`)

			Convey("Then it should be rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When submitting a batch above the row limit", func() {
			var rows []string
			for i := 0; i < 11; i++ {
				rows = append(rows, `{"name": "B", "ssn": "111111111"}`)
			}
			rec := doJSON(mux, http.MethodPost, "/batch",
				`{"rows": [`+strings.Join(rows, ",")+`]}`)

			Convey("Then it should be rejected as too large", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "batch_too_large")
			})
		})

		Convey("When looking up an unknown job", func() {
			rec := doJSON(mux, http.MethodGet, "/batch/no-such-job", "")

			Convey("Then it should return not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When looking up with a malformed path", func() {
			rec := doJSON(mux, http.MethodGet, "/batch/a/b", "")

			Convey("Then it should be rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestStatsAndHealthEndpoints(t *testing.T) {
	Convey("Given the operational endpoints", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		mux, svc := newTestMux(ctx)
		defer svc.Stop()

		Convey("When fetching stats", func() {
			rec := doJSON(mux, http.MethodGet, "/stats", "")

			Convey("Then it should return the service statistics", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var stats map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When posting to stats", func() {
			rec := doJSON(mux, http.MethodPost, "/stats", "")

			Convey("Then it should return not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When fetching the health endpoint", func() {
			rec := doJSON(mux, http.MethodGet, "/healthz", "")

			Convey("Then it should serve the metrics exposition", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.Len(), ShouldBeGreaterThan, 0)
			})
		})
	})
}
