package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/wcarank/internal/adapters/http/api"
	repository "github.com/okian/wcarank/internal/adapters/repository"
	"github.com/okian/wcarank/internal/adapters/source"
	service "github.com/okian/wcarank/internal/app"
	"github.com/okian/wcarank/internal/domain/format"
	"github.com/okian/wcarank/internal/domain/model"
	"github.com/okian/wcarank/internal/domain/query"
	"github.com/okian/wcarank/internal/domain/types"
	"github.com/okian/wcarank/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWithWriter(io.Discard, logger.FormatText); err != nil {
		panic(err)
	}
}

// mockDependencies answers every call with canned values.
type mockDependencies struct {
	profile   types.Profile
	lookupErr error
	events    []types.EventOption
	regions   []string
	listErr   error

	lastEvent, lastRegion, lastRank string
}

func (m *mockDependencies) Lookup(_ context.Context, eventID, region, rankInput string) (types.Profile, error) {
	m.lastEvent, m.lastRegion, m.lastRank = eventID, region, rankInput
	if m.lookupErr != nil {
		return types.Profile{}, m.lookupErr
	}
	return m.profile, nil
}

func (m *mockDependencies) Events(context.Context) ([]types.EventOption, error) {
	return m.events, m.listErr
}

func (m *mockDependencies) Regions(context.Context) ([]string, error) {
	return m.regions, m.listErr
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps api.Dependencies, stats api.StatsProvider) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, stats).Register(context.Background(), mux)
	return mux
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{
			events:  []types.EventOption{{ID: "333", Name: "3x3"}},
			regions: []string{"US"},
		}
		mux := newMux(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})

		Convey("Then health serves Prometheus metrics", func() {
			w := get(mux, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "wcarank_")
		})

		Convey("Then stats are served as JSON", func() {
			w := get(mux, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("Then events and regions are listed", func() {
			w := get(mux, "/events")
			So(w.Code, ShouldEqual, http.StatusOK)
			var events []types.EventOption
			So(json.Unmarshal(w.Body.Bytes(), &events), ShouldBeNil)
			So(events, ShouldResemble, deps.events)

			w = get(mux, "/regions")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `["US"]`)
		})

		Convey("Then non-GET methods are not routed", func() {
			for _, path := range []string{"/events", "/regions", "/rank", "/stats"} {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}")))
				So(w.Code, ShouldEqual, http.StatusNotFound)
			}
		})
	})
}

func TestRankHandler(t *testing.T) {
	Convey("Given a rank endpoint", t, func() {
		deps := &mockDependencies{profile: types.Profile{Name: "Alice", Rank: "1st", BestResult: "6.10"}}
		mux := newMux(deps, &mockStatsProvider{})

		Convey("When all parameters are present", func() {
			w := get(mux, "/rank?event=333&region=US&rank=%201%20")

			Convey("Then the profile is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var p types.Profile
				So(json.Unmarshal(w.Body.Bytes(), &p), ShouldBeNil)
				So(p.Name, ShouldEqual, "Alice")
				So(p.BestResult, ShouldEqual, "6.10")
				So(deps.lastEvent, ShouldEqual, "333")
				So(deps.lastRegion, ShouldEqual, "US")
				So(deps.lastRank, ShouldEqual, "1")
			})
		})

		Convey("When a parameter is missing", func() {
			w := get(mux, "/rank?event=333&rank=1")

			Convey("Then it is a bad request naming the parameter", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				body := decodeError(w)
				So(body["code"], ShouldEqual, "bad_request")
				So(body["message"], ShouldContainSubstring, "region")
			})
		})

		cases := []struct {
			name   string
			err    error
			status int
			code   string
		}{
			{"invalid rank input", &query.InvalidRankInputError{Input: "abc"}, http.StatusBadRequest, "invalid_rank"},
			{"no match", repository.ErrNotFound, http.StatusNotFound, "not_found"},
			{"undecodable result", &format.DecodeError{EventID: "333", Value: -1, Reason: "negative value"}, http.StatusUnprocessableEntity, "decode_error"},
			{"service not ready", service.ErrNotStarted, http.StatusServiceUnavailable, "not_ready"},
			{"unexpected failure", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		}
		for _, tc := range cases {
			Convey(fmt.Sprintf("When the lookup fails with %s", tc.name), func() {
				deps.lookupErr = tc.err
				w := get(mux, "/rank?event=333&region=US&rank=abc")

				Convey("Then the status and code reflect the error", func() {
					So(w.Code, ShouldEqual, tc.status)
					So(decodeError(w)["code"], ShouldEqual, tc.code)
				})
			})
		}

		Convey("When the lookup fails unexpectedly", func() {
			deps.lookupErr = errors.New("secret detail")
			w := get(mux, "/rank?event=333&region=US&rank=1")

			Convey("Then internal details are not leaked", func() {
				So(w.Body.String(), ShouldNotContainSubstring, "secret detail")
			})
		})
	})
}

func TestListHandlers_NotReady(t *testing.T) {
	Convey("Given a service that has not loaded data", t, func() {
		mux := newMux(&mockDependencies{listErr: service.ErrNotStarted}, &mockStatsProvider{})

		Convey("Then listings answer 503", func() {
			So(get(mux, "/events").Code, ShouldEqual, http.StatusServiceUnavailable)
			So(get(mux, "/regions").Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given a handler behind the request id middleware", t, func() {
		var seen string
		h := api.RequestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
			seen = api.RequestIDFromContext(r.Context())
		})

		Convey("When the caller sends an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is propagated and echoed", func() {
				So(seen, ShouldEqual, "abc-123")
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})

		Convey("When the caller sends none", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then a UUID is generated", func() {
				So(len(seen), ShouldEqual, 36)
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, seen)
			})
		})

		Convey("Then a context without an id yields empty", func() {
			So(api.RequestIDFromContext(context.Background()), ShouldEqual, "")
		})
	})
}

func TestServer_WithService(t *testing.T) {
	Convey("Given the API backed by a started service", t, func() {
		ds := source.Dataset{
			Results: []model.ResultRecord{
				{PersonID: "2010ALIC01", EventID: "333", PersonCountryID: "US", Best: 610, PersonName: "Alice"},
			},
			Ranks: []model.RankRecord{
				{PersonID: "2010ALIC01", EventID: "333", Best: 610, CountryRank: 1},
			},
		}
		svc := service.New(service.WithLoader(source.LoaderFunc(func(context.Context) (source.Dataset, error) { return ds, nil })))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		mux := newMux(svc, svc)

		Convey("When asking for the top US 3x3 result", func() {
			w := get(mux, "/rank?event=333&region=US&rank=1")

			Convey("Then Alice is returned formatted", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"name":"Alice"`)
				So(w.Body.String(), ShouldContainSubstring, `"rank":"1st"`)
				So(w.Body.String(), ShouldContainSubstring, `"best_result":"6.10"`)
			})
		})

		Convey("When asking for a rank nobody holds", func() {
			w := get(mux, "/rank?event=333&region=US&rank=2")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestCORS(t *testing.T) {
	Convey("Given the API behind CORS for one origin", t, func() {
		mux := newMux(&mockDependencies{regions: []string{"US"}}, &mockStatsProvider{})
		h := api.CORS(mux, []string{"https://cubers.example"})

		request := func(method, origin string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(method, "/regions", nil)
			req.Header.Set("Origin", origin)
			if method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			return w
		}

		Convey("Then the allowed origin is echoed", func() {
			w := request(http.MethodGet, "https://cubers.example")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://cubers.example")
			So(w.Header().Get("Access-Control-Expose-Headers"), ShouldEqual, http.CanonicalHeaderKey(api.RequestIDHeader))
		})

		Convey("Then other origins get no CORS headers", func() {
			w := request(http.MethodGet, "https://elsewhere.example")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})

		Convey("Then preflight requests are answered without reaching the handlers", func() {
			w := request(http.MethodOptions, "https://cubers.example")
			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(w.Header().Get("Access-Control-Allow-Methods"), ShouldContainSubstring, http.MethodGet)
		})
	})
}
