package e2e

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

const trendingBody = `{"page":1,"results":[
 {"id":949,"title":"Heat","release_date":"1995-12-15","vote_average":7.9,"vote_count":6000,"genre_ids":[28,80,18]},
 {"id":9495,"title":"Ronin","release_date":"1998-09-25","vote_average":6.9,"vote_count":2000,"genre_ids":[28,53]}
],"total_pages":1,"total_results":2}`

const searchBody = `{"page":1,"results":[
 {"id":949,"title":"Heat","release_date":"1995-12-15","vote_average":7.9,"vote_count":6000,"genre_ids":[28,80,18]}
],"total_pages":1,"total_results":1}`

const genresBody = `{"genres":[{"id":28,"name":"Action"},{"id":80,"name":"Crime"},{"id":18,"name":"Drama"},{"id":53,"name":"Thriller"}]}`

const detailsBody = `{"id":949,"title":"Heat","tagline":"A Los Angeles crime saga","release_date":"1995-12-15",
 "vote_average":7.9,"vote_count":6000,"runtime":170,"budget":60000000,"revenue":187436818,
 "genres":[{"id":28,"name":"Action"},{"id":80,"name":"Crime"}],"status":"Released"}`

// fakeTMDB serves canned TMDB v3 responses and records request paths.
type fakeTMDB struct {
	*httptest.Server
	mu    sync.Mutex
	paths []string
}

func newFakeTMDB() *fakeTMDB {
	f := &fakeTMDB{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.paths = append(f.paths, r.URL.Path+"?"+r.URL.Query().Get("query"))
		f.mu.Unlock()

		if r.URL.Query().Get("api_key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status_message":"Invalid API key"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/trending/movie/"),
			r.URL.Path == "/movie/popular",
			r.URL.Path == "/movie/top_rated",
			r.URL.Path == "/movie/now_playing":
			w.Write([]byte(trendingBody))
		case r.URL.Path == "/search/movie":
			w.Write([]byte(searchBody))
		case r.URL.Path == "/genre/movie/list":
			w.Write([]byte(genresBody))
		case r.URL.Path == "/movie/949":
			w.Write([]byte(detailsBody))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status_message":"The resource you requested could not be found."}`))
		}
	}))
	return f
}

// requested reports whether path (with its query parameter, if any) was hit.
func (f *fakeTMDB) requested(pathAndQuery string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.paths {
		if p == pathAndQuery {
			return true
		}
	}
	return false
}
