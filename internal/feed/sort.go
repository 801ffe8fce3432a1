package feed

import (
	"sort"
	"time"

	"github.com/horizontrailers/rssgen/internal/blog"
)

type dated struct {
	post blog.Post
	date time.Time
	ok   bool
}

// Sort returns a copy of posts ordered newest first. Posts whose date is
// missing or unparseable are treated as oldest. Ties keep their input order.
func Sort(posts []blog.Post) []blog.Post {
	ds := make([]dated, len(posts))
	for i, p := range posts {
		ds[i].post = p
		ds[i].date, ds[i].ok = p.Published()
	}

	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].ok != ds[j].ok {
			return ds[i].ok
		}

		return ds[i].date.After(ds[j].date)
	})

	out := make([]blog.Post, len(ds))
	for i := range ds {
		out[i] = ds[i].post
	}

	return out
}
