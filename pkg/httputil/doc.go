// Package httputil provides the HTTP plumbing used to fetch remote photos.
//
// # Fetching
//
// [Fetch] performs a GET with a size limit and retries transient failures
// (network errors, 5xx and 429 responses) through [Retry]:
//
//	data, err := httputil.Fetch(ctx, http.DefaultClient, "https://example.com/me.png",
//	    httputil.WithMaxBytes(5<<20))
//
// A 404 maps to a NOT_FOUND error; other 4xx responses are not retried.
//
// # Caching
//
// [Cache] stores fetched bodies on disk (~/.cache/resumake/http/) with a TTL
// based on file modification time, so repeated exports of the same resume do
// not download the photo again:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	var body []byte
//	if ok, _ := cache.Get(url, &body); !ok {
//	    body, err = httputil.Fetch(ctx, client, url)
//	    cache.Set(url, body)
//	}
package httputil
