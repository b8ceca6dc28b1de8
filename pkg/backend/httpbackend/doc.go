// Package httpbackend puts a backend.Reader behind a small JSON API and
// provides the matching client, so forms in one process can be initialized
// and checked against a reader served by another.
//
//	r.Mount("/api", httpbackend.NewHandler(backend.NewMemory(), log))
//
//	client, err := httpbackend.NewClient("http://localhost:8080/api")
//	res, err := client.CheckUniqueness(ctx, "pippo")
//
// Client errors wrap the backend sentinels, so callers match them the same
// way for every reader.
package httpbackend
