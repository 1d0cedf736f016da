/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gregjones/httpcache"
)

func TestCachedClientOverridesNoCache(t *testing.T) {
	var hits atomic.Int32
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {

		hits.Add(1)
		gotUA.Store(r.Header.Get("User-Agent"))
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		fmt.Fprint(w, "<table></table>")
	}))
	defer srv.Close()

	client := newCachedClient(httpcache.NewMemoryCache(), http.DefaultTransport,
		5*time.Minute)

	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("Failed to read response body: %v", err)
		}
		if len(data) == 0 {
			t.Errorf("Empty data")
		}
		if i > 0 && resp.Header.Get(httpcache.XFromCache) != "1" {
			t.Errorf("request %d: object not cached", i)
		}
	}

	if n := hits.Load(); n != 1 {
		t.Errorf("origin hit %d times; want 1", n)
	}
	if ua, _ := gotUA.Load().(string); ua != UserAgent {
		t.Errorf("User-Agent = %q; want %q", ua, UserAgent)
	}
}
