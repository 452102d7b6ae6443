package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Crate hooks
	p := NoopCrateHooks{}
	p.OnReadStart(ctx, "testdata/crate")
	p.OnReadComplete(ctx, "testdata/crate", 12, time.Second, nil)
	p.OnWriteStart(ctx, "out.zip", 12)
	p.OnWriteComplete(ctx, "out.zip", 3, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "render")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/api/crate/summary")
	h.OnResponse(ctx, "GET", "/api/crate/summary", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Crate().(NoopCrateHooks); !ok {
		t.Error("Crate() should return NoopCrateHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customCrate := &testCrateHooks{}
	SetCrateHooks(customCrate)
	if Crate() != customCrate {
		t.Error("SetCrateHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Crate().(NoopCrateHooks); !ok {
		t.Error("Reset() should restore NoopCrateHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCrateHooks{}
	SetCrateHooks(custom)

	// Setting nil should be ignored
	SetCrateHooks(nil)

	if Crate() != custom {
		t.Error("SetCrateHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testCrateHooks struct{ NoopCrateHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
