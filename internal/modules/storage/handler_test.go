package storage

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBuildObjectKey(t *testing.T) {
	key := buildObjectKey("My Summer Photo.JPG")

	// uploads/YYYY/MM/<8 hex chars>-<slug><ext>
	pattern := regexp.MustCompile(`^uploads/\d{4}/\d{2}/[0-9a-f]{8}-my-summer-photo\.jpg$`)
	if !pattern.MatchString(key) {
		t.Fatalf("key = %q", key)
	}

	// Same filename twice never collides.
	if other := buildObjectKey("My Summer Photo.JPG"); other == key {
		t.Fatalf("duplicate key %q", other)
	}
}

func TestBuildObjectKeyUnsluggableName(t *testing.T) {
	key := buildObjectKey("???.png")
	if !strings.Contains(key, "-file.png") {
		t.Fatalf("key = %q, want fallback name", key)
	}
}

func TestBuildObjectKeyNoExtension(t *testing.T) {
	key := buildObjectKey("README")
	if strings.Contains(key, ".") {
		t.Fatalf("key = %q, want no extension", key)
	}
	if !strings.HasSuffix(key, "-readme") {
		t.Fatalf("key = %q", key)
	}
}

func TestSignUnconfiguredStorage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(nil)
	noop := func(c *gin.Context) { c.Next() }
	h.RegisterRoutes(r.Group("/api"), noop)

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/sign", strings.NewReader(`{"filename":"a.png","contentType":"image/png"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 when storage is not configured", w.Code)
	}
}
