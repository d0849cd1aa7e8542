package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestCreateProjectRequiresAuth(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/projects", "", map[string]string{
		"name": "demo", "repo": "https://github.com/org/demo.git",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "unauthorized" {
		t.Errorf("got error %v, want unauthorized", body["error"])
	}
}

func TestCreateProjectBadToken(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/projects", "not-a-token", map[string]string{
		"name": "demo", "repo": "https://github.com/org/demo.git",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}

func TestCreateAndGetProject(t *testing.T) {
	r, _ := setupTest(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/projects", token, map[string]string{
		"name": "demo", "repo": "https://github.com/org/demo.git",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201: %s", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)
	if created["last_build_status"] != "none" {
		t.Errorf("got last_build_status %v, want none", created["last_build_status"])
	}
	if ts, _ := created["created_at"].(string); !strings.HasSuffix(ts, "Z") {
		t.Errorf("created_at %q not UTC with Z suffix", ts)
	}

	id := int(created["id"].(float64))
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/projects/%d", id), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	got := decodeBody(t, w)
	if got["name"] != "demo" || got["repo"] != "https://github.com/org/demo.git" {
		t.Errorf("roundtrip mismatch: %v", got)
	}
	if got["last_build_status"] != "none" {
		t.Errorf("got last_build_status %v, want none", got["last_build_status"])
	}
}

func TestCreateProjectValidation(t *testing.T) {
	r, _ := setupTest(t)
	token := login(t, r)

	for _, body := range []map[string]string{
		{"repo": "https://github.com/org/demo.git"},
		{"name": "demo"},
		{"name": "  ", "repo": "https://github.com/org/demo.git"},
		{"name": "demo", "repo": ""},
	} {
		w := doJSON(t, r, http.MethodPost, "/projects", token, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %v: got %d, want 400", body, w.Code)
		}
	}
}

func TestCreateProjectDuplicate(t *testing.T) {
	r, _ := setupTest(t)
	token := login(t, r)

	body := map[string]string{"name": "demo", "repo": "https://github.com/org/demo.git"}
	if w := doJSON(t, r, http.MethodPost, "/projects", token, body); w.Code != http.StatusCreated {
		t.Fatalf("first create: got %d, want 201", w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/projects", token, body)
	if w.Code != http.StatusConflict {
		t.Fatalf("second create: got %d, want 409", w.Code)
	}
	if resp := decodeBody(t, w); resp["error"] != "conflict" {
		t.Errorf("got error %v, want conflict", resp["error"])
	}

	// Exactly one project with that name afterwards.
	w = doJSON(t, r, http.MethodGet, "/projects", "", nil)
	if total := decodeBody(t, w)["total"].(float64); total != 1 {
		t.Errorf("got total %v, want 1", total)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	r, _ := setupTest(t)

	for _, path := range []string{"/projects/9999", "/projects/abc"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: got %d, want 404", path, w.Code)
		}
	}
}

func TestListProjectsPagination(t *testing.T) {
	r, _ := setupTest(t)
	token := login(t, r)

	for i := 0; i < 5; i++ {
		body := map[string]string{
			"name": fmt.Sprintf("proj-%d", i),
			"repo": fmt.Sprintf("https://github.com/org/proj-%d.git", i),
		}
		if w := doJSON(t, r, http.MethodPost, "/projects", token, body); w.Code != http.StatusCreated {
			t.Fatalf("create %d: got %d, want 201", i, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/projects?page=1&per_page=2", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	items := body["items"].([]any)
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
	if body["total"].(float64) != 5 {
		t.Errorf("got total %v, want 5", body["total"])
	}
	if body["pages"].(float64) != 3 {
		t.Errorf("got pages %v, want 3", body["pages"])
	}
	if body["page"].(float64) != 1 {
		t.Errorf("got page %v, want 1", body["page"])
	}

	// Newest first.
	first := items[0].(map[string]any)
	if first["name"] != "proj-4" {
		t.Errorf("got first item %v, want proj-4", first["name"])
	}

	// Bogus pagination values fall back to defaults.
	w = doJSON(t, r, http.MethodGet, "/projects?page=abc&per_page=-1", "", nil)
	body = decodeBody(t, w)
	if body["page"].(float64) != 1 {
		t.Errorf("got page %v, want default 1", body["page"])
	}
	if len(body["items"].([]any)) != 5 {
		t.Errorf("got %d items, want all 5 under default per_page", len(body["items"].([]any)))
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	r, _ := setupTest(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/projects", token, map[string]string{
		"name": "demo", "repo": "https://github.com/org/demo.git",
	})
	id := int(decodeBody(t, w)["id"].(float64))

	if w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/projects/%d/build", id), token, nil); w.Code != http.StatusCreated {
		t.Fatalf("trigger: got %d, want 201", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/projects/%d", id), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("delete body not empty: %q", w.Body.String())
	}

	if w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/projects/%d", id), "", nil); w.Code != http.StatusNotFound {
		t.Errorf("get after delete: got %d, want 404", w.Code)
	}
	// Builds are unreachable, not an empty list.
	if w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/projects/%d/builds", id), "", nil); w.Code != http.StatusNotFound {
		t.Errorf("list builds after delete: got %d, want 404", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/projects", "", nil)
	if total := decodeBody(t, w)["total"].(float64); total != 0 {
		t.Errorf("got total %v, want 0", total)
	}
}

func TestDeleteProjectRequiresAuth(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodDelete, "/projects/1", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}

func TestDeleteProjectNotFound(t *testing.T) {
	r, _ := setupTest(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodDelete, "/projects/9999", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}
}
