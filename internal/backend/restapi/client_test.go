package restapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/duyki2208/todo-list/internal/backend/restapi"
	"github.com/duyki2208/todo-list/internal/task"
)

func newClient(t *testing.T, srv *httptest.Server, opts ...restapi.Option) *restapi.Client {
	t.Helper()
	c, err := restapi.New(srv.URL, "user-1", opts...)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func collectionServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestList_NormalizesKeyedMap(t *testing.T) {
	srv := collectionServer(t, `{
		"t2": {"text": "later", "date": "2024-03-16", "completed": false, "timestamp": 200},
		"t1": {"text": "earlier", "date": "2024-03-15", "completed": true, "timestamp": 100}
	}`)
	c := newClient(t, srv)

	tasks, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	// Normalized order is creation order (timestamp ascending).
	if tasks[0].ID != "t1" || tasks[1].ID != "t2" {
		t.Errorf("expected order [t1 t2], got [%s %s]", tasks[0].ID, tasks[1].ID)
	}
	if tasks[0].Text != "earlier" || !tasks[0].Completed {
		t.Errorf("unexpected first task: %+v", tasks[0])
	}
}

func TestList_DropsMalformedEntries(t *testing.T) {
	srv := collectionServer(t, `{
		"good": {"text": "keep me", "date": "2024-03-15", "timestamp": 100},
		"nullish": null,
		"scalar": "not a task"
	}`)
	c := newClient(t, srv)

	tasks, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(tasks) != 1 {
		t.Fatalf("expected 1 well-formed task, got %d", len(tasks))
	}
	if tasks[0].ID != "good" {
		t.Errorf("expected task good, got %s", tasks[0].ID)
	}
}

func TestList_FailSoft(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"empty payload", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{}`)
		}},
		{"non-object payload", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `["not", "an", "object"]`)
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"error": "backend down"}`)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			c := newClient(t, srv)

			tasks, err := c.List(context.Background())
			if err != nil {
				t.Fatalf("list should fail soft, got error: %v", err)
			}
			if len(tasks) != 0 {
				t.Errorf("expected empty slice, got %d tasks", len(tasks))
			}
		})
	}
}

func TestList_NetworkFailureFailsSoft(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // dead server

	c, err := restapi.New(srv.URL, "user-1")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	tasks, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list should fail soft, got error: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty slice, got %d tasks", len(tasks))
	}
}

func TestCreate_FillsOwnerAndTimestamp(t *testing.T) {
	var received task.Task
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != restapi.CollectionPath {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		received.ID = "srv-1"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(received)
	}))
	defer srv.Close()

	fixed := time.UnixMilli(1710500000000)
	c := newClient(t, srv, restapi.WithClock(func() time.Time { return fixed }))

	created, err := c.Create(context.Background(), task.Draft{Text: "buy milk", Date: "2024-03-15"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if created.ID != "srv-1" {
		t.Errorf("expected server-assigned id, got %q", created.ID)
	}
	if received.UserID != "user-1" {
		t.Errorf("expected user_id user-1, got %q", received.UserID)
	}
	if received.Completed {
		t.Error("expected completed to be forced false")
	}
	if received.Timestamp != fixed.UnixMilli() {
		t.Errorf("expected timestamp %d, got %d", fixed.UnixMilli(), received.Timestamp)
	}
}

func TestCreate_RequestErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": "text is required"}`)
	}))
	defer srv.Close()
	c := newClient(t, srv)

	_, err := c.Create(context.Background(), task.Draft{Date: "2024-03-15"})
	if err == nil {
		t.Fatal("expected create to fail")
	}

	var re *task.RequestError
	if !errors.As(err, &re) {
		t.Fatalf("expected RequestError, got %T: %v", err, err)
	}
	if re.Status != http.StatusBadRequest || re.Message != "text is required" {
		t.Errorf("unexpected error: %+v", re)
	}
}

func TestUpdate_TargetsTaskURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != restapi.CollectionPath+"/t1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var in task.Task
		json.NewDecoder(r.Body).Decode(&in)
		json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()
	c := newClient(t, srv)

	updated, err := c.Update(context.Background(), "t1", task.Task{
		ID: "t1", Text: "buy milk", Date: "2024-03-15", Completed: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Completed || updated.ID != "t1" {
		t.Errorf("unexpected updated task: %+v", updated)
	}
}

func TestDelete_MapsErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method: %s", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error": "Task not found"}`)
	}))
	defer srv.Close()
	c := newClient(t, srv)

	err := c.Delete(context.Background(), "gone")
	var re *task.RequestError
	if !errors.As(err, &re) {
		t.Fatalf("expected RequestError, got %T: %v", err, err)
	}
	if re.Status != http.StatusNotFound || re.Message != "Task not found" {
		t.Errorf("unexpected error: %+v", re)
	}
}

func TestWithToken_AttachesBearer(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()
	c := newClient(t, srv, restapi.WithToken("secret-token"))

	if _, err := c.List(context.Background()); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if auth != "Bearer secret-token" {
		t.Errorf("expected bearer header, got %q", auth)
	}
}
