package devapi_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/duyki2208/todo-list/internal/backend/restapi"
	"github.com/duyki2208/todo-list/internal/devapi"
	"github.com/duyki2208/todo-list/internal/task"
)

// The dev server is exercised end to end through the REST client, the
// same wiring the integration path uses.
func newClientServer(t *testing.T) (*restapi.Client, *devapi.Server) {
	t.Helper()
	api := devapi.New()
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	c, err := restapi.New(srv.URL, "user-1")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c, api
}

func TestRoundTrip_CreateListUpdateDelete(t *testing.T) {
	c, _ := newClientServer(t)
	ctx := context.Background()

	created, err := c.Create(ctx, task.Draft{Text: "buy milk", Date: "2024-03-15"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if created.UserID != "user-1" {
		t.Errorf("expected owner user-1, got %q", created.UserID)
	}

	tasks, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != created.ID {
		t.Fatalf("expected created task in list, got %+v", tasks)
	}

	created.Completed = true
	updated, err := c.Update(ctx, created.ID, created)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Completed {
		t.Error("expected updated task to be completed")
	}

	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestDeleteThenList_NeverReturnsDeletedID(t *testing.T) {
	c, api := newClientServer(t)
	ctx := context.Background()

	keep := api.Seed(task.Task{Text: "keep", Date: "2024-03-15", Timestamp: 1})
	gone := api.Seed(task.Task{Text: "gone", Date: "2024-03-15", Timestamp: 2})

	if err := c.Delete(ctx, gone); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	tasks, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, tk := range tasks {
		if tk.ID == gone {
			t.Errorf("deleted id %s still listed", gone)
		}
	}
	if len(tasks) != 1 || tasks[0].ID != keep {
		t.Errorf("expected only %s, got %+v", keep, tasks)
	}
}

func TestCreate_Validation(t *testing.T) {
	c, _ := newClientServer(t)
	ctx := context.Background()

	if _, err := c.Create(ctx, task.Draft{Date: "2024-03-15"}); !task.IsRequestError(err) {
		t.Errorf("expected RequestError for empty text, got %v", err)
	}
	if _, err := c.Create(ctx, task.Draft{Text: "x", Date: "15/03/2024"}); !task.IsRequestError(err) {
		t.Errorf("expected RequestError for bad date, got %v", err)
	}
}

func TestUpdateMissing_ReturnsNotFoundError(t *testing.T) {
	c, _ := newClientServer(t)

	_, err := c.Update(context.Background(), "ghost", task.Task{Text: "x", Date: "2024-03-15"})
	if !task.IsRequestError(err) {
		t.Fatalf("expected RequestError, got %v", err)
	}
}
