package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"changeset-manager/core/archive"
	"changeset-manager/core/batch"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *Service, *mockArchive) {
	plans := new(mockArchive)
	svc := setupService(t, plans)

	app := fiber.New()
	feature := NewFeature(svc)
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app, svc, plans
}

func doJSON(t *testing.T, app *fiber.App, method, path, contentType, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &out))
	}
	return resp.StatusCode, out
}

func TestHandleCreate(t *testing.T) {
	app, _, _ := setupTestApp(t)

	code, body := doJSON(t, app, "POST", "/collections", fiber.MIMEApplicationJSON, `{"name": "inbox", "counts": [2, 1]}`)
	assert.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "inbox", body["name"])
	assert.Equal(t, float64(1), body["revision"])
	assert.Len(t, body["layout"], 2)

	code, _ = doJSON(t, app, "POST", "/collections", fiber.MIMEApplicationJSON, `{"counts": [1]}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = doJSON(t, app, "POST", "/collections", fiber.MIMEApplicationJSON, `{"name": "x", "counts": [-1]}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
}

func TestHandleGetAndList(t *testing.T) {
	app, svc, _ := setupTestApp(t)
	c, err := svc.Create(context.Background(), CreateRequest{Name: "inbox", Counts: []int{1}})
	require.NoError(t, err)

	code, body := doJSON(t, app, "GET", "/collections/"+c.ID, "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, c.ID, body["id"])

	code, body = doJSON(t, app, "GET", "/collections/missing", "", "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Contains(t, body["error"], "not found")

	req := httptest.NewRequest("GET", "/collections", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	var list []Collection
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestHandleSubmit(t *testing.T) {
	app, svc, plans := setupTestApp(t)
	c, err := svc.Create(context.Background(), CreateRequest{Name: "inbox", Counts: []int{2}})
	require.NoError(t, err)
	plans.On("Put", mock.Anything, c.ID, mock.Anything).Return(nil)

	path := "/collections/" + c.ID + "/batches"
	jsonBatch := `{
	  "revision": 1,
	  "new_counts": [2, 1],
	  "edits": [
	    {"op": "insert", "level": "section", "sections": [1], "tag": 3},
	    {"op": "reload", "level": "item", "items": [{"section": 0, "item": 1}], "tag": 4}
	  ]
	}`

	code, body := doJSON(t, app, "POST", path, fiber.MIMEApplicationJSON, jsonBatch)
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Equal(t, float64(2), body["revision"])
	plan := body["plan"].(map[string]any)
	assert.Equal(t, []any{float64(0)}, plan["section_map"])
	assert.Len(t, plan["groups"], 3)

	// Replaying the same batch hits the revision check.
	code, _ = doJSON(t, app, "POST", path, fiber.MIMEApplicationJSON, jsonBatch)
	assert.Equal(t, fiber.StatusConflict, code)

	yamlBatch := `
revision: 2
new_counts: [2]
edits:
  - op: delete
    level: section
    sections: [1]
`
	code, body = doJSON(t, app, "POST", path, "application/yaml", yamlBatch)
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Equal(t, float64(3), body["revision"])

	plans.AssertNumberOfCalls(t, "Put", 2)
}

func TestHandleSubmit_Errors(t *testing.T) {
	app, svc, _ := setupTestApp(t)
	c, err := svc.Create(context.Background(), CreateRequest{Name: "inbox", Counts: []int{2}})
	require.NoError(t, err)
	path := "/collections/" + c.ID + "/batches"

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"malformed json", path, `{"revision": 1,`, fiber.StatusBadRequest},
		{"unknown field", path, `{"revision": 1, "colour": "red"}`, fiber.StatusBadRequest},
		{"count mismatch", path, `{"revision": 1, "new_counts": [5]}`, fiber.StatusUnprocessableEntity},
		{"out of bounds", path, `{"revision": 1, "new_counts": [1], "edits": [{"op": "delete", "level": "item", "items": [{"section": 0, "item": 9}]}]}`, fiber.StatusUnprocessableEntity},
		{"unknown collection", "/collections/missing/batches", `{"revision": 1, "new_counts": [2]}`, fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := doJSON(t, app, "POST", tt.path, fiber.MIMEApplicationJSON, tt.body)
			assert.Equal(t, tt.want, code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandlePlans(t *testing.T) {
	app, svc, plans := setupTestApp(t)
	c, err := svc.Create(context.Background(), CreateRequest{Name: "inbox", Counts: []int{1}})
	require.NoError(t, err)

	plans.On("List", mock.Anything, c.ID).Return(nil, nil)
	plans.On("Get", mock.Anything, c.ID, "p-1").Return(&batch.PlanDoc{ID: "p-1"}, nil)
	plans.On("Get", mock.Anything, c.ID, "gone").Return(nil, fmt.Errorf("%w: gone", archive.ErrNotFound))

	code, body := doJSON(t, app, "GET", "/collections/"+c.ID+"/batches", "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, []any{}, body["plans"])

	code, body = doJSON(t, app, "GET", "/collections/"+c.ID+"/batches/p-1", "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "p-1", body["id"])

	code, _ = doJSON(t, app, "GET", "/collections/"+c.ID+"/batches/gone", "", "")
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusNotImplemented, StatusFor(ErrArchiveDisabled))
	assert.Equal(t, fiber.StatusInternalServerError, StatusFor(io.ErrUnexpectedEOF))
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(batch.ErrDecode))
}
