package entries

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testHandler(repo *memoryEntryRepo) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(logger, NewService(repo, nil, logger))
}

func postEntry(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestCreateRejectsExtraDecimalPlaces(t *testing.T) {
	h := testHandler(testRepo())

	rec := postEntry(h, `{"employee_id":1,"hours":"5.55"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "decimal place")

	rec = postEntry(h, `{"employee_id":1,"hours":"5.5"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateRejectsNonNumericHours(t *testing.T) {
	h := testHandler(testRepo())

	rec := postEntry(h, `{"employee_id":1,"hours":"cinco"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
