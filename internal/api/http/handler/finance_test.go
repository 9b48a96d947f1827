package handler

import (
	"bytes"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/findoc-server/internal/api/http/context"
	"github.com/dtroode/findoc-server/internal/mocks"
	"github.com/dtroode/findoc-server/internal/model"
	"github.com/dtroode/findoc-server/internal/testutil"
)

const testMaxBody = 1 << 20

type financeFixture struct {
	finance *mocks.FinanceService
	imports *mocks.ImportService
	handler *Finance
	cm      *httpcontext.Manager
	userID  uuid.UUID
}

func newFinanceFixture(t *testing.T, maxBody int64) *financeFixture {
	t.Helper()
	f := &financeFixture{
		finance: mocks.NewFinanceService(t),
		imports: mocks.NewImportService(t),
		cm:      httpcontext.NewManager(),
		userID:  uuid.New(),
	}
	f.handler = NewFinance(f.finance, f.imports, f.cm, NewValidator(), maxBody, testutil.MakeNoopLogger())
	return f
}

func (f *financeFixture) request(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(f.cm.SetUserIDToContext(req.Context(), f.userID))
}

func multipartBody(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "incomes.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestFinance_Get(t *testing.T) {
	f := newFinanceFixture(t, testMaxBody)
	f.finance.On("Get", mock.Anything, f.userID).Return(model.FinanceData{"currency": "EUR"}, nil).Once()

	rec := httptest.NewRecorder()
	f.handler.Get(rec, f.request(http.MethodGet, "/v1/finance/me", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"currency":"EUR"}}`, rec.Body.String())
}

func TestFinance_Get_Empty(t *testing.T) {
	f := newFinanceFixture(t, testMaxBody)
	f.finance.On("Get", mock.Anything, f.userID).Return(model.FinanceData{}, nil).Once()

	rec := httptest.NewRecorder()
	f.handler.Get(rec, f.request(http.MethodGet, "/v1/finance/me", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{}}`, rec.Body.String())
}

func TestFinance_Get_UnencodableDocument(t *testing.T) {
	f := newFinanceFixture(t, testMaxBody)
	f.finance.On("Get", mock.Anything, f.userID).Return(model.FinanceData{"total": math.Inf(1)}, nil).Once()

	rec := httptest.NewRecorder()
	f.handler.Get(rec, f.request(http.MethodGet, "/v1/finance/me", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"internal server error"}`, rec.Body.String())
}

func TestFinance_Get_StoreFailure(t *testing.T) {
	f := newFinanceFixture(t, testMaxBody)
	f.finance.On("Get", mock.Anything, f.userID).Return(nil, model.ErrPersistence).Once()

	rec := httptest.NewRecorder()
	f.handler.Get(rec, f.request(http.MethodGet, "/v1/finance/me", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"internal server error"}`, rec.Body.String())
}

func TestFinance_Get_NoUser(t *testing.T) {
	f := newFinanceFixture(t, testMaxBody)

	rec := httptest.NewRecorder()
	f.handler.Get(rec, httptest.NewRequest(http.MethodGet, "/v1/finance/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFinance_Put(t *testing.T) {
	f := newFinanceFixture(t, testMaxBody)
	f.finance.On("Replace", mock.Anything, f.userID, model.FinanceData{"currency": "EUR", "incomes": []any{}}).
		Return(model.FinanceData{"currency": "EUR", "incomes": []any{}}, nil).Once()

	rec := httptest.NewRecorder()
	f.handler.Put(rec, f.request(http.MethodPut, "/v1/finance/me",
		strings.NewReader(`{"data":{"currency":"EUR","incomes":[]}}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"currency":"EUR","incomes":[]}}`, rec.Body.String())
}

func TestFinance_Put_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		maxBody    int64
		wantStatus int
		wantDetail string
	}{
		{name: "null data", body: `{"data":null}`, maxBody: testMaxBody, wantStatus: http.StatusBadRequest, wantDetail: "data is a required field"},
		{name: "missing data", body: `{}`, maxBody: testMaxBody, wantStatus: http.StatusBadRequest, wantDetail: "data is a required field"},
		{name: "data not an object", body: `{"data":[1,2]}`, maxBody: testMaxBody, wantStatus: http.StatusBadRequest, wantDetail: "Malformed request body"},
		{name: "too large", body: `{"data":{"note":"` + strings.Repeat("x", 64) + `"}}`, maxBody: 16, wantStatus: http.StatusRequestEntityTooLarge, wantDetail: "Request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFinanceFixture(t, tt.maxBody)

			rec := httptest.NewRecorder()
			f.handler.Put(rec, f.request(http.MethodPut, "/v1/finance/me", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, `{"detail":"`+tt.wantDetail+`"}`, rec.Body.String())
		})
	}
}

func TestFinance_ImportIncomes(t *testing.T) {
	f := newFinanceFixture(t, testMaxBody)
	csv := "date,name,amount,currency\n2024-01-01,Salary,2500,EUR\n"

	f.imports.On("Incomes", mock.Anything, f.userID, mock.MatchedBy(func(r io.Reader) bool {
		body, err := io.ReadAll(r)
		return err == nil && string(body) == csv
	})).Return(1, nil).Once()

	body, contentType := multipartBody(t, "file", csv)
	req := f.request(http.MethodPost, "/v1/finance/me/import/incomes", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	f.handler.ImportIncomes(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"imported":1}`, rec.Body.String())
}

func TestFinance_ImportIncomes_Errors(t *testing.T) {
	t.Run("wrong field name", func(t *testing.T) {
		f := newFinanceFixture(t, testMaxBody)
		body, contentType := multipartBody(t, "upload", "date,name,amount\n")
		req := f.request(http.MethodPost, "/v1/finance/me/import/incomes", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		f.handler.ImportIncomes(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"detail":"file is a required field"}`, rec.Body.String())
	})

	t.Run("not multipart", func(t *testing.T) {
		f := newFinanceFixture(t, testMaxBody)
		req := f.request(http.MethodPost, "/v1/finance/me/import/incomes", strings.NewReader("date,name,amount\n"))
		req.Header.Set("Content-Type", "text/csv")

		rec := httptest.NewRecorder()
		f.handler.ImportIncomes(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed csv", func(t *testing.T) {
		f := newFinanceFixture(t, testMaxBody)
		f.imports.On("Incomes", mock.Anything, f.userID, mock.Anything).Return(0, model.ErrMalformedImport).Once()

		body, contentType := multipartBody(t, "file", "")
		req := f.request(http.MethodPost, "/v1/finance/me/import/incomes", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		f.handler.ImportIncomes(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"detail":"Malformed CSV upload"}`, rec.Body.String())
	})

	t.Run("too large", func(t *testing.T) {
		f := newFinanceFixture(t, 128)
		body, contentType := multipartBody(t, "file", strings.Repeat("2024-01-01,Salary,1\n", 64))
		req := f.request(http.MethodPost, "/v1/finance/me/import/incomes", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		f.handler.ImportIncomes(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFinanceFixture(t, testMaxBody)
		f.imports.On("Incomes", mock.Anything, f.userID, mock.Anything).Return(0, model.ErrPersistence).Once()

		body, contentType := multipartBody(t, "file", "date,name,amount\n")
		req := f.request(http.MethodPost, "/v1/finance/me/import/incomes", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		f.handler.ImportIncomes(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"detail":"internal server error"}`, rec.Body.String())
	})
}
