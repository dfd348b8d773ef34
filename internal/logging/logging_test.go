package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedLogger() (*logrus.Logger, *bytes.Buffer) {
	logger := SetupLogging()
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestMiddleware_AttachesLogDataAndLogsStatus(t *testing.T) {
	logger, buf := bufferedLogger()

	var seen *LogData
	handler := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetLogData(r.Context())
		seen.AddData("transactionCount", 3)
		w.WriteHeader(http.StatusCreated)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/transactions", nil))

	require.NotNil(t, seen)
	entry := lastLine(t, buf)
	assert.Equal(t, "HttpServer.Request.Complete", entry["msg"])
	assert.Equal(t, "info", entry["loglevel"])
	assert.Equal(t, float64(http.StatusCreated), entry["status"])
	assert.Equal(t, float64(3), entry["transactionCount"])
	assert.NotEmpty(t, entry["requestID"])
	assert.Contains(t, entry, "duration")
}

func TestMiddleware_ServerErrorsLogAtErrorLevel(t *testing.T) {
	logger, buf := bufferedLogger()
	handler := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/balance", nil))

	assert.Equal(t, "error", lastLine(t, buf)["loglevel"])
}

func TestLoggingWrapper_LogsHandlerError(t *testing.T) {
	logger, buf := bufferedLogger()
	wrapped := LoggingWrapper("Status", logger, func(w http.ResponseWriter, r *http.Request, logData *LogData) error {
		return errors.New("boom")
	})

	wrapped(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))

	entry := lastLine(t, buf)
	assert.Equal(t, "Handler.Status.Error", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
}

func TestGetLogData_AbsentOutsideRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetLogData(req.Context()))
}

func TestSetLevel(t *testing.T) {
	logger := SetupLogging()
	SetLevel(logger, "debug")
	assert.Equal(t, logrus.DebugLevel, logger.Level)

	logger.Out = &bytes.Buffer{}
	SetLevel(logger, "nonsense")
	assert.Equal(t, logrus.DebugLevel, logger.Level)
}
