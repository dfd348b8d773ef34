package logging

import (
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

// LoggingWrapper adapts a handler that reports its own error into an
// http.HandlerFunc. The request's LogData is reused when Middleware already
// attached one.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := GetLogData(req.Context())
		if logData == nil {
			logData = NewLogData(log)
		}
		log.Infof("Handler.%v.Start", loggingName)

		endTimer := logData.AddTiming("handlerMs")
		err := handler(w, req, logData)
		endTimer()
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}

// Middleware attaches a fresh LogData to every request and logs one line
// when the request completes.
func Middleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logData := NewLogData(log)
			logData.AddData("requestID", newRequestID())
			logData.AddData("method", req.Method)
			logData.AddData("path", req.URL.Path)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			endTimer := logData.AddTiming("duration")
			next.ServeHTTP(recorder, req.WithContext(WithLogData(req.Context(), logData)))
			endTimer()

			logData.AddData("status", recorder.status)
			entry := logData.Log()
			switch {
			case recorder.status >= http.StatusInternalServerError:
				entry.Error("HttpServer.Request.Complete")
			case recorder.status >= http.StatusBadRequest:
				entry.Warn("HttpServer.Request.Complete")
			default:
				entry.Info("HttpServer.Request.Complete")
			}
		})
	}
}

func newRequestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
