package repository

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yskddk/smart-hive-udp-server/internal/models"
)

const sampleWrite = "write,Sheet1,12:00,10.1,20.2,21,55,3.3,22,56,3.3,23,57,3.3,24,58,3.3,5.5"

func sampleRecord(t *testing.T) models.SensorRecord {
	t.Helper()
	record, err := models.NewSensorRecord(strings.Split(sampleWrite, ","))
	require.NoError(t, err)
	return record
}

func TestFormRepositoryPostsForm(t *testing.T) {
	var (
		gotMethod      string
		gotContentType string
		gotForm        url.Values
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		assert.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	repo := NewFormRepository(server.URL+"/exec", time.Second)
	require.NoError(t, repo.Submit(context.Background(), sampleRecord(t)))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Contains(t, gotContentType, "application/x-www-form-urlencoded")
	assert.Len(t, gotForm, models.RecordFieldCount)
	assert.Equal(t, "write", gotForm.Get("method"))
	assert.Equal(t, "Sheet1", gotForm.Get("WorkSheetName"))
	assert.Equal(t, "12:00", gotForm.Get("Time"))
	assert.Equal(t, "58", gotForm.Get("Hum4"))
	assert.Equal(t, "5.5", gotForm.Get("Weight"))
	assert.Equal(t, server.URL+"/exec", repo.Endpoint())
}

func TestFormRepositoryReportsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	err := NewFormRepository(server.URL, 0).Submit(context.Background(), sampleRecord(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrForwardingFailure))
	assert.Equal(t, models.ErrorCodeForwardingFailure, models.CodeOf(err))
}

func TestFormRepositoryReportsTransportError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	endpoint := "http://" + ln.Addr().String() + "/exec"
	require.NoError(t, ln.Close())

	err = NewFormRepository(endpoint, time.Second).Submit(context.Background(), sampleRecord(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrForwardingFailure))
}
