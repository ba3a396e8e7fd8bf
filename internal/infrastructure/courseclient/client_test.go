package courseclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCourses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/courses", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"title":"Go Basics","category":"Go","instructor":"a","averageRating":4.5,"totalRatings":12},
			{"id":2,"title":"SQL Intro","category":"Databases","instructor":"b"}
		]`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	courses, err := client.FetchCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)

	assert.Equal(t, int64(1), courses[0].ID)
	assert.Equal(t, "Go", courses[0].Category)
	require.NotNil(t, courses[0].AverageRating)
	assert.Equal(t, 4.5, *courses[0].AverageRating)
	assert.Nil(t, courses[1].AverageRating)
	assert.Nil(t, courses[1].TotalRatings)
}

func TestFetchCourses_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.FetchCourses(context.Background())
	assert.Error(t, err)
}

func TestFetchCourses_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.FetchCourses(context.Background())
	assert.Error(t, err)
}
