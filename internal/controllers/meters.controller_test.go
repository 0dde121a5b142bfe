package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menumeters/internal/models"
	"menumeters/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newMetersRouter(board *services.Board) *gin.Engine {
	mc := NewMetersController(board)
	r := gin.New()
	r.GET("/meters", mc.GetAll)
	r.GET("/meters/:category", mc.GetMeter)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetMeter(t *testing.T) {
	board := services.NewBoard(time.Minute)
	require.NoError(t, board.Present(context.Background(), models.Frame{
		Category:  models.CategoryCPU,
		Title:     "CPU",
		Text:      []string{" 50.0%"},
		Timestamp: time.Now(),
	}))
	r := newMetersRouter(board)

	w := get(r, "/meters/cpu")
	require.Equal(t, http.StatusOK, w.Code)
	var frame models.Frame
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &frame))
	assert.Equal(t, []string{" 50.0%"}, frame.Text)

	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/meters/disk").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/meters/gpu").Code)
}

func TestGetAllMeters(t *testing.T) {
	board := services.NewBoard(time.Minute)
	for _, c := range []models.Category{models.CategoryDisk, models.CategoryMemory} {
		require.NoError(t, board.Present(context.Background(), models.Frame{Category: c, Timestamp: time.Now()}))
	}

	w := get(newMetersRouter(board), "/meters")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Frames []models.Frame `json:"frames"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Frames, 2)
	assert.Equal(t, models.CategoryMemory, body.Frames[0].Category)
}
