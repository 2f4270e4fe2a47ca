package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTagDefaultColor(t *testing.T) {
	app := newTestApp()

	name := fmt.Sprintf("plain_%d", time.Now().UnixNano())
	resp := doJSON(t, app, "POST", "/api/tags", "", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tag map[string]interface{}
	decodeBody(t, resp, &tag)
	assert.Equal(t, name, tag["name"])
	assert.Equal(t, "#cccccc", tag["color"])
	assert.NotZero(t, tag["id"])
}

func TestCreateTagWithColor(t *testing.T) {
	app := newTestApp()

	name := fmt.Sprintf("colored_%d", time.Now().UnixNano())
	resp := doJSON(t, app, "POST", "/api/tags", "", map[string]string{
		"name":  name,
		"color": "#ff0000",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tag map[string]interface{}
	decodeBody(t, resp, &tag)
	assert.Equal(t, "#ff0000", tag["color"])
}

func TestCreateTagRequiresName(t *testing.T) {
	app := newTestApp()
	resp := doJSON(t, app, "POST", "/api/tags", "", map[string]string{"color": "#00ff00"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListTagsIsGlobal(t *testing.T) {
	app := newTestApp()

	name := fmt.Sprintf("shared_%d", time.Now().UnixNano())
	createTestTag(t, app, name)

	// No token: the vocabulary is public.
	resp := doJSON(t, app, "GET", "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tags []map[string]interface{}
	decodeBody(t, resp, &tags)
	found := false
	for _, tag := range tags {
		if tag["name"] == name {
			found = true
		}
	}
	assert.True(t, found, "created tag should appear in the global list")
}
