package controllers

import (
	"strconv"

	"github.com/ADat1304/Project-cafe/pkg/resp"

	"github.com/gin-gonic/gin"
)

// lineIndex reads the :index path param; on failure the 400 is already written.
func lineIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil || i < 0 {
		resp.BadRequest(c, "invalid line index")
		return 0, false
	}
	return i, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}
