package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const responseMetaKey = "response_meta"

type responseMeta struct {
	start  time.Time
	values map[string]interface{}
}

// WithResponseMeta starts the clock for processing_time_ms and gives handlers a place to
// record response metadata.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(responseMetaKey, &responseMeta{start: time.Now(), values: map[string]interface{}{}})
		c.Next()
	}
}

// SetCacheHit records whether the payload was served from the catalog cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, "cache_hit", hit)
}

// SetMeta records one metadata value for the current response.
func SetMeta(c *gin.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	meta := lookupMeta(c)
	if meta == nil {
		meta = &responseMeta{values: map[string]interface{}{}}
		c.Set(responseMetaKey, meta)
	}
	meta.values[key] = value
}

// ExtractMeta returns the recorded metadata, or nil when there is none. Requests that
// passed through WithResponseMeta also get processing_time_ms as of this call.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	meta := lookupMeta(c)
	if meta == nil {
		return nil
	}
	if !meta.start.IsZero() {
		meta.values["processing_time_ms"] = time.Since(meta.start).Milliseconds()
	}
	return meta.values
}

func lookupMeta(c *gin.Context) *responseMeta {
	value, ok := c.Get(responseMetaKey)
	if !ok {
		return nil
	}
	meta, _ := value.(*responseMeta)
	return meta
}
