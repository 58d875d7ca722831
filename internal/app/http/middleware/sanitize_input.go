package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// Keys whose values are stored verbatim: rich-text bodies are sanitised
// on output and secrets must not be altered.
var rawKeys = map[string]bool{
	"content":         true,
	"password":        true,
	"currentPassword": true,
	"newPassword":     true,
}

// SanitizeAndCleanInputMiddleware strips markup from every string in a JSON
// body, at any depth, except under rawKeys.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		if !strings.HasPrefix(c.ContentType(), "application/json") || c.Request.Body == nil {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		var body interface{}
		if err := dec.Decode(&body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		newBody, err := json.Marshal(sanitizeValue(policy, body))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

// stripMarkup removes tags and stores plain text. StrictPolicy escapes the
// text it keeps, so the result is unescaped and cleaned again until it is
// stable; entity-encoded markup therefore never comes back as a live tag.
func stripMarkup(policy *bluemonday.Policy, s string) string {
	for i := 0; i < 8; i++ {
		out := html.UnescapeString(policy.Sanitize(s))
		if out == s {
			return out
		}
		s = out
	}
	return policy.Sanitize(s)
}

func sanitizeValue(policy *bluemonday.Policy, v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return stripMarkup(policy, t)
	case map[string]interface{}:
		for k, val := range t {
			if rawKeys[k] {
				continue
			}
			t[k] = sanitizeValue(policy, val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = sanitizeValue(policy, val)
		}
		return t
	default:
		return v
	}
}
