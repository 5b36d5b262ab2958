package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/response"
)

// Idempotency melindungi endpoint POST dari pengiriman ganda (double-click).
// Response sukses pertama di-cache per (path, user, Idempotency-Key).
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock" // Key khusus untuk locking

		// 1. CEK CACHE
		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			json.Unmarshal([]byte(val), &cachedRes)
			response.Success(c, http.StatusOK, cachedRes, nil)
			c.Abort()
			return
		}

		// 2. ATOMIC LOCK (SetNX)
		// Mencoba membuat key 'lock'. Jika sudah ada, berarti request lain sedang jalan.
		// Expiry pendek agar jika server crash, lock otomatis hilang.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			// Request ganda terdeteksi saat proses masih berlangsung!
			response.Error(c, http.StatusConflict, apperror.CodeConflict,
				"Permintaan Anda sedang diproses, mohon tunggu sebentar.", nil)
			c.Abort()
			return
		}

		// Tambahkan lockKey ke context agar bisa dihapus oleh Handler setelah selesai
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
