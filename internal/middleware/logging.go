package middleware

import (
	"time"

	"github.com/valyala/fasthttp"

	"fitness-tracker/internal/utils"
)

// RequestLogging логирует метод, путь, статус и длительность каждого запроса
func RequestLogging(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		startTime := time.Now()

		userID := "anonymous"
		if id, ok := ctx.UserValue("user_id").(string); ok {
			userID = id
		}
		utils.LogRequest(string(ctx.Method()), string(ctx.Path()), userID)

		next(ctx)

		utils.LogResponse(string(ctx.Path()), ctx.Response.StatusCode(), time.Since(startTime))
	}
}
