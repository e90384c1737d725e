package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/user/animedex/internal/rail"
)

const railWriteTimeout = time.Second

var railUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     railAllowed,
}

// railMessage 页面转发的指针事件
type railMessage struct {
	Type     string  `json:"type"` // move / leave / resize / scroll
	X        float64 `json:"x"`
	Width    float64 `json:"width"`
	Viewport float64 `json:"viewport"`
	Content  float64 `json:"content"`
	Left     float64 `json:"left"`
}

// railFrame 推送给页面的滚动位置
type railFrame struct {
	ScrollLeft float64 `json:"scrollLeft"`
}

// RailSocket 横向列表自动滚动：每个连接对应一个 Rail，逐帧推送新位置
func (h *Handler) RailSocket(c *gin.Context) {
	conn, err := railUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Debug("websocket 升级失败", "error", err)
		return
	}
	defer conn.Close()

	logger := h.Logger.Named("rail")
	sched := rail.NewTickerScheduler(h.Config.RailFrameInterval)
	defer sched.Close()

	// 只有帧回调写连接，读写各占一个 goroutine
	r := rail.New(sched, rail.OnScroll(func(pos float64) {
		_ = conn.SetWriteDeadline(time.Now().Add(railWriteTimeout))
		if err := conn.WriteJSON(railFrame{ScrollLeft: pos}); err != nil {
			logger.Debug("推送滚动位置失败", "error", err)
		}
	}))
	defer r.Close()

	for {
		var msg railMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("连接异常断开", "error", err)
			}
			return
		}

		switch msg.Type {
		case "move":
			r.PointerMove(msg.X, msg.Width)
		case "leave":
			r.PointerLeave()
		case "resize":
			r.Resize(msg.Viewport, msg.Content)
		case "scroll":
			r.ScrollTo(msg.Left)
		default:
			logger.Trace("忽略未知消息", "type", msg.Type)
		}
	}
}

// railAllowed 仅接受同源页面发起的连接
func railAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host
}
