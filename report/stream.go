package report

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"market-maker-sim/metrics"
	"market-maker-sim/sim"
)

// 消息类型
const (
	MsgRunStart = "run_start"
	MsgPoint    = "point"
	MsgRunEnd   = "run_end"
)

const writeWait = 5 * time.Second

// Message 推送给看板的一条消息。
type Message struct {
	Type      string           `json:"type"`
	RunID     string           `json:"runId"`
	Step      int              `json:"step"`
	Price     float64          `json:"price"`
	PnL       float64          `json:"pnl"`
	Inventory int              `json:"inventory"`
	Summary   *metrics.Summary `json:"summary,omitempty"`
}

type client struct {
	conn *websocket.Conn
	done bool // 受 Hub.mu 保护
}

// Hub 将模拟的 (price, pnl) 序列实时推送给 websocket 客户端，替代原先的画图。
//
// 当前运行的全部消息保存在 history 中，每个客户端的写协程持有自己的游标，
// 在锁内取出新增部分后在锁外写出。作为 sim.Observer 使用时只做追加和唤醒，
// 从不等待客户端；写超时的连接被断开。新运行开始时 history 清空，
// 尚未追上的客户端直接跳到新运行的开头。
type Hub struct {
	mu       sync.Mutex
	cond     *sync.Cond
	clients  map[*client]struct{}
	history  []Message
	gen      int // 每次运行开始加一
	closed   bool
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	h := &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	h.cond = sync.NewCond(&h.mu)
	return h
}

func (h *Hub) OnRunStart(runID string, cfg sim.Config) {
	h.mu.Lock()
	h.gen++
	h.history = make([]Message, 0, cfg.Steps+2)
	h.mu.Unlock()
	h.publish(Message{Type: MsgRunStart, RunID: runID, Price: cfg.InitialPrice})
}

func (h *Hub) OnStep(ev sim.StepEvent) {
	h.publish(Message{
		Type:      MsgPoint,
		RunID:     ev.RunID,
		Step:      ev.Step,
		Price:     ev.Point.Price,
		PnL:       ev.Point.PnL,
		Inventory: ev.State.Inventory,
	})
}

func (h *Hub) OnRunEnd(res *sim.Result) {
	summary := res.Summary
	h.publish(Message{
		Type:      MsgRunEnd,
		RunID:     res.RunID,
		Step:      summary.Steps,
		Price:     summary.FinalPrice,
		PnL:       summary.FinalPnL,
		Inventory: res.Final.Inventory,
		Summary:   &summary,
	})
}

func (h *Hub) publish(m Message) {
	h.mu.Lock()
	h.history = append(h.history, m)
	h.mu.Unlock()
	h.cond.Broadcast()
}

// Clients 当前连接数。
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP 升级为 websocket，先回放当前运行再实时推送。
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(c)
	h.readLoop(c)
}

// next 阻塞到有新消息、运行切换或连接结束；返回需要写出的消息拷贝。
func (h *Hub) next(c *client, gen, pos int) (batch []Message, newGen, newPos int, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for !c.done && !h.closed && gen == h.gen && pos >= len(h.history) {
		h.cond.Wait()
	}
	if c.done || h.closed {
		return nil, gen, pos, false
	}
	if gen != h.gen {
		gen, pos = h.gen, 0
	}
	batch = append([]Message(nil), h.history[pos:]...)
	return batch, gen, len(h.history), true
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	gen, pos := -1, 0
	for {
		batch, g, p, ok := h.next(c, gen, pos)
		if !ok {
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return
		}
		gen, pos = g, p
		for _, m := range batch {
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(m); err != nil {
				h.drop(c)
				return
			}
		}
	}
}

// readLoop 只用于感知断开。
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.drop(c)
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	c.done = true
	delete(h.clients, c)
	h.mu.Unlock()
	h.cond.Broadcast()
}

// Close 断开全部客户端，之后的连接直接关闭。
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for c := range h.clients {
		c.done = true
		delete(h.clients, c)
	}
	h.mu.Unlock()
	h.cond.Broadcast()
}
